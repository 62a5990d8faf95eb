package sinistro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

func TestRecompute_PrejuizoTotal(t *testing.T) {
	s := &sinistro.Sinistro{
		ValorIndenizadoTotal: 500,
		ValorUsoInterno:      200,
		ValorSeguradoraTotal: 150,
		ValorJuridicoTotal:   100,
		ValorSalvados:        50,
	}
	sinistro.Recompute(s)
	assert.Equal(t, float64(900), s.PrejuizoTotal)

	// Salvados above the other buckets drives the figure negative; that is
	// a valid outcome, not clamped.
	s.ValorSalvados = 2000
	sinistro.Recompute(s)
	assert.Equal(t, float64(-1050), s.PrejuizoTotal)
}

func TestRecompute_StatusGeral(t *testing.T) {
	base := func() *sinistro.Sinistro {
		return &sinistro.Sinistro{
			StatusPagamento:   sinistro.StatusPagamentoAguardandoND,
			StatusIndenizacao: sinistro.StatusIndenizacaoPendente,
			StatusJuridico:    sinistro.StatusJuridicoNaoAcionado,
			StatusSeguradora:  sinistro.StatusSeguradoraNaoAcionada,
		}
	}

	tests := []struct {
		name   string
		mutate func(*sinistro.Sinistro)
		want   string
	}{
		{
			name:   "untouched claim is not started",
			mutate: func(s *sinistro.Sinistro) {},
			want:   sinistro.StatusGeralNaoIniciado,
		},
		{
			name: "payment in progress",
			mutate: func(s *sinistro.Sinistro) {
				s.StatusPagamento = sinistro.StatusPagamentoAguardandoPagamento
			},
			want: sinistro.StatusGeralEmAndamento,
		},
		{
			name: "engagement alone moves the claim forward",
			mutate: func(s *sinistro.Sinistro) {
				s.AcionamentoJuridico = true
			},
			want: sinistro.StatusGeralEmAndamento,
		},
		{
			name: "paid on both fronts without engagements concludes",
			mutate: func(s *sinistro.Sinistro) {
				s.StatusPagamento = sinistro.StatusPagamentoPago
				s.StatusIndenizacao = sinistro.StatusIndenizacaoPago
			},
			want: sinistro.StatusGeralConcluido,
		},
		{
			name: "open juridico blocks conclusion",
			mutate: func(s *sinistro.Sinistro) {
				s.StatusPagamento = sinistro.StatusPagamentoPago
				s.StatusIndenizacao = sinistro.StatusIndenizacaoPago
				s.AcionamentoJuridico = true
				s.StatusJuridico = sinistro.StatusJuridicoProcessoIniciado
			},
			want: sinistro.StatusGeralEmAndamento,
		},
		{
			name: "indemnified juridico and seguradora conclude",
			mutate: func(s *sinistro.Sinistro) {
				s.StatusPagamento = sinistro.StatusPagamentoPago
				s.StatusIndenizacao = sinistro.StatusIndenizacaoPago
				s.AcionamentoJuridico = true
				s.StatusJuridico = sinistro.StatusJuridicoIndenizado
				s.AcionamentoSeguradora = true
				s.StatusSeguradora = sinistro.StatusSeguradoraIndenizado
			},
			want: sinistro.StatusGeralConcluido,
		},
		{
			name: "open seguradora blocks conclusion",
			mutate: func(s *sinistro.Sinistro) {
				s.StatusPagamento = sinistro.StatusPagamentoPago
				s.StatusIndenizacao = sinistro.StatusIndenizacaoPago
				s.AcionamentoSeguradora = true
				s.StatusSeguradora = sinistro.StatusSeguradoraAguardandoAbertura
			},
			want: sinistro.StatusGeralEmAndamento,
		},
		{
			name: "partial indemnification stays in progress",
			mutate: func(s *sinistro.Sinistro) {
				s.StatusPagamento = sinistro.StatusPagamentoPago
				s.StatusIndenizacao = sinistro.StatusIndenizacaoPagoParcial
			},
			want: sinistro.StatusGeralEmAndamento,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			sinistro.Recompute(s)
			assert.Equal(t, tt.want, s.StatusGeral)

			// Recompute is deterministic: running it again changes nothing.
			sinistro.Recompute(s)
			assert.Equal(t, tt.want, s.StatusGeral)
		})
	}
}
