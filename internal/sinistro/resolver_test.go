package sinistro_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cl4ydson/sinistros-control/internal/logger"
	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

// fakeStore keeps claims as raw column maps, the same shape the resolver
// writes, and implements the repository, schedule and transactor contracts
// in memory.
type fakeStore struct {
	seq      int64
	campos   map[int64]map[string]any
	chaves   map[string]int64
	parcelas map[int64][]sinistro.ProgramacaoPagamento
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		campos:   map[int64]map[string]any{},
		chaves:   map[string]int64{},
		parcelas: map[int64][]sinistro.ProgramacaoPagamento{},
	}
}

func chave(notaFiscal string, nrConhecimento *string) string {
	if nrConhecimento == nil {
		return notaFiscal + "|"
	}
	return notaFiscal + "|" + *nrConhecimento
}

func (f *fakeStore) chaveDe(campos map[string]any) string {
	notaFiscal, _ := campos["nota_fiscal"].(string)
	if v, ok := campos["nr_conhecimento"].(string); ok && v != "" {
		return chave(notaFiscal, &v)
	}
	return chave(notaFiscal, nil)
}

func (f *fakeStore) BuscarPorNotaConhecimento(_ context.Context, notaFiscal string, nrConhecimento *string) (*sinistro.Sinistro, error) {
	id, ok := f.chaves[chave(notaFiscal, nrConhecimento)]
	if !ok {
		return nil, sinistro.ErrNotFound
	}
	return f.materializar(id), nil
}

func (f *fakeStore) BuscarPorID(_ context.Context, id int64) (*sinistro.Sinistro, error) {
	if _, ok := f.campos[id]; !ok {
		return nil, sinistro.ErrNotFound
	}
	return f.materializar(id), nil
}

func (f *fakeStore) Inserir(_ context.Context, campos map[string]any) (int64, error) {
	k := f.chaveDe(campos)
	if _, ok := f.chaves[k]; ok {
		return 0, sinistro.ErrConflict
	}
	f.seq++
	copia := make(map[string]any, len(campos))
	for c, v := range campos {
		copia[c] = v
	}
	f.campos[f.seq] = copia
	f.chaves[k] = f.seq
	return f.seq, nil
}

func (f *fakeStore) Atualizar(_ context.Context, id int64, campos map[string]any) error {
	existente, ok := f.campos[id]
	if !ok {
		return sinistro.ErrNotFound
	}
	for c, v := range campos {
		existente[c] = v
	}
	return nil
}

func (f *fakeStore) Deletar(_ context.Context, id int64) error {
	if _, ok := f.campos[id]; !ok {
		return sinistro.ErrNotFound
	}
	delete(f.campos, id)
	return nil
}

func (f *fakeStore) Listar(context.Context, sinistro.Filtro) ([]sinistro.Sinistro, error) {
	out := []sinistro.Sinistro{}
	for id := range f.campos {
		out = append(out, *f.materializar(id))
	}
	return out, nil
}

func (f *fakeStore) Contar(context.Context, sinistro.Filtro) (int64, error) {
	return int64(len(f.campos)), nil
}

func (f *fakeStore) Estatisticas(context.Context) (*sinistro.Estatisticas, error) {
	return &sinistro.Estatisticas{TotalSinistros: int64(len(f.campos))}, nil
}

func (f *fakeStore) SubstituirTudo(_ context.Context, sinistroID int64, parcelas []sinistro.ProgramacaoPagamento) error {
	if len(parcelas) > sinistro.MaxParcelas {
		return sinistro.ErrCapacityExceeded
	}
	f.parcelas[sinistroID] = parcelas
	return nil
}

func (f *fakeStore) Adicionar(_ context.Context, sinistroID int64, p *sinistro.ProgramacaoPagamento) error {
	atual := f.parcelas[sinistroID]
	if len(atual) >= sinistro.MaxParcelas {
		return sinistro.ErrCapacityExceeded
	}
	p.Ordem = len(atual) + 1
	p.SinistroID = sinistroID
	f.parcelas[sinistroID] = append(atual, *p)
	return nil
}

func (f *fakeStore) MarcarPago(_ context.Context, parcelaID int64, dt string) (bool, error) {
	return false, nil
}

func (f *fakeStore) AtualizarParcela(context.Context, int64, map[string]any) (*sinistro.ProgramacaoPagamento, error) {
	return nil, sinistro.ErrNotFound
}

func (f *fakeStore) ListarPorSinistro(_ context.Context, sinistroID int64) ([]sinistro.ProgramacaoPagamento, error) {
	return f.parcelas[sinistroID], nil
}

func (f *fakeStore) ComTransacao(ctx context.Context, fn func(sinistro.Repository, sinistro.ProgramacaoRepository) error) error {
	return fn(f, f)
}

func (f *fakeStore) materializar(id int64) *sinistro.Sinistro {
	campos := f.campos[id]
	str := func(c string) string {
		v, _ := campos[c].(string)
		return v
	}
	num := func(c string) float64 {
		switch v := campos[c].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
		return 0
	}
	boolean := func(c string) bool {
		v, _ := campos[c].(bool)
		return v
	}
	return &sinistro.Sinistro{
		ID:                    id,
		NotaFiscal:            str("nota_fiscal"),
		Cliente:               str("cliente"),
		StatusPagamento:       str("status_pagamento"),
		StatusIndenizacao:     str("status_indenizacao"),
		StatusJuridico:        str("status_juridico"),
		StatusSeguradora:      str("status_seguradora"),
		StatusGeral:           str("status_geral"),
		AcionamentoJuridico:   boolean("acionamento_juridico"),
		AcionamentoSeguradora: boolean("acionamento_seguradora"),
		ValorIndenizacao:      num("valor_indenizacao"),
		ValorIndenizadoTotal:  num("valor_indenizado_total"),
		ValorUsoInterno:       num("valor_uso_interno"),
		ValorSeguradoraTotal:  num("valor_seguradora_total"),
		ValorJuridicoTotal:    num("valor_juridico_total"),
		ValorSalvados:         num("valor_salvados"),
		PrejuizoTotal:         num("prejuizo_total"),
	}
}

func newResolver(f *fakeStore) *sinistro.Resolver {
	log := logger.New(logger.LevelError)
	return sinistro.NewResolver(f, sinistro.NewEngine(log), log)
}

func TestResolver_CriarOuAtualizar(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with status defaults and audit fields", func(t *testing.T) {
		f := newFakeStore()
		r := newResolver(f)

		rec, criado, err := r.CriarOuAtualizar(ctx, map[string]any{
			"nota_fiscal":   "877097",
			"cliente":       "ACME Transportes",
			"valor_sinistro": "1234,56",
		}, "tester")
		require.NoError(t, err)
		assert.True(t, criado)
		assert.Equal(t, "877097", rec.NotaFiscal)
		assert.Equal(t, 1234.56, rec.ValorIndenizacao)
		assert.Equal(t, sinistro.StatusGeralNaoIniciado, rec.StatusGeral)

		campos := f.campos[rec.ID]
		assert.Equal(t, sinistro.StatusPagamentoAguardandoND, campos["status_pagamento"])
		assert.Equal(t, sinistro.StatusIndenizacaoPendente, campos["status_indenizacao"])
		assert.Equal(t, "tester", campos["criado_por"])
		assert.Equal(t, "tester", campos["atualizado_por"])
	})

	t.Run("second call with the same key updates in place", func(t *testing.T) {
		f := newFakeStore()
		r := newResolver(f)

		payload := map[string]any{"nota_fiscal": "877097", "cliente": "ACME"}
		_, criado, err := r.CriarOuAtualizar(ctx, payload, "tester")
		require.NoError(t, err)
		require.True(t, criado)

		rec, criado, err := r.CriarOuAtualizar(ctx, map[string]any{
			"nota_fiscal": "877097",
			"cliente":     "ACME Transportes LTDA",
		}, "outro")
		require.NoError(t, err)
		assert.False(t, criado)
		assert.Equal(t, "ACME Transportes LTDA", rec.Cliente)
		assert.Len(t, f.campos, 1)
		assert.Equal(t, "outro", f.campos[rec.ID]["atualizado_por"])
	})

	t.Run("conhecimento is part of the identity", func(t *testing.T) {
		f := newFakeStore()
		r := newResolver(f)

		_, criado, err := r.CriarOuAtualizar(ctx, map[string]any{"nota_fiscal": "877097"}, "tester")
		require.NoError(t, err)
		require.True(t, criado)

		// Same NF with a CT-e number does not match the NULL-keyed row.
		_, criado, err = r.CriarOuAtualizar(ctx, map[string]any{
			"nota_fiscal":     "877097",
			"nr_conhecimento": "CT-001",
		}, "tester")
		require.NoError(t, err)
		assert.True(t, criado)
		assert.Len(t, f.campos, 2)
	})

	t.Run("null values never erase stored data", func(t *testing.T) {
		f := newFakeStore()
		r := newResolver(f)

		_, _, err := r.CriarOuAtualizar(ctx, map[string]any{
			"nota_fiscal": "877097",
			"cliente":     "ACME",
		}, "tester")
		require.NoError(t, err)

		rec, _, err := r.CriarOuAtualizar(ctx, map[string]any{
			"nota_fiscal": "877097",
			"cliente":     nil,
		}, "tester")
		require.NoError(t, err)
		assert.Equal(t, "ACME", rec.Cliente)
	})

	t.Run("missing nota_fiscal is rejected", func(t *testing.T) {
		r := newResolver(newFakeStore())
		_, _, err := r.CriarOuAtualizar(ctx, map[string]any{"cliente": "ACME"}, "tester")
		assert.ErrorIs(t, err, sinistro.ErrValidation)
	})

	t.Run("invalid status is rejected before any write", func(t *testing.T) {
		f := newFakeStore()
		r := newResolver(f)
		_, _, err := r.CriarOuAtualizar(ctx, map[string]any{
			"nota_fiscal":      "877097",
			"status_pagamento": "Quitado",
		}, "tester")
		assert.ErrorIs(t, err, sinistro.ErrValidation)
		assert.Empty(t, f.campos)
	})

	t.Run("replaces the payment schedule", func(t *testing.T) {
		f := newFakeStore()
		r := newResolver(f)

		rec, _, err := r.CriarOuAtualizar(ctx, map[string]any{
			"nota_fiscal": "877097",
			"programacao_pagamento": []any{
				map[string]any{"data": "2024-01-10", "valor": "100,50", "doctoESL": "ND-1"},
				map[string]any{"data": "", "valor": "", "doctoESL": ""},
				map[string]any{"data": "2024-02-10", "valor": "200", "doctoESL": "ND-2"},
			},
		}, "tester")
		require.NoError(t, err)
		require.Len(t, rec.Programacao, 2)
		assert.Equal(t, 1, rec.Programacao[0].Ordem)
		assert.Equal(t, 100.50, rec.Programacao[0].ValorPagamento)
		assert.Equal(t, 2, rec.Programacao[1].Ordem)
	})

	t.Run("oversized schedule fails the whole upsert", func(t *testing.T) {
		f := newFakeStore()
		r := newResolver(f)

		itens := make([]any, 0, 11)
		for i := 0; i < 11; i++ {
			itens = append(itens, map[string]any{"valor": fmt.Sprintf("%d", i+1)})
		}
		_, _, err := r.CriarOuAtualizar(ctx, map[string]any{
			"nota_fiscal":           "877097",
			"programacao_pagamento": itens,
		}, "tester")
		assert.ErrorIs(t, err, sinistro.ErrCapacityExceeded)
	})

	t.Run("derived state is computed and persisted", func(t *testing.T) {
		f := newFakeStore()
		r := newResolver(f)

		rec, _, err := r.CriarOuAtualizar(ctx, map[string]any{
			"nota_fiscal":            "877097",
			"status_pagamento":       sinistro.StatusPagamentoPago,
			"status_indenizacao":     sinistro.StatusIndenizacaoPago,
			"valor_indenizado_total": "500",
			"valor_uso_interno":      "200",
			"valor_seguradora_total": "150",
			"valor_juridico_total":   "100",
			"valor_salvados":         "50",
		}, "tester")
		require.NoError(t, err)

		assert.Equal(t, sinistro.StatusGeralConcluido, rec.StatusGeral)
		assert.Equal(t, float64(900), rec.PrejuizoTotal)

		// The derived fields landed in storage, not only in the response.
		campos := f.campos[rec.ID]
		assert.Equal(t, sinistro.StatusGeralConcluido, campos["status_geral"])
		assert.Equal(t, float64(900), campos["prejuizo_total"])
	})
}

func TestResolver_AtualizarCampos(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update recomputes derived state", func(t *testing.T) {
		f := newFakeStore()
		r := newResolver(f)

		criado, _, err := r.CriarOuAtualizar(ctx, map[string]any{"nota_fiscal": "877097"}, "tester")
		require.NoError(t, err)
		require.Equal(t, sinistro.StatusGeralNaoIniciado, criado.StatusGeral)

		rec, err := r.AtualizarCampos(ctx, criado.ID, map[string]any{
			"status_pagamento": sinistro.StatusPagamentoEmTratativa,
		}, "outro")
		require.NoError(t, err)
		assert.Equal(t, sinistro.StatusGeralEmAndamento, rec.StatusGeral)
	})

	t.Run("the natural key cannot be moved", func(t *testing.T) {
		f := newFakeStore()
		r := newResolver(f)

		criado, _, err := r.CriarOuAtualizar(ctx, map[string]any{"nota_fiscal": "877097"}, "tester")
		require.NoError(t, err)

		rec, err := r.AtualizarCampos(ctx, criado.ID, map[string]any{
			"nota_fiscal": "999999",
			"cliente":     "ACME",
		}, "tester")
		require.NoError(t, err)
		assert.Equal(t, "877097", rec.NotaFiscal)
		assert.Equal(t, "ACME", rec.Cliente)
	})

	t.Run("unknown claim", func(t *testing.T) {
		r := newResolver(newFakeStore())
		_, err := r.AtualizarCampos(ctx, 42, map[string]any{"cliente": "ACME"}, "tester")
		assert.ErrorIs(t, err, sinistro.ErrNotFound)
	})
}
