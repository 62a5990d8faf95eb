package sinistro

import "fmt"

// Enumerated status values for each sub-process. The strings are the exact
// values persisted and exchanged with the frontend, in Portuguese.
const (
	StatusPagamentoAguardandoND        = "Aguardando ND"
	StatusPagamentoAguardandoPagamento = "Aguardando Pagamento"
	StatusPagamentoPago                = "Pago"
	StatusPagamentoEmTratativa         = "Em tratativa"

	StatusIndenizacaoProgramado  = "Programado"
	StatusIndenizacaoPago        = "Pago"
	StatusIndenizacaoPendente    = "Pendente"
	StatusIndenizacaoPagoParcial = "Pago Parcial"

	StatusJuridicoNaoAcionado        = "Não acionado"
	StatusJuridicoAguardandoAbertura = "Aguardando abertura"
	StatusJuridicoProcessoIniciado   = "Processo iniciado"
	StatusJuridicoIndenizado         = "Indenizado"

	StatusSeguradoraNaoAcionada        = "Não acionado"
	StatusSeguradoraAguardandoAbertura = "Aguardando abertura"
	StatusSeguradoraProcessoIniciado   = "Processo iniciado"
	StatusSeguradoraIndenizado         = "Indenizado"

	StatusGeralNaoIniciado = "Não iniciado"
	StatusGeralEmAndamento = "Em andamento"
	StatusGeralConcluido   = "Concluído"
)

var statusValidos = map[string]map[string]bool{
	"status_pagamento": {
		StatusPagamentoAguardandoND:        true,
		StatusPagamentoAguardandoPagamento: true,
		StatusPagamentoPago:                true,
		StatusPagamentoEmTratativa:         true,
	},
	"status_indenizacao": {
		StatusIndenizacaoProgramado:  true,
		StatusIndenizacaoPago:        true,
		StatusIndenizacaoPendente:    true,
		StatusIndenizacaoPagoParcial: true,
	},
	"status_juridico": {
		StatusJuridicoNaoAcionado:        true,
		StatusJuridicoAguardandoAbertura: true,
		StatusJuridicoProcessoIniciado:   true,
		StatusJuridicoIndenizado:         true,
	},
	"status_seguradora": {
		StatusSeguradoraNaoAcionada:        true,
		StatusSeguradoraAguardandoAbertura: true,
		StatusSeguradoraProcessoIniciado:   true,
		StatusSeguradoraIndenizado:         true,
	},
	"status_geral": {
		StatusGeralNaoIniciado: true,
		StatusGeralEmAndamento: true,
		StatusGeralConcluido:   true,
	},
}

// statusDefaults seeds enum fields on first creation of a claim.
var statusDefaults = map[string]string{
	"status_pagamento":   StatusPagamentoAguardandoND,
	"status_indenizacao": StatusIndenizacaoPendente,
	"status_juridico":    StatusJuridicoNaoAcionado,
	"status_seguradora":  StatusSeguradoraNaoAcionada,
	"status_geral":       StatusGeralNaoIniciado,
}

// ValidarStatus rejects payloads that set an enum field to a value outside
// its allowed set. The alias status_sinistro shares status_geral's set.
// Enforcement happens here, above the translation engine, which coerces but
// never validates.
func ValidarStatus(payload map[string]any) error {
	for campo, valor := range payload {
		if valor == nil {
			continue
		}
		conjunto, ok := statusValidos[campo]
		if !ok {
			if campo == "status_sinistro" {
				conjunto = statusValidos["status_geral"]
			} else {
				continue
			}
		}
		s, ok := valor.(string)
		if !ok || !conjunto[s] {
			return fmt.Errorf("%w: campo %s não aceita o valor %q", ErrValidation, campo, valor)
		}
	}
	return nil
}
