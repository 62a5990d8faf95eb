package sinistro

import (
	"fmt"

	"github.com/Cl4ydson/sinistros-control/internal/logger"
)

// MaxParcelas caps the payment schedule of a single claim.
const MaxParcelas = 10

// MontarProgramacao converts inbound schedule items into installment rows
// ready for a replace-all write. All-empty items are skipped; ordinals are
// assigned by position in the filtered list, starting at 1. More than
// MaxParcelas non-empty items fails with ErrCapacityExceeded before any
// row is produced.
func MontarProgramacao(sinistroID int64, itens []ItemProgramacao, eng *Engine) ([]ProgramacaoPagamento, error) {
	parcelas := make([]ProgramacaoPagamento, 0, len(itens))
	for _, item := range itens {
		if item.Vazio() {
			continue
		}
		parcelas = append(parcelas, ProgramacaoPagamento{
			SinistroID:     sinistroID,
			Ordem:          len(parcelas) + 1,
			DataPagamento:  item.Data,
			ValorPagamento: eng.coerceDecimal("valor", item.Valor),
			DocumentoESL:   item.DoctoESL,
		})
	}
	if len(parcelas) > MaxParcelas {
		return nil, fmt.Errorf("%w: %d installments, limit is %d", ErrCapacityExceeded, len(parcelas), MaxParcelas)
	}
	return parcelas, nil
}

// ParsearItens converts the loosely-typed programacao_pagamento payload
// value (a JSON array of {data, valor, doctoESL} objects) into typed items.
// Unknown shapes yield no items.
func ParsearItens(valor any, log *logger.Logger) []ItemProgramacao {
	lista, ok := valor.([]any)
	if !ok {
		if itens, ok := valor.([]ItemProgramacao); ok {
			return itens
		}
		log.Debug("Schedule", "Ignoring programacao_pagamento with unexpected shape %T", valor)
		return nil
	}
	itens := make([]ItemProgramacao, 0, len(lista))
	for _, elem := range lista {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		itens = append(itens, ItemProgramacao{
			Data:     stringField(obj, "data"),
			Valor:    stringField(obj, "valor"),
			DoctoESL: stringField(obj, "doctoESL"),
		})
	}
	return itens
}

func stringField(obj map[string]any, chave string) string {
	v, ok := obj[chave]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
