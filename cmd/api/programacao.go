package main

import (
	"net/http"
	"time"

	"github.com/Cl4ydson/sinistros-control/internal/response"
	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

// entradaProgramacao is the wire form of a schedule row, matching what the
// legacy frontend renders.
type entradaProgramacao struct {
	ID              int64   `json:"id,omitempty"`
	Ordem           int     `json:"ordem,omitempty"`
	Data            string  `json:"data"`
	Valor           float64 `json:"valor"`
	DoctoESL        string  `json:"doctoESL"`
	Pago            bool    `json:"pago"`
	DtPagamentoReal string  `json:"dt_pagamento_real,omitempty"`
}

type ProgramacaoResponse = response.APIResponse[[]entradaProgramacao]
type ParcelaResponse = response.APIResponse[*sinistro.ProgramacaoPagamento]

func paraEntradas(parcelas []sinistro.ProgramacaoPagamento) []entradaProgramacao {
	entradas := make([]entradaProgramacao, 0, len(parcelas))
	for _, p := range parcelas {
		entradas = append(entradas, entradaProgramacao{
			ID:              p.ID,
			Ordem:           p.Ordem,
			Data:            p.DataPagamento,
			Valor:           p.ValorPagamento,
			DoctoESL:        p.DocumentoESL,
			Pago:            p.Pago,
			DtPagamentoReal: p.DtPagamentoReal,
		})
	}
	return entradas
}

// handleGetProgramacao lists the schedule of one claim. An empty schedule
// answers with a single all-empty row: the frontend always renders at least
// one editable line and was built around that contract.
func (app *application) handleGetProgramacao(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	ctx := r.Context()
	if _, err := app.store.Sinistros.BuscarPorID(ctx, id); err != nil {
		app.respondError(w, err)
		return
	}
	parcelas, err := app.store.Programacao.ListarPorSinistro(ctx, id)
	if err != nil {
		app.respondError(w, err)
		return
	}

	entradas := paraEntradas(parcelas)
	if len(entradas) == 0 {
		entradas = []entradaProgramacao{{}}
	}

	resp := &ProgramacaoResponse{Success: true, Data: entradas}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// handleSubstituirProgramacao replaces the whole schedule from an array of
// {data, valor, doctoESL} items. All-empty items are dropped; ordinals are
// reassigned from 1. More than 10 non-empty items rejects the request and
// keeps the stored schedule intact.
func (app *application) handleSubstituirProgramacao(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	var itens []sinistro.ItemProgramacao
	if err := readJSON(w, r, &itens); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ctx := r.Context()
	rec, err := app.resolver.AtualizarCampos(ctx, id,
		map[string]any{"programacao_pagamento": itens}, usuarioDe(r))
	if err != nil {
		app.respondError(w, err)
		return
	}

	resp := &ProgramacaoResponse{
		Success: true,
		Data:    paraEntradas(rec.Programacao),
		Message: "Programação substituída",
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// handleAdicionarParcela appends one installment after the current last
// ordinal, failing when the claim already holds the maximum.
func (app *application) handleAdicionarParcela(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	var item sinistro.ItemProgramacao
	if err := readJSON(w, r, &item); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if item.Vazio() {
		writeJSONError(w, http.StatusBadRequest, "empty installment")
		return
	}

	ctx := r.Context()
	if _, err := app.store.Sinistros.BuscarPorID(ctx, id); err != nil {
		app.respondError(w, err)
		return
	}

	parcela := sinistro.ProgramacaoPagamento{
		DataPagamento:  item.Data,
		ValorPagamento: app.engine.Decimal("valor", item.Valor),
		DocumentoESL:   item.DoctoESL,
	}
	if err := app.store.Programacao.Adicionar(ctx, id, &parcela); err != nil {
		app.respondError(w, err)
		return
	}

	resp := &ParcelaResponse{Success: true, Data: &parcela, Message: "Parcela adicionada"}
	if err := writeJSON(w, http.StatusCreated, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleAtualizarParcela(w http.ResponseWriter, r *http.Request) {
	parcelaID, err := idParam(r, "parcelaID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid installment id")
		return
	}

	var payload map[string]any
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if valor, ok := payload["valor"]; ok {
		payload["valor"] = app.engine.Decimal("valor", valor)
	}

	ctx := r.Context()
	parcela, err := app.store.Programacao.AtualizarParcela(ctx, parcelaID, payload)
	if err != nil {
		app.respondError(w, err)
		return
	}

	resp := &ParcelaResponse{Success: true, Data: parcela, Message: "Parcela atualizada"}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// handlePagarParcela settles one installment. A missing installment is
// reported through the pago flag, not as an error.
func (app *application) handlePagarParcela(w http.ResponseWriter, r *http.Request) {
	parcelaID, err := idParam(r, "parcelaID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid installment id")
		return
	}

	var input struct {
		DtPagamentoReal string `json:"dt_pagamento_real"`
	}
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
	}
	if input.DtPagamentoReal == "" {
		input.DtPagamentoReal = time.Now().Format("2006-01-02")
	}

	ctx := r.Context()
	pago, err := app.store.Programacao.MarcarPago(ctx, parcelaID, input.DtPagamentoReal)
	if err != nil {
		app.respondError(w, err)
		return
	}

	resp := &response.APIResponse[map[string]bool]{
		Success: true,
		Data:    map[string]bool{"pago": pago},
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
