package main

import (
	"net/http"

	"github.com/Cl4ydson/sinistros-control/internal/response"
	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

type SincronizarLoteResponse = response.APIResponse[*sinistro.ResultadoLote]

// handleSincronizarUm pulls one claim from the source logistics database and
// upserts it into the normalized schema.
func (app *application) handleSincronizarUm(w http.ResponseWriter, r *http.Request) {
	if app.sincronizador == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "source database not configured")
		return
	}

	var input struct {
		NotaFiscal     string `json:"nota_fiscal"`
		NrConhecimento string `json:"nr_conhecimento"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if input.NotaFiscal == "" {
		writeJSONError(w, http.StatusBadRequest, "nota_fiscal is required")
		return
	}

	ctx := r.Context()
	rec, criado, err := app.sincronizador.SincronizarUm(ctx, input.NotaFiscal, input.NrConhecimento, usuarioDe(r))
	if err != nil {
		app.respondError(w, err)
		return
	}

	status := http.StatusOK
	message := "Sinistro atualizado a partir da origem"
	if criado {
		status = http.StatusCreated
		message = "Sinistro criado a partir da origem"
	}

	resp := &SinistroResponse{Success: true, Data: rec, Message: message}
	if err := writeJSON(w, status, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// handleSincronizarLote upserts every source claim matching the filter.
// Row-level failures are reported inside the result, not as an HTTP error.
func (app *application) handleSincronizarLote(w http.ResponseWriter, r *http.Request) {
	if app.sincronizador == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "source database not configured")
		return
	}

	var input struct {
		DtInicio   string `json:"dt_inicio"`
		DtFim      string `json:"dt_fim"`
		Cliente    string `json:"cliente"`
		NotaFiscal string `json:"nota_fiscal"`
		Limite     int    `json:"limite"`
	}
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
	}
	if input.Limite <= 0 || input.Limite > 500 {
		input.Limite = 100
	}

	filtro := sinistro.FiltroOrigem{
		DtInicio:   parseTimeParam(input.DtInicio),
		DtFim:      parseTimeParam(input.DtFim),
		Cliente:    input.Cliente,
		NotaFiscal: input.NotaFiscal,
		Limite:     input.Limite,
	}

	ctx := r.Context()
	resultado, err := app.sincronizador.SincronizarLote(ctx, filtro, usuarioDe(r), input.Limite)
	if err != nil {
		app.respondError(w, err)
		return
	}

	resp := &SincronizarLoteResponse{
		Success: true,
		Data:    resultado,
		Message: "Sincronização concluída",
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
