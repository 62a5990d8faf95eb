package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cl4ydson/sinistros-control/internal/response"
	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

type LegadoResponse = response.APIResponse[map[string]any]

// handleBuscarLegado reads one row of the spreadsheet-era wide table and
// answers it in the semantic vocabulary.
func (app *application) handleBuscarLegado(w http.ResponseWriter, r *http.Request) {
	notaFiscal := chi.URLParam(r, "notaFiscal")

	ctx := r.Context()
	linha, err := app.store.Legado.BuscarPorNotaConhecimento(ctx, notaFiscal, r.URL.Query().Get("nr_conhecimento"))
	if err != nil {
		app.respondError(w, err)
		return
	}

	dados := app.engine.Translate(linha, sinistro.Read, sinistro.VariantLegado)

	resp := &LegadoResponse{Success: true, Data: dados}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// handleSalvarLegado upserts one wide-table row from a semantic payload,
// keeping the legacy consumers fed while they still exist. The NF in the
// path wins over whatever the body carries.
func (app *application) handleSalvarLegado(w http.ResponseWriter, r *http.Request) {
	notaFiscal := chi.URLParam(r, "notaFiscal")

	var payload map[string]any
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := sinistro.ValidarStatus(payload); err != nil {
		app.respondError(w, err)
		return
	}
	payload["nota_fiscal"] = notaFiscal

	campos := app.engine.Translate(payload, sinistro.Write, sinistro.VariantLegado)

	ctx := r.Context()
	criado, err := app.store.Legado.SalvarOuAtualizar(ctx, campos)
	if err != nil {
		app.respondError(w, err)
		return
	}

	status := http.StatusOK
	message := "Registro legado atualizado"
	if criado {
		status = http.StatusCreated
		message = "Registro legado criado"
	}

	resp := &response.APIResponse[any]{Success: true, Message: message}
	if err := writeJSON(w, status, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
