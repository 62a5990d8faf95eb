package main

import (
	"net/http"

	"github.com/Cl4ydson/sinistros-control/internal/response"
	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

type SinistroResponse = response.APIResponse[*sinistro.Sinistro]
type ListSinistrosResponse = response.PaginatedResponse[[]sinistro.Sinistro]
type EstatisticasResponse = response.APIResponse[*sinistro.Estatisticas]

// @Summary		Upsert claim
// @Description	Creates or updates a claim by its natural key (nota_fiscal + optional nr_conhecimento). The payload may use semantic or physical field names.
// @Tags			Sinistros
// @Accept			json
// @Produce		json
// @Success		200	{object}	SinistroResponse		"Claim updated"
// @Success		201	{object}	SinistroResponse		"Claim created"
// @Failure		400	{object}	response.ErrorResponse	"Validation failed"
// @Failure		409	{object}	response.ErrorResponse	"Concurrent upsert conflict"
// @Router			/sinistros [post]
func (app *application) handleUpsertSinistro(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ctx := r.Context()
	rec, criado, err := app.resolver.CriarOuAtualizar(ctx, payload, usuarioDe(r))
	if err != nil {
		app.respondError(w, err)
		return
	}

	status := http.StatusOK
	message := "Sinistro atualizado"
	if criado {
		status = http.StatusCreated
		message = "Sinistro criado"
	}

	resp := &SinistroResponse{
		Success: true,
		Data:    rec,
		Message: message,
	}

	if err := writeJSON(w, status, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleListSinistros(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filtro := sinistro.Filtro{
		NotaFiscal:         q.Get("nota_fiscal"),
		StatusGeral:        q.Get("status_geral"),
		Cliente:            q.Get("cliente"),
		SetorResponsavel:   q.Get("setor_responsavel"),
		DtOcorrenciaInicio: parseTimeParam(q.Get("dt_inicio")),
		DtOcorrenciaFim:    parseTimeParam(q.Get("dt_fim")),
		Skip:               parseIntOrDefault(q.Get("skip"), 0),
		Limit:              parseIntOrDefault(q.Get("limit"), 50),
	}
	if filtro.Limit < 1 || filtro.Limit > 200 {
		filtro.Limit = 50
	}
	if filtro.Skip < 0 {
		filtro.Skip = 0
	}

	ctx := r.Context()
	registros, err := app.store.Sinistros.Listar(ctx, filtro)
	if err != nil {
		app.respondError(w, err)
		return
	}
	total, err := app.store.Sinistros.Contar(ctx, filtro)
	if err != nil {
		app.respondError(w, err)
		return
	}

	resp := &ListSinistrosResponse{
		Success: true,
		Data:    registros,
		Total:   total,
		Skip:    filtro.Skip,
		Limit:   filtro.Limit,
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// handleBuscarSinistro looks a claim up by its natural key. Without
// nr_conhecimento only a row with a NULL conhecimento matches.
func (app *application) handleBuscarSinistro(w http.ResponseWriter, r *http.Request) {
	notaFiscal := r.URL.Query().Get("nota_fiscal")
	if notaFiscal == "" {
		writeJSONError(w, http.StatusBadRequest, "nota_fiscal is required")
		return
	}
	var nrConhecimento *string
	if v := r.URL.Query().Get("nr_conhecimento"); v != "" {
		nrConhecimento = &v
	}

	ctx := r.Context()
	rec, err := app.store.Sinistros.BuscarPorNotaConhecimento(ctx, notaFiscal, nrConhecimento)
	if err != nil {
		app.respondError(w, err)
		return
	}
	rec.Programacao, err = app.store.Programacao.ListarPorSinistro(ctx, rec.ID)
	if err != nil {
		app.respondError(w, err)
		return
	}

	resp := &SinistroResponse{Success: true, Data: rec}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleGetSinistro(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	ctx := r.Context()
	rec, err := app.store.Sinistros.BuscarPorID(ctx, id)
	if err != nil {
		app.respondError(w, err)
		return
	}
	rec.Programacao, err = app.store.Programacao.ListarPorSinistro(ctx, id)
	if err != nil {
		app.respondError(w, err)
		return
	}

	resp := &SinistroResponse{Success: true, Data: rec}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Partial claim update
// @Description	Applies a partial payload to one claim. Null and absent fields are skipped, so set values are never erased. Derived state is recomputed afterwards.
// @Tags			Sinistros
// @Accept			json
// @Produce		json
// @Success		200	{object}	SinistroResponse
// @Failure		400	{object}	response.ErrorResponse
// @Failure		404	{object}	response.ErrorResponse
// @Router			/sinistros/{id} [patch]
func (app *application) handleAtualizarSinistro(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	var payload map[string]any
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ctx := r.Context()
	rec, err := app.resolver.AtualizarCampos(ctx, id, payload, usuarioDe(r))
	if err != nil {
		app.respondError(w, err)
		return
	}

	resp := &SinistroResponse{Success: true, Data: rec, Message: "Sinistro atualizado"}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleDeletarSinistro(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	ctx := r.Context()
	if err := app.store.Sinistros.Deletar(ctx, id); err != nil {
		app.respondError(w, err)
		return
	}
	app.log.Info("API", "Deleted claim %d", id)

	resp := &response.APIResponse[any]{Success: true, Message: "Sinistro removido"}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleEstatisticas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	est, err := app.store.Sinistros.Estatisticas(ctx)
	if err != nil {
		app.respondError(w, err)
		return
	}

	resp := &EstatisticasResponse{Success: true, Data: est}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
