package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Cl4ydson/sinistros-control/internal/logger"
	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
	"github.com/Cl4ydson/sinistros-control/internal/store"
)

type application struct {
	config        config
	store         *store.Storage
	log           *logger.Logger
	engine        *sinistro.Engine
	resolver      *sinistro.Resolver
	sincronizador *sinistro.Sincronizador
}

type config struct {
	addr     string
	logLevel string
	db       dbConfig
	origemDB dbConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/sinistros", func(r chi.Router) {
			r.Post("/", app.handleUpsertSinistro)
			r.Get("/", app.handleListSinistros)
			r.Get("/busca", app.handleBuscarSinistro)
			r.Get("/estatisticas", app.handleEstatisticas)
			r.Post("/sincronizar", app.handleSincronizarUm)
			r.Post("/sincronizar/lote", app.handleSincronizarLote)

			r.Route("/legado/{notaFiscal}", func(r chi.Router) {
				r.Get("/", app.handleBuscarLegado)
				r.Put("/", app.handleSalvarLegado)
			})

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.handleGetSinistro)
				r.Patch("/", app.handleAtualizarSinistro)
				r.Delete("/", app.handleDeletarSinistro)

				r.Route("/programacao", func(r chi.Router) {
					r.Get("/", app.handleGetProgramacao)
					r.Put("/", app.handleSubstituirProgramacao)
					r.Post("/", app.handleAdicionarParcela)
				})
			})
		})

		r.Route("/programacao/{parcelaID}", func(r chi.Router) {
			r.Patch("/", app.handleAtualizarParcela)
			r.Post("/pagar", app.handlePagarParcela)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	log.Printf("Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
