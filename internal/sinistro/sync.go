package sinistro

import (
	"context"
	"fmt"
	"time"

	"github.com/Cl4ydson/sinistros-control/internal/logger"
)

// FiltroOrigem narrows queries against the analytical source view.
type FiltroOrigem struct {
	DtInicio   *time.Time
	DtFim      *time.Time
	Cliente    string
	NotaFiscal string
	Limite     int
}

// OrigemReader is the read-only gateway to the operational logistics
// database. Rows come back keyed by the view's free-text column labels.
type OrigemReader interface {
	BuscarPorNotaConhecimento(ctx context.Context, notaFiscal, nrConhecimento string) (map[string]any, error)
	Listar(ctx context.Context, f FiltroOrigem) ([]map[string]any, error)
}

// Sincronizador pulls claim facts from the source view and upserts them
// into the normalized schema through the Resolver.
type Sincronizador struct {
	origem   OrigemReader
	resolver *Resolver
	engine   *Engine
	log      *logger.Logger
}

func NewSincronizador(origem OrigemReader, resolver *Resolver, engine *Engine, log *logger.Logger) *Sincronizador {
	return &Sincronizador{origem: origem, resolver: resolver, engine: engine, log: log}
}

// SincronizarUm fetches one claim from the source view and upserts it.
func (s *Sincronizador) SincronizarUm(ctx context.Context, notaFiscal, nrConhecimento, usuario string) (*Sinistro, bool, error) {
	linha, err := s.origem.BuscarPorNotaConhecimento(ctx, notaFiscal, nrConhecimento)
	if err != nil {
		return nil, false, fmt.Errorf("fetching claim %s from source: %w", notaFiscal, err)
	}

	payload := s.engine.Translate(linha, Read, VariantOrigem)
	rec, criado, err := s.resolver.CriarOuAtualizar(ctx, payload, usuario)
	if err != nil {
		return nil, false, err
	}

	acao := "atualizado"
	if criado {
		acao = "criado"
	}
	s.log.Info("Sync", "Claim NF %s %s from source", notaFiscal, acao)
	return rec, criado, nil
}

// SincronizarLote upserts every source row matching the filter, up to
// limite. Failures on individual rows are recorded, not fatal.
func (s *Sincronizador) SincronizarLote(ctx context.Context, f FiltroOrigem, usuario string, limite int) (*ResultadoLote, error) {
	linhas, err := s.origem.Listar(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listing source claims: %w", err)
	}
	if limite > 0 && len(linhas) > limite {
		linhas = linhas[:limite]
	}

	resultado := &ResultadoLote{Detalhes: make([]DetalheLote, 0, len(linhas))}
	for _, linha := range linhas {
		payload := s.engine.Translate(linha, Read, VariantOrigem)
		notaFiscal, _ := payload["nota_fiscal"].(string)
		nrConhecimento, _ := payload["nr_conhecimento"].(string)

		detalhe := DetalheLote{NotaFiscal: notaFiscal, NrConhecimento: nrConhecimento}
		_, criado, err := s.resolver.CriarOuAtualizar(ctx, payload, usuario)
		switch {
		case err != nil:
			resultado.Erros++
			detalhe.Acao = "erro"
			detalhe.Erro = err.Error()
			s.log.Error("Sync", "Failed to sync claim NF %s: %v", notaFiscal, err)
		case criado:
			resultado.Criados++
			detalhe.Acao = "criado"
			detalhe.Sucesso = true
		default:
			resultado.Atualizados++
			detalhe.Acao = "atualizado"
			detalhe.Sucesso = true
		}
		resultado.Detalhes = append(resultado.Detalhes, detalhe)
	}
	resultado.TotalProcessados = len(linhas)
	return resultado, nil
}
