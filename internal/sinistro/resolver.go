package sinistro

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cl4ydson/sinistros-control/internal/logger"
)

// Repository is the persistence contract for claim records. Implementations
// must return ErrNotFound on empty lookups and ErrConflict when the
// unique-constraint backstop fires on insert.
type Repository interface {
	BuscarPorNotaConhecimento(ctx context.Context, notaFiscal string, nrConhecimento *string) (*Sinistro, error)
	BuscarPorID(ctx context.Context, id int64) (*Sinistro, error)
	Inserir(ctx context.Context, campos map[string]any) (int64, error)
	Atualizar(ctx context.Context, id int64, campos map[string]any) error
	Deletar(ctx context.Context, id int64) error
	Listar(ctx context.Context, f Filtro) ([]Sinistro, error)
	Contar(ctx context.Context, f Filtro) (int64, error)
	Estatisticas(ctx context.Context) (*Estatisticas, error)
}

// ProgramacaoRepository is the persistence contract for the payment
// schedule aggregate.
type ProgramacaoRepository interface {
	SubstituirTudo(ctx context.Context, sinistroID int64, parcelas []ProgramacaoPagamento) error
	Adicionar(ctx context.Context, sinistroID int64, p *ProgramacaoPagamento) error
	MarcarPago(ctx context.Context, parcelaID int64, dtPagamento string) (bool, error)
	AtualizarParcela(ctx context.Context, parcelaID int64, campos map[string]any) (*ProgramacaoPagamento, error)
	ListarPorSinistro(ctx context.Context, sinistroID int64) ([]ProgramacaoPagamento, error)
}

// Transactor scopes claim and schedule writes to one database transaction,
// so a schedule replace is never visible without its parent claim update.
type Transactor interface {
	ComTransacao(ctx context.Context, fn func(Repository, ProgramacaoRepository) error) error
}

// Resolver implements upsert-by-natural-key against the normalized schema.
type Resolver struct {
	tx     Transactor
	engine *Engine
	log    *logger.Logger
}

func NewResolver(tx Transactor, engine *Engine, log *logger.Logger) *Resolver {
	return &Resolver{tx: tx, engine: engine, log: log}
}

// CriarOuAtualizar finds a claim by its natural key (nota_fiscal plus
// optional nr_conhecimento) and creates or updates it from the payload.
// The payload may mix semantic and physical field names; unknown keys are
// dropped by the engine. Updates skip null/absent values so a set field is
// never overwritten with null. Safe to call repeatedly with the same input.
func (r *Resolver) CriarOuAtualizar(ctx context.Context, payload map[string]any, usuario string) (*Sinistro, bool, error) {
	if err := ValidarStatus(payload); err != nil {
		return nil, false, err
	}

	entrada := make(map[string]any, len(payload))
	for k, v := range payload {
		entrada[k] = v
	}

	// The schedule travels to a child table, not a claim column.
	var itens []ItemProgramacao
	temProgramacao := false
	if bruto, ok := entrada["programacao_pagamento"]; ok {
		itens = ParsearItens(bruto, r.log)
		temProgramacao = true
		delete(entrada, "programacao_pagamento")
	}

	campos := r.engine.Translate(entrada, Write, VariantNormalizado)
	removerNulos(campos)

	notaFiscal, _ := campos["nota_fiscal"].(string)
	if notaFiscal == "" {
		return nil, false, fmt.Errorf("%w: nota_fiscal é obrigatória", ErrValidation)
	}
	var nrConhecimento *string
	if v, ok := campos["nr_conhecimento"].(string); ok && v != "" {
		nrConhecimento = &v
	}

	var (
		resultado *Sinistro
		criado    bool
	)
	err := r.tx.ComTransacao(ctx, func(repo Repository, prog ProgramacaoRepository) error {
		existente, err := repo.BuscarPorNotaConhecimento(ctx, notaFiscal, nrConhecimento)
		var id int64
		switch {
		case err == nil:
			id = existente.ID
			campos["atualizado_por"] = usuario
			if err := repo.Atualizar(ctx, id, campos); err != nil {
				return err
			}
			r.log.Info("Resolver", "Updated claim NF %s (id %d)", notaFiscal, id)
		case errors.Is(err, ErrNotFound):
			criado = true
			for campo, valor := range statusDefaults {
				if _, ok := campos[campo]; !ok {
					campos[campo] = valor
				}
			}
			campos["criado_por"] = usuario
			campos["atualizado_por"] = usuario
			id, err = repo.Inserir(ctx, campos)
			if err != nil {
				return err
			}
			r.log.Info("Resolver", "Created claim NF %s (id %d)", notaFiscal, id)
		default:
			return err
		}

		if temProgramacao {
			parcelas, err := MontarProgramacao(id, itens, r.engine)
			if err != nil {
				return err
			}
			if err := prog.SubstituirTudo(ctx, id, parcelas); err != nil {
				return err
			}
		}

		return r.finalizar(ctx, repo, prog, id, &resultado)
	})
	if err != nil {
		return nil, false, err
	}
	return resultado, criado, nil
}

// AtualizarCampos applies a partial semantic payload to a claim found by id,
// skipping nulls, then recomputes the derived state. Used by the
// sub-process-specific update path.
func (r *Resolver) AtualizarCampos(ctx context.Context, id int64, payload map[string]any, usuario string) (*Sinistro, error) {
	if err := ValidarStatus(payload); err != nil {
		return nil, err
	}

	entrada := make(map[string]any, len(payload))
	for k, v := range payload {
		entrada[k] = v
	}
	var itens []ItemProgramacao
	temProgramacao := false
	if bruto, ok := entrada["programacao_pagamento"]; ok {
		itens = ParsearItens(bruto, r.log)
		temProgramacao = true
		delete(entrada, "programacao_pagamento")
	}

	campos := r.engine.Translate(entrada, Write, VariantNormalizado)
	removerNulos(campos)
	delete(campos, "nota_fiscal")
	delete(campos, "nr_conhecimento")
	campos["atualizado_por"] = usuario

	var resultado *Sinistro
	err := r.tx.ComTransacao(ctx, func(repo Repository, prog ProgramacaoRepository) error {
		if _, err := repo.BuscarPorID(ctx, id); err != nil {
			return err
		}
		if len(campos) > 0 {
			if err := repo.Atualizar(ctx, id, campos); err != nil {
				return err
			}
		}
		if temProgramacao {
			parcelas, err := MontarProgramacao(id, itens, r.engine)
			if err != nil {
				return err
			}
			if err := prog.SubstituirTudo(ctx, id, parcelas); err != nil {
				return err
			}
		}
		return r.finalizar(ctx, repo, prog, id, &resultado)
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// finalizar reloads the row, recomputes derived state, persists it when it
// drifted, and attaches the schedule.
func (r *Resolver) finalizar(ctx context.Context, repo Repository, prog ProgramacaoRepository, id int64, resultado **Sinistro) error {
	rec, err := repo.BuscarPorID(ctx, id)
	if err != nil {
		return err
	}
	statusAnterior, prejuizoAnterior := rec.StatusGeral, rec.PrejuizoTotal
	Recompute(rec)
	if rec.StatusGeral != statusAnterior || rec.PrejuizoTotal != prejuizoAnterior {
		derivados := map[string]any{
			"status_geral":   rec.StatusGeral,
			"prejuizo_total": rec.PrejuizoTotal,
		}
		if err := repo.Atualizar(ctx, id, derivados); err != nil {
			return err
		}
	}
	parcelas, err := prog.ListarPorSinistro(ctx, id)
	if err != nil {
		return err
	}
	rec.Programacao = parcelas
	*resultado = rec
	return nil
}

func removerNulos(campos map[string]any) {
	for campo, valor := range campos {
		if valor == nil {
			delete(campos, campo)
		}
		if p, ok := valor.(*string); ok && p == nil {
			delete(campos, campo)
		}
	}
}
