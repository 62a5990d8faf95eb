package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

// ProgramacaoStore persists the payment schedule child table. Every write
// refreshes the parent claim's atualizado_em so the audit trail stays honest
// even when only an installment changed.
type ProgramacaoStore struct {
	db Queryer
}

// SubstituirTudo replaces the whole schedule of a claim. The capacity check
// happens before the delete, so an oversized payload leaves the existing
// schedule untouched.
func (s *ProgramacaoStore) SubstituirTudo(ctx context.Context, sinistroID int64, parcelas []sinistro.ProgramacaoPagamento) error {
	if len(parcelas) > sinistro.MaxParcelas {
		return fmt.Errorf("%w: %d installments, limit is %d", sinistro.ErrCapacityExceeded, len(parcelas), sinistro.MaxParcelas)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM programacao_pagamento WHERE sinistro_id = $1`, sinistroID); err != nil {
		return fmt.Errorf("clearing schedule of claim %d: %w", sinistroID, err)
	}

	for i := range parcelas {
		parcelas[i].SinistroID = sinistroID
		if err := s.inserir(ctx, &parcelas[i]); err != nil {
			return err
		}
	}
	return s.tocarSinistro(ctx, sinistroID)
}

// Adicionar appends one installment after the current last ordinal. Fails
// with ErrCapacityExceeded when the claim already holds MaxParcelas rows.
func (s *ProgramacaoStore) Adicionar(ctx context.Context, sinistroID int64, p *sinistro.ProgramacaoPagamento) error {
	var ultimaOrdem int
	err := s.db.GetContext(ctx, &ultimaOrdem,
		`SELECT COALESCE(MAX(ordem), 0) FROM programacao_pagamento WHERE sinistro_id = $1`, sinistroID)
	if err != nil {
		return fmt.Errorf("reading schedule of claim %d: %w", sinistroID, err)
	}
	if ultimaOrdem >= sinistro.MaxParcelas {
		return fmt.Errorf("%w: claim %d already holds %d installments", sinistro.ErrCapacityExceeded, sinistroID, ultimaOrdem)
	}

	p.SinistroID = sinistroID
	p.Ordem = ultimaOrdem + 1
	if err := s.inserir(ctx, p); err != nil {
		return err
	}
	return s.tocarSinistro(ctx, sinistroID)
}

// MarcarPago flags one installment as settled. A missing installment is a
// no-op reported through the boolean, not an error.
func (s *ProgramacaoStore) MarcarPago(ctx context.Context, parcelaID int64, dtPagamento string) (bool, error) {
	var sinistroID int64
	err := s.db.GetContext(ctx, &sinistroID, `
		UPDATE programacao_pagamento
		SET pago = true, dt_pagamento_real = $2, atualizado_em = now()
		WHERE id = $1
		RETURNING sinistro_id
	`, parcelaID, dtPagamento)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("settling installment %d: %w", parcelaID, err)
	}
	return true, s.tocarSinistro(ctx, sinistroID)
}

// AtualizarParcela applies a partial update to one installment. Wire field
// names (data, valor, doctoESL) are mapped to their columns here; unknown
// keys are ignored.
func (s *ProgramacaoStore) AtualizarParcela(ctx context.Context, parcelaID int64, campos map[string]any) (*sinistro.ProgramacaoPagamento, error) {
	colunaPor := map[string]string{
		"data":              "data_pagamento",
		"valor":             "valor_pagamento",
		"doctoESL":          "documento_esl",
		"pago":              "pago",
		"dt_pagamento_real": "dt_pagamento_real",
	}

	colunas := []string{}
	for chave := range campos {
		if coluna, ok := colunaPor[chave]; ok {
			colunas = append(colunas, coluna)
		}
	}
	sort.Strings(colunas)

	valorPor := make(map[string]any, len(campos))
	for chave, valor := range campos {
		if coluna, ok := colunaPor[chave]; ok {
			valorPor[coluna] = valor
		}
	}

	set := make([]string, 0, len(colunas)+1)
	args := make([]any, 0, len(colunas)+1)
	for i, coluna := range colunas {
		set = append(set, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(coluna), i+1))
		args = append(args, valorPor[coluna])
	}
	set = append(set, "atualizado_em = now()")
	args = append(args, parcelaID)

	query := fmt.Sprintf(`
		UPDATE programacao_pagamento
		SET %s
		WHERE id = $%d
		RETURNING *
	`, strings.Join(set, ", "), len(args))

	var parcela sinistro.ProgramacaoPagamento
	if err := s.db.GetContext(ctx, &parcela, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sinistro.ErrNotFound
		}
		return nil, fmt.Errorf("updating installment %d: %w", parcelaID, err)
	}
	if err := s.tocarSinistro(ctx, parcela.SinistroID); err != nil {
		return nil, err
	}
	return &parcela, nil
}

func (s *ProgramacaoStore) ListarPorSinistro(ctx context.Context, sinistroID int64) ([]sinistro.ProgramacaoPagamento, error) {
	parcelas := []sinistro.ProgramacaoPagamento{}
	err := s.db.SelectContext(ctx, &parcelas,
		`SELECT * FROM programacao_pagamento WHERE sinistro_id = $1 ORDER BY ordem ASC`, sinistroID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule of claim %d: %w", sinistroID, err)
	}
	return parcelas, nil
}

func (s *ProgramacaoStore) inserir(ctx context.Context, p *sinistro.ProgramacaoPagamento) error {
	query := `
		INSERT INTO programacao_pagamento
			(sinistro_id, ordem, data_pagamento, valor_pagamento, documento_esl, pago, dt_pagamento_real)
		VALUES
			(:sinistro_id, :ordem, :data_pagamento, :valor_pagamento, :documento_esl, :pago, :dt_pagamento_real)
		RETURNING id
	`
	rows, err := sqlx.NamedQueryContext(ctx, s.db, query, p)
	if err != nil {
		return fmt.Errorf("inserting installment %d of claim %d: %w", p.Ordem, p.SinistroID, err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&p.ID); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *ProgramacaoStore) tocarSinistro(ctx context.Context, sinistroID int64) error {
	_, err := s.db.ExecContext(ctx, `UPDATE sinistros SET atualizado_em = now() WHERE id = $1`, sinistroID)
	if err != nil {
		return fmt.Errorf("touching claim %d: %w", sinistroID, err)
	}
	return nil
}
