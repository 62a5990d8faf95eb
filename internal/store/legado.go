package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"

	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

// LegadoStore reads and writes the denormalized eSinistros wide table kept
// for spreadsheet-era consumers. Columns are free-text labels (accents,
// trailing spaces) and are always quoted verbatim.
type LegadoStore struct {
	db Queryer
}

// BuscarPorNotaConhecimento returns one legacy row keyed by its physical
// column labels. An empty nrConhecimento matches any row for the NF.
func (s *LegadoStore) BuscarPorNotaConhecimento(ctx context.Context, notaFiscal, nrConhecimento string) (map[string]any, error) {
	query := `SELECT * FROM "eSinistros" WHERE "Nota Fiscal" = $1`
	args := []any{notaFiscal}
	if nrConhecimento != "" {
		query += ` AND "Minu.Conh" = $2`
		args = append(args, nrConhecimento)
	}
	query += ` LIMIT 1`

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching legacy claim NF %s: %w", notaFiscal, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sinistro.ErrNotFound
	}
	return scanLinha(rows)
}

// SalvarOuAtualizar upserts one legacy row by NF. The payload is already in
// physical form; only the columns present are written.
func (s *LegadoStore) SalvarOuAtualizar(ctx context.Context, campos map[string]any) (criado bool, err error) {
	notaFiscal, _ := campos["Nota Fiscal"].(string)
	if notaFiscal == "" {
		return false, fmt.Errorf("%w: coluna \"Nota Fiscal\" é obrigatória", sinistro.ErrValidation)
	}

	var id int64
	err = s.db.GetContext(ctx, &id, `SELECT id FROM "eSinistros" WHERE "Nota Fiscal" = $1 LIMIT 1`, notaFiscal)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		query, args := buildLegadoInsert(campos)
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return false, fmt.Errorf("inserting legacy claim NF %s: %w", notaFiscal, err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("looking up legacy claim NF %s: %w", notaFiscal, err)
	}

	query, args := buildLegadoUpdate(id, campos)
	if query == "" {
		return false, nil
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("updating legacy claim NF %s: %w", notaFiscal, err)
	}
	return false, nil
}

func buildLegadoInsert(campos map[string]any) (string, []any) {
	colunas := colunasOrdenadas(campos)

	quoted := make([]string, len(colunas))
	placeholders := make([]string, len(colunas))
	args := make([]any, len(colunas))
	for i, coluna := range colunas {
		quoted[i] = pq.QuoteIdentifier(coluna)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = campos[coluna]
	}

	query := fmt.Sprintf(
		`INSERT INTO "eSinistros" (%s) VALUES (%s)`,
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
	return query, args
}

func buildLegadoUpdate(id int64, campos map[string]any) (string, []any) {
	colunas := colunasOrdenadas(campos)
	// NF is the lookup key, never rewritten in place.
	filtradas := colunas[:0]
	for _, coluna := range colunas {
		if coluna != "Nota Fiscal" {
			filtradas = append(filtradas, coluna)
		}
	}
	if len(filtradas) == 0 {
		return "", nil
	}

	set := make([]string, len(filtradas))
	args := make([]any, 0, len(filtradas)+1)
	for i, coluna := range filtradas {
		set[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(coluna), i+1)
		args = append(args, campos[coluna])
	}
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE "eSinistros" SET %s WHERE id = $%d`,
		strings.Join(set, ", "),
		len(args),
	)
	return query, args
}

func colunasOrdenadas(campos map[string]any) []string {
	colunas := make([]string, 0, len(campos))
	for coluna := range campos {
		colunas = append(colunas, coluna)
	}
	sort.Strings(colunas)
	return colunas
}
