package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

// OrigemStore is the read-only gateway to the operational logistics
// database, exposed to this service as the vw_sinistros view. It lives on
// its own connection pool; nothing here ever writes.
type OrigemStore struct {
	db *sqlx.DB
}

func NewOrigemStore(db *sqlx.DB) *OrigemStore {
	return &OrigemStore{db: db}
}

var _ sinistro.OrigemReader = (*OrigemStore)(nil)

func (s *OrigemStore) BuscarPorNotaConhecimento(ctx context.Context, notaFiscal, nrConhecimento string) (map[string]any, error) {
	query := `SELECT * FROM vw_sinistros WHERE "Nota Fiscal" = $1`
	args := []any{notaFiscal}
	if nrConhecimento != "" {
		query += ` AND "Minu.Conh" = $2`
		args = append(args, nrConhecimento)
	}
	query += ` LIMIT 1`

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching source claim NF %s: %w", notaFiscal, err)
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

func (s *OrigemStore) Listar(ctx context.Context, f sinistro.FiltroOrigem) ([]map[string]any, error) {
	clauses := []string{}
	args := []any{}

	add := func(clause string, valor any) {
		args = append(args, valor)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.NotaFiscal != "" {
		add(`"Nota Fiscal" = $%d`, f.NotaFiscal)
	}
	if f.Cliente != "" {
		add(`"Destinatário" ILIKE $%d`, "%"+f.Cliente+"%")
	}
	if f.DtInicio != nil {
		add(`"Data Coleta" >= $%d`, *f.DtInicio)
	}
	if f.DtFim != nil {
		add(`"Data Coleta" <= $%d`, *f.DtFim)
	}

	query := `SELECT * FROM vw_sinistros`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY "Data Coleta" DESC`
	if f.Limite > 0 {
		args = append(args, f.Limite)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing source claims: %w", err)
	}
	defer rows.Close()

	linhas := []map[string]any{}
	for rows.Next() {
		linha, err := scanLinha(rows)
		if err != nil {
			return nil, err
		}
		linhas = append(linhas, linha)
	}
	return linhas, rows.Err()
}

// scanLinha reads one row into a map keyed by the physical column labels.
// lib/pq hands text columns back as []byte, which would JSON-encode as
// base64, so they are flattened to strings here.
func scanLinha(rows *sqlx.Rows) (map[string]any, error) {
	linha := map[string]any{}
	if err := rows.MapScan(linha); err != nil {
		return nil, fmt.Errorf("scanning row: %w", err)
	}
	for coluna, valor := range linha {
		if b, ok := valor.([]byte); ok {
			linha[coluna] = string(b)
		}
	}
	return linha, nil
}
