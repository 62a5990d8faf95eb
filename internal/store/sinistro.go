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

// SinistroStore persists claim records in the normalized sinistros table.
// Insert and update statements are built from the payload's column set, so
// partial writes never touch columns the caller did not send.
type SinistroStore struct {
	db Queryer
}

func (s *SinistroStore) BuscarPorNotaConhecimento(ctx context.Context, notaFiscal string, nrConhecimento *string) (*sinistro.Sinistro, error) {
	var (
		query string
		args  []any
	)
	if nrConhecimento == nil {
		// A claim registered without a CT-e number only matches rows where
		// the column is NULL, never an arbitrary row for the same NF.
		query = `SELECT * FROM sinistros WHERE nota_fiscal = $1 AND nr_conhecimento IS NULL`
		args = []any{notaFiscal}
	} else {
		query = `SELECT * FROM sinistros WHERE nota_fiscal = $1 AND nr_conhecimento = $2`
		args = []any{notaFiscal, *nrConhecimento}
	}

	var rec sinistro.Sinistro
	if err := s.db.GetContext(ctx, &rec, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sinistro.ErrNotFound
		}
		return nil, fmt.Errorf("fetching claim NF %s: %w", notaFiscal, err)
	}
	return &rec, nil
}

func (s *SinistroStore) BuscarPorID(ctx context.Context, id int64) (*sinistro.Sinistro, error) {
	var rec sinistro.Sinistro
	err := s.db.GetContext(ctx, &rec, `SELECT * FROM sinistros WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sinistro.ErrNotFound
		}
		return nil, fmt.Errorf("fetching claim %d: %w", id, err)
	}
	return &rec, nil
}

func (s *SinistroStore) Inserir(ctx context.Context, campos map[string]any) (int64, error) {
	colunas := make([]string, 0, len(campos))
	for coluna := range campos {
		colunas = append(colunas, coluna)
	}
	sort.Strings(colunas)

	quoted := make([]string, len(colunas))
	placeholders := make([]string, len(colunas))
	args := make([]any, len(colunas))
	for i, coluna := range colunas {
		quoted[i] = pq.QuoteIdentifier(coluna)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = campos[coluna]
	}

	query := fmt.Sprintf(
		`INSERT INTO sinistros (%s) VALUES (%s) RETURNING id`,
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)

	var id int64
	if err := s.db.GetContext(ctx, &id, query, args...); err != nil {
		if sinistro.IsUniqueViolation(err) {
			return 0, fmt.Errorf("claim already registered for this natural key: %w", sinistro.ErrConflict)
		}
		return 0, fmt.Errorf("inserting claim: %w", err)
	}
	return id, nil
}

func (s *SinistroStore) Atualizar(ctx context.Context, id int64, campos map[string]any) error {
	if len(campos) == 0 {
		return nil
	}

	colunas := make([]string, 0, len(campos))
	for coluna := range campos {
		colunas = append(colunas, coluna)
	}
	sort.Strings(colunas)

	set := make([]string, 0, len(colunas)+1)
	args := make([]any, 0, len(colunas)+1)
	for i, coluna := range colunas {
		set = append(set, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(coluna), i+1))
		args = append(args, campos[coluna])
	}
	set = append(set, "atualizado_em = now()")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE sinistros SET %s WHERE id = $%d`,
		strings.Join(set, ", "),
		len(args),
	)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating claim %d: %w", id, err)
	}
	afetadas, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if afetadas == 0 {
		return sinistro.ErrNotFound
	}
	return nil
}

func (s *SinistroStore) Deletar(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sinistros WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting claim %d: %w", id, err)
	}
	afetadas, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if afetadas == 0 {
		return sinistro.ErrNotFound
	}
	return nil
}

func (s *SinistroStore) Listar(ctx context.Context, f sinistro.Filtro) ([]sinistro.Sinistro, error) {
	where, args := filtroWhere(f)
	args = append(args, f.Limit, f.Skip)
	query := fmt.Sprintf(
		`SELECT * FROM sinistros %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)

	registros := []sinistro.Sinistro{}
	if err := s.db.SelectContext(ctx, &registros, query, args...); err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	return registros, nil
}

func (s *SinistroStore) Contar(ctx context.Context, f sinistro.Filtro) (int64, error) {
	where, args := filtroWhere(f)
	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM sinistros %s`, where)
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("counting claims: %w", err)
	}
	return total, nil
}

func (s *SinistroStore) Estatisticas(ctx context.Context) (*sinistro.Estatisticas, error) {
	query := `
		SELECT
			COUNT(*)                                            AS total_sinistros,
			COUNT(*) FILTER (WHERE status_geral = $1)           AS nao_iniciados,
			COUNT(*) FILTER (WHERE status_geral = $2)           AS em_andamento,
			COUNT(*) FILTER (WHERE status_geral = $3)           AS concluidos,
			COALESCE(SUM(valor_sinistro_total), 0)              AS valor_total_sinistros,
			COALESCE(SUM(valor_indenizado_total), 0)            AS valor_total_indenizacoes,
			COALESCE(SUM(prejuizo_total), 0)                    AS valor_total_prejuizo,
			COUNT(*) FILTER (WHERE acionamento_juridico)        AS acionamentos_juridicos,
			COUNT(*) FILTER (WHERE acionamento_seguradora)      AS acionamentos_seguradora
		FROM sinistros
	`
	var est sinistro.Estatisticas
	err := s.db.GetContext(ctx, &est, query,
		sinistro.StatusGeralNaoIniciado,
		sinistro.StatusGeralEmAndamento,
		sinistro.StatusGeralConcluido,
	)
	if err != nil {
		return nil, fmt.Errorf("computing claim statistics: %w", err)
	}
	return &est, nil
}

func filtroWhere(f sinistro.Filtro) (string, []any) {
	clauses := []string{}
	args := []any{}

	add := func(clause string, valor any) {
		args = append(args, valor)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.NotaFiscal != "" {
		add("nota_fiscal = $%d", f.NotaFiscal)
	}
	if f.StatusGeral != "" {
		add("status_geral = $%d", f.StatusGeral)
	}
	if f.Cliente != "" {
		add("cliente ILIKE $%d", "%"+f.Cliente+"%")
	}
	if f.SetorResponsavel != "" {
		add("setor_responsavel = $%d", f.SetorResponsavel)
	}
	if f.DtOcorrenciaInicio != nil {
		add("dt_ocorrencia >= $%d", *f.DtOcorrenciaInicio)
	}
	if f.DtOcorrenciaFim != nil {
		add("dt_ocorrencia <= $%d", *f.DtOcorrenciaFim)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
