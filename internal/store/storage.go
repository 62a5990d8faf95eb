package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

// Queryer is the slice of sqlx satisfied by both *sqlx.DB and *sqlx.Tx, so
// every store works inside or outside a transaction.
type Queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Storage struct {
	db *sqlx.DB

	Sinistros   *SinistroStore
	Programacao *ProgramacaoStore
	Legado      *LegadoStore
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		db:          db,
		Sinistros:   &SinistroStore{db: db},
		Programacao: &ProgramacaoStore{db: db},
		Legado:      &LegadoStore{db: db},
	}
}

var (
	_ sinistro.Transactor            = (*Storage)(nil)
	_ sinistro.Repository            = (*SinistroStore)(nil)
	_ sinistro.ProgramacaoRepository = (*ProgramacaoStore)(nil)
)

// ComTransacao runs fn with transaction-scoped stores. Any error rolls the
// whole transaction back, so partial claim/schedule writes never commit.
func (s *Storage) ComTransacao(ctx context.Context, fn func(sinistro.Repository, sinistro.ProgramacaoRepository) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	repo := &SinistroStore{db: tx}
	prog := &ProgramacaoStore{db: tx}

	if err := fn(repo, prog); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
