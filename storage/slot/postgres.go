package slot

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// PostgresSlot keeps the blob in a row of the slot table, keyed by name.
// The table is managed by the bundled migrations.
type PostgresSlot struct {
	db   *sqlx.DB
	name string
}

var _ Slot = (*PostgresSlot)(nil)

func NewPostgresSlot(db *sqlx.DB, name string) *PostgresSlot {
	return &PostgresSlot{db: db, name: name}
}

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	if err := s.db.GetContext(ctx, &data, `SELECT data FROM slot WHERE name = $1`, s.name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading slot row %s", s.name)
	}
	return data, nil
}

func (s *PostgresSlot) Write(ctx context.Context, data []byte) error {
	q := `INSERT INTO slot (name, data, updated_at)
	      VALUES ($1, $2, now())
	      ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if _, err := s.db.ExecContext(ctx, q, s.name, data); err != nil {
		return errors.Wrapf(err, "writing slot row %s", s.name)
	}
	return nil
}
