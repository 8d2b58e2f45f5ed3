package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/leadfinder/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It holds a single
// connection so that a ":memory:" database is shared by every query.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given DSN.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id               TEXT PRIMARY KEY,
	position         INTEGER NOT NULL,
	name             TEXT NOT NULL,
	email            TEXT NOT NULL,
	company          TEXT NOT NULL,
	industry         TEXT NOT NULL,
	budget           REAL NOT NULL,
	location         TEXT NOT NULL,
	score            TEXT NOT NULL,
	score_confidence INTEGER NOT NULL,
	added_at         TEXT NOT NULL,
	tags             TEXT NOT NULL DEFAULT 'null',
	notes            TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_leads_position ON leads(position);
`

const leadColumns = `id, name, email, company, industry, budget, location, score, score_confidence, added_at, tags, notes`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Reset(ctx context.Context, leads []model.Lead) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin reset")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads`); err != nil {
		return eris.Wrap(err, "sqlite: clear leads")
	}
	if err := insertLeads(ctx, tx, leads, 0); err != nil {
		return err
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit reset")
}

func (s *SQLiteStore) Prepend(ctx context.Context, leads []model.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin prepend")
	}
	defer tx.Rollback() //nolint:errcheck

	var first int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MIN(position), 0) FROM leads`).Scan(&first); err != nil {
		return eris.Wrap(err, "sqlite: min position")
	}
	if err := insertLeads(ctx, tx, leads, first-int64(len(leads))); err != nil {
		return err
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit prepend")
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.Lead, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close() //nolint:errcheck

	leads := []model.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "store: get %s", id)
	}
	return l, err
}

func (s *SQLiteStore) Update(ctx context.Context, lead model.Lead) error {
	tags, err := json.Marshal(lead.Tags)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal tags")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET name = ?, email = ?, company = ?, industry = ?, budget = ?, location = ?,
		 score = ?, score_confidence = ?, added_at = ?, tags = ?, notes = ? WHERE id = ?`,
		lead.Name, lead.Email, lead.Company, lead.Industry, lead.Budget, lead.Location,
		string(lead.Score), lead.ScoreConfidence, formatTime(lead.AddedAt), string(tags), lead.Notes,
		lead.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update lead %s", lead.ID)
	}
	return checkRowsAffected(res, lead.ID)
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count leads")
}

// helpers

func insertLeads(ctx context.Context, tx *sql.Tx, leads []model.Lead, start int64) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO leads (position, `+leadColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	for i, l := range leads {
		tags, err := json.Marshal(l.Tags)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal tags")
		}
		_, err = stmt.ExecContext(ctx,
			start+int64(i), l.ID, l.Name, l.Email, l.Company, l.Industry, l.Budget, l.Location,
			string(l.Score), l.ScoreConfidence, formatTime(l.AddedAt), string(tags), l.Notes,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert lead %s", l.ID)
		}
	}
	return nil
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "store: update %s", id)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLead(row scannable) (*model.Lead, error) {
	var (
		l       model.Lead
		score   string
		addedAt string
		tags    string
	)
	err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Company, &l.Industry, &l.Budget, &l.Location,
		&score, &l.ScoreConfidence, &addedAt, &tags, &l.Notes)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan lead")
	}

	l.Score = model.Score(score)
	if l.AddedAt, err = time.Parse(time.RFC3339Nano, addedAt); err != nil {
		return nil, eris.Wrap(err, "sqlite: parse added_at")
	}
	if err := json.Unmarshal([]byte(tags), &l.Tags); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal tags")
	}
	return &l, nil
}
