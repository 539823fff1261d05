package records

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// SQLiteStore keeps candidates in a local sqlite database.
type SQLiteStore struct {
	Pool   *sql.DB
	logger *zap.Logger
}

func OpenSQLite(logger *zap.Logger, path string) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	store := &SQLiteStore{Pool: pool, logger: logger}
	if err := store.Migrate(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.Pool == nil {
		return nil
	}
	return s.Pool.Close()
}

func (s *SQLiteStore) Name() string {
	return "sqlite"
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	tx, err := s.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= schemaVersion {
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS candidates (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  skills TEXT NOT NULL DEFAULT '[]',
  experience_years INTEGER NOT NULL DEFAULT 0,
  cpd_level INTEGER NOT NULL DEFAULT 1,
  vector TEXT NOT NULL DEFAULT '[]',
  resume_text TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  content_hash TEXT NOT NULL DEFAULT '',
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_candidates_hash ON candidates(content_hash);`); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return err
	}

	return tx.Commit()
}

// Upsert stores candidates and returns how many rows were inserted or
// changed. A candidate whose content is unchanged is left alone.
func (s *SQLiteStore) Upsert(ctx context.Context, candidates *Candidates) (int, error) {
	tx, err := s.Pool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	written := 0
	for _, c := range candidates.Items {
		skillsJSON, err := json.Marshal(c.Skills)
		if err != nil {
			return 0, err
		}
		vectorJSON, err := json.Marshal(c.Vector)
		if err != nil {
			return 0, err
		}
		hash, err := contentHash(c)
		if err != nil {
			return 0, err
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO candidates (id, name, email, skills, experience_years, cpd_level, vector, resume_text, url, content_hash, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name,
  email = excluded.email,
  skills = excluded.skills,
  experience_years = excluded.experience_years,
  cpd_level = excluded.cpd_level,
  vector = excluded.vector,
  resume_text = excluded.resume_text,
  url = excluded.url,
  content_hash = excluded.content_hash,
  updated_at = excluded.updated_at
WHERE candidates.content_hash != excluded.content_hash;`,
			c.ID, c.Name, c.Email, nullableJSON(skillsJSON), c.ExperienceYears, c.CPDLevel,
			nullableJSON(vectorJSON), c.ResumeText, c.URL, hash, now,
		); err != nil {
			return 0, fmt.Errorf("upsert candidate %s: %w", c.ID, err)
		}

		var changes int
		if err := tx.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); err != nil {
			return 0, err
		}
		written += changes
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*Candidates, error) {
	rows, err := s.Pool.QueryContext(ctx, `
SELECT id, name, email, skills, experience_years, cpd_level, vector, resume_text, url
FROM candidates ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &Candidates{Items: []*Candidate{}}
	for rows.Next() {
		c, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, c)
	}
	return out, rows.Err()
}

// Get returns one candidate or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Candidate, error) {
	row := s.Pool.QueryRowContext(ctx, `
SELECT id, name, email, skills, experience_years, cpd_level, vector, resume_text, url
FROM candidates WHERE id = ?;`, id)

	c, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return c, err
}

// Delete removes candidates by id and returns how many rows went away.
func (s *SQLiteStore) Delete(ctx context.Context, ids []string) (int, error) {
	deleted := 0
	for _, id := range ids {
		res, err := s.Pool.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?;`, id)
		if err != nil {
			return deleted, fmt.Errorf("delete candidate %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return deleted, err
		}
		deleted += int(n)
	}
	return deleted, nil
}

// Prune deletes stored candidates that keep does not contain and returns how
// many rows went away.
func (s *SQLiteStore) Prune(ctx context.Context, keep *Candidates) (int, error) {
	rows, err := s.Pool.QueryContext(ctx, `SELECT id FROM candidates ORDER BY id;`)
	if err != nil {
		return 0, err
	}

	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		if keep.FindByID(id) == nil {
			stale = append(stale, id)
		}
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return 0, err
	}

	if len(stale) > 0 {
		s.logger.Debug("pruning candidates", zap.Strings("ids", stale))
	}
	return s.Delete(ctx, stale)
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scan(row scanner) (*Candidate, error) {
	c, defaulted, err := scanCandidate(row)
	if err != nil {
		return nil, err
	}
	if len(defaulted) > 0 {
		logger := s.logger
		if logger == nil {
			logger = zap.NewNop()
		}
		logger.Warn("record fields defaulted", zap.String("candidate_id", c.ID), zap.Strings("fields", defaulted))
	}
	return c, nil
}

// scanCandidate reads one row. Skills or vector columns holding invalid JSON
// are reset to empty and named in defaulted.
func scanCandidate(row scanner) (*Candidate, []string, error) {
	var (
		c                      Candidate
		skillsJSON, vectorJSON string
		defaulted              []string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &skillsJSON, &c.ExperienceYears, &c.CPDLevel,
		&vectorJSON, &c.ResumeText, &c.URL); err != nil {
		return nil, nil, err
	}

	if err := json.Unmarshal([]byte(skillsJSON), &c.Skills); err != nil {
		c.Skills = nil
		defaulted = append(defaulted, "skills")
	}
	if err := json.Unmarshal([]byte(vectorJSON), &c.Vector); err != nil {
		c.Vector = nil
		defaulted = append(defaulted, "vector")
	}
	if len(c.Vector) == 0 {
		c.Vector = nil
	}
	c.normalize()
	return &c, defaulted, nil
}

func contentHash(c *Candidate) (string, error) {
	data, err := json.Marshal(struct {
		Name            string    `json:"name"`
		Email           string    `json:"email"`
		Skills          []string  `json:"skills"`
		ExperienceYears int       `json:"experience_years"`
		CPDLevel        int       `json:"cpd_level"`
		Vector          []float32 `json:"vector"`
		ResumeText      string    `json:"resume_text"`
		URL             string    `json:"url"`
	}{c.Name, c.Email, c.Skills, c.ExperienceYears, c.CPDLevel, c.Vector, c.ResumeText, c.URL})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func nullableJSON(data []byte) string {
	if string(data) == "null" {
		return "[]"
	}
	return string(data)
}
