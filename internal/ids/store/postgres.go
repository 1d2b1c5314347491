package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"idsforge/internal/ids/model"
	"idsforge/pkg/platform/sentinel"
	"idsforge/pkg/platform/tx"
)

// PostgresStore persists documents in PostgreSQL. The model snapshot is kept
// as a jsonb column; the title is denormalized for listings.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed document store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// executor returns the transaction carried by ctx when one is present,
// otherwise the pooled connection.
func (s *PostgresStore) executor(ctx context.Context) executor {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

// Migrate creates the documents table when it does not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS ids_documents (
			id         UUID PRIMARY KEY,
			title      TEXT NOT NULL,
			body       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := s.executor(ctx).ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate ids_documents: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, doc *Document) error {
	body, err := json.Marshal(doc.Root)
	if err != nil {
		return fmt.Errorf("marshal document body: %w", err)
	}
	const query = `
		INSERT INTO ids_documents (id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = s.executor(ctx).ExecContext(ctx, query, doc.ID, doc.Title(), body, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("document %s: %w", doc.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Document, error) {
	const query = `
		SELECT id, body, created_at, updated_at
		FROM ids_documents
		WHERE id = $1`
	return scanDocument(s.executor(ctx).QueryRowContext(ctx, query, id), id)
}

func (s *PostgresStore) List(ctx context.Context) ([]*Document, error) {
	const query = `
		SELECT id, body, created_at, updated_at
		FROM ids_documents
		ORDER BY created_at`
	rows, err := s.executor(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*Document
	for rows.Next() {
		doc, err := scanDocument(rows, "")
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Replace(ctx context.Context, id string, root *model.IDSRoot, now time.Time) (*Document, error) {
	body, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("marshal document body: %w", err)
	}
	const query = `
		UPDATE ids_documents
		SET title = $2, body = $3, updated_at = $4
		WHERE id = $1
		RETURNING id, body, created_at, updated_at`
	title := (&Document{Root: root}).Title()
	return scanDocument(s.executor(ctx).QueryRowContext(ctx, query, id, title, body, now), id)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM ids_documents WHERE id = $1`
	res, err := s.executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("document %s: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner, id string) (*Document, error) {
	var (
		doc  Document
		body []byte
	)
	err := row.Scan(&doc.ID, &body, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	root := &model.IDSRoot{}
	if err := json.Unmarshal(body, root); err != nil {
		return nil, fmt.Errorf("unmarshal document body: %w", err)
	}
	doc.Root = root
	return &doc, nil
}
