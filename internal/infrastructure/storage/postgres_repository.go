package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/ports"
)

const articlesTable = "articles"

const schema = `CREATE TABLE IF NOT EXISTS articles (
    id                    UUID PRIMARY KEY,
    source_url            TEXT NOT NULL UNIQUE,
    headline              TEXT NOT NULL,
    processing_status     TEXT NOT NULL,
    genre                 TEXT NOT NULL DEFAULT '',
    translation_languages TEXT[] NOT NULL DEFAULT '{}',
    payload               JSONB NOT NULL,
    created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresRepository persists article records into Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)

// Open connects through the lib/pq driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema creates the articles table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Exists reports whether a record with the canonical link is stored.
func (r *PostgresRepository) Exists(ctx context.Context, link string) (bool, error) {
	query, args, err := r.existsQuery(link)
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query article: %w", err)
	}
	return true, nil
}

// Insert stores the record; a second insert for the same link is a no-op.
func (r *PostgresRepository) Insert(ctx context.Context, record domain.ArticleRecord) error {
	query, args, err := r.insertQuery(record)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("insert article (%s): %w", pqErr.Code.Name(), err)
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *PostgresRepository) existsQuery(link string) (string, []any, error) {
	query, args, err := r.builder.
		Select("1").
		From(articlesTable).
		Where(sq.Eq{"source_url": link}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build exists query: %w", err)
	}
	return query, args, nil
}

func (r *PostgresRepository) insertQuery(record domain.ArticleRecord) (string, []any, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", nil, fmt.Errorf("marshal record: %w", err)
	}

	langs := make([]string, 0, len(record.Translations))
	for lang, t := range record.Translations {
		if t.IsAvailable {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)

	query, args, err := r.builder.
		Insert(articlesTable).
		Columns("id", "source_url", "headline", "processing_status", "genre", "translation_languages", "payload", "created_at").
		Values(
			record.ID,
			record.Original.SourceURL,
			record.SimplifiedHeadline,
			string(record.ProcessingStatus),
			string(record.Genre),
			pq.Array(langs),
			payload,
			record.CreatedAt,
		).
		Suffix("ON CONFLICT (source_url) DO NOTHING").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build insert query: %w", err)
	}
	return query, args, nil
}
