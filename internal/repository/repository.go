// Package repository implements the record store on PostgreSQL.
// Short-key uniqueness among active rows is enforced by a partial unique
// index, so concurrent allocators racing on the same key cannot both
// commit; the loser sees storage.ErrDuplicateKey and retries.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/smartinb/go-url-shortener/internal/storage"
)

const recordColumns = "id, url, url_key, created_at, updated_at"

func InitDB(dsn string, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	createTable := `
		CREATE TABLE IF NOT EXISTS urls (
			id BIGSERIAL PRIMARY KEY,
			url TEXT NOT NULL,
			url_key VARCHAR(32) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at TIMESTAMPTZ
		);
		CREATE UNIQUE INDEX IF NOT EXISTS urls_url_key_active
			ON urls (url_key) WHERE deleted_at IS NULL;`

	if _, err := db.Exec(createTable); err != nil {
		logger.Fatal("cannot create urls table", zap.Error(err))
	}

	return db
}

type URLRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func CreateURLRepository(db *sql.DB, logger *zap.Logger) *URLRepository {
	return &URLRepository{
		db:     db,
		logger: logger,
	}
}

func (r *URLRepository) Create(ctx context.Context, url, shortKey string) (*storage.URLRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO urls (url, url_key) VALUES ($1, $2) RETURNING "+recordColumns+";",
		url, shortKey,
	)

	record, err := scanRecord(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, storage.ErrDuplicateKey
		}
		return nil, fmt.Errorf("insert url: %w", err)
	}

	return record, nil
}

func (r *URLRepository) FindByKey(ctx context.Context, shortKey string) (*storage.URLRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM urls WHERE url_key = $1 AND deleted_at IS NULL;",
		shortKey,
	)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("find by key: %w", err)
	}
	return record, nil
}

func (r *URLRepository) FindByID(ctx context.Context, id int64) (*storage.URLRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM urls WHERE id = $1 AND deleted_at IS NULL;",
		id,
	)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("find by id: %w", err)
	}
	return record, nil
}

func (r *URLRepository) List(ctx context.Context, q storage.ListQuery) (*storage.ListResult, error) {
	q = q.Normalize()

	where := "deleted_at IS NULL AND ($1 = '' OR url LIKE '%' || $1 || '%')"

	var total int
	err := r.db.QueryRowContext(ctx,
		"SELECT count(*) FROM urls WHERE "+where+";", q.Search,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count urls: %w", err)
	}

	order := "DESC"
	if q.Order == storage.OrderAsc {
		order = "ASC"
	}

	query := "SELECT " + recordColumns + " FROM urls WHERE " + where +
		" ORDER BY created_at " + order + ", id " + order
	args := []any{q.Search}
	if !q.Unpaginated {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, q.PageSize, (q.Page-1)*q.PageSize)
	}

	rows, err := r.db.QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("list urls: %w", err)
	}
	defer rows.Close()

	items := make([]storage.URLRecord, 0)
	for rows.Next() {
		var rec storage.URLRecord
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.ShortKey, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan url row: %w", err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list urls: %w", err)
	}

	lastPage := storage.Pages(total, q.PageSize)
	if q.Unpaginated {
		lastPage = 1
	}

	return &storage.ListResult{Items: items, Total: total, LastPage: lastPage}, nil
}

func (r *URLRepository) Update(ctx context.Context, id int64, url *string) (*storage.URLRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE urls SET url = COALESCE($2, url), updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL RETURNING `+recordColumns+";",
		id, url,
	)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("update url: %w", err)
	}
	return record, nil
}

func (r *URLRepository) SoftDelete(ctx context.Context, id int64) (*storage.URLRecord, error) {
	// RETURNING reports the row minus deleted_at, which is exactly the
	// pre-deletion projection callers expect
	row := r.db.QueryRowContext(ctx,
		`UPDATE urls SET deleted_at = now()
		 WHERE id = $1 AND deleted_at IS NULL RETURNING `+recordColumns+";",
		id,
	)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("soft delete url: %w", err)
	}
	return record, nil
}

func (r *URLRepository) ExistsActive(ctx context.Context, shortKey string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM urls WHERE url_key = $1 AND deleted_at IS NULL);",
		shortKey,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists check: %w", err)
	}
	return exists, nil
}

func (r *URLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanRecord(row *sql.Row) (*storage.URLRecord, error) {
	var rec storage.URLRecord
	err := row.Scan(&rec.ID, &rec.URL, &rec.ShortKey, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
