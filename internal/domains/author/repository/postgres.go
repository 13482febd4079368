package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bookcatalog/internal/domains/author"
	"bookcatalog/internal/shared/query"
	"bookcatalog/internal/shared/utils"
	"bookcatalog/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) author.Repository {
	return &postgresRepository{pool: pool, cache: c}
}

const (
	authorCacheKeyPrefix = "author:"
	cacheTTL             = 15 * time.Minute

	authorColumns = "id, name, age, nationality, book_ids, version, created_at, updated_at"
)

// sortColumns maps allowed sortBy parameters onto real columns. The
// query builder already restricted the value to its allow-list.
var sortColumns = map[string]string{
	"name":        "name",
	"age":         "age",
	"nationality": "nationality",
	"createdAt":   "created_at",
}

func scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	var bookIDs []string
	err := row.Scan(&a.ID, &a.Name, &a.Age, &a.Nationality, pq.Array(&bookIDs),
		&a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Books, err = parseIDs(bookIDs)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse book id %q: %w", s, err)
		}
		out[i] = id
	}
	return out, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	q := `
        INSERT INTO authors (id, name, age, nationality, book_ids, version)
        VALUES ($1, $2, $3, $4, $5, 0)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, q,
		a.ID, a.Name, a.Age, a.Nationality, pq.Array(idStrings(a.Books))))
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cached author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	q := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("get author by id: %w", err)
	}

	// Best effort; a failed cache write never fails the read.
	_ = r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return a, nil
}

// buildFilter translates the normalized filter into WHERE clauses.
func buildFilter(f query.Filter, args []interface{}) ([]string, []interface{}) {
	var clauses []string

	if name, ok := f.Text["name"]; ok {
		args = append(args, "%"+name+"%")
		clauses = append(clauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if nat, ok := f.Exact["nationality"]; ok {
		args = append(args, nat)
		clauses = append(clauses, fmt.Sprintf("nationality = $%d", len(args)))
	}
	return clauses, args
}

func (r *postgresRepository) List(ctx context.Context, opts query.Options) ([]author.Author, int64, error) {
	clauses, args := buildFilter(opts.Filter, nil)

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + utils.JoinWithAnd(clauses)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM authors"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count authors: %w", err)
	}

	direction := "ASC"
	if opts.Order == "desc" {
		direction = "DESC"
	}

	// id tie-break keeps repeated queries deterministic for equal keys.
	listQuery := fmt.Sprintf(
		"SELECT %s FROM authors%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		authorColumns, where, sortColumns[opts.SortBy], direction, len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset())

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	return authors, total, rows.Err()
}

func (r *postgresRepository) Search(ctx context.Context, q string) ([]author.Author, error) {
	match := utils.JoinWithOr([]string{"name ILIKE $1", "nationality ILIKE $1"})
	searchQuery := "SELECT " + authorColumns + " FROM authors WHERE " + match +
		" ORDER BY name ASC, id ASC"

	rows, err := r.pool.Query(ctx, searchQuery, "%"+q+"%")
	if err != nil {
		return nil, fmt.Errorf("search authors: %w", err)
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	return authors, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author, currentVersion int) (*author.Author, error) {
	q := `
        UPDATE authors
        SET name = $1, age = $2, nationality = $3, book_ids = $4,
            version = $5, updated_at = NOW()
        WHERE id = $6 AND version = $7
        RETURNING ` + authorColumns

	updated, err := scanAuthor(r.pool.QueryRow(ctx, q,
		a.Name, a.Age, a.Nationality, pq.Array(idStrings(a.Books)),
		a.Version, a.ID, currentVersion))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			exists, checkErr := r.ExistsByID(ctx, a.ID)
			if checkErr != nil {
				return nil, checkErr
			}
			if !exists {
				return nil, author.ErrAuthorNotFound
			}
			// Row exists but the version moved under us.
			return nil, author.ErrVersionConflict
		}
		return nil, fmt.Errorf("update author: %w", err)
	}

	_ = r.cache.Delete(ctx, authorCacheKeyPrefix+a.ID.String())

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	_ = r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())

	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check author exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) GetBookSummaries(ctx context.Context, ids []uuid.UUID) ([]author.BookSummary, error) {
	if len(ids) == 0 {
		return []author.BookSummary{}, nil
	}

	q := `
        SELECT id, title, genre, price, published_date
        FROM books
        WHERE id = ANY($1)
        ORDER BY title ASC, id ASC`

	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve book summaries: %w", err)
	}
	defer rows.Close()

	summaries := []author.BookSummary{}
	for rows.Next() {
		var s author.BookSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Genre, &s.Price, &s.PublishedDate); err != nil {
			return nil, fmt.Errorf("scan book summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
