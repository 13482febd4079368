package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog/internal/domains/book"
	"bookcatalog/internal/shared/query"
	"bookcatalog/internal/shared/utils"
	"bookcatalog/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) book.Repository {
	return &postgresRepository{pool: pool, cache: c}
}

const (
	bookCacheKeyPrefix = "book:"
	cacheTTL           = 15 * time.Minute

	bookColumns = "id, title, genre, price, published_date, available, author_id, version, created_at, updated_at"
)

var sortColumns = map[string]string{
	"title":         "title",
	"price":         "price",
	"publishedDate": "published_date",
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	err := row.Scan(&b.ID, &b.Title, &b.Genre, &b.Price, &b.PublishedDate,
		&b.Available, &b.AuthorID, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	q := `
        INSERT INTO books (id, title, genre, price, published_date, available, author_id, version)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 0)
        RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(ctx, q,
		b.ID, b.Title, b.Genre, b.Price, b.PublishedDate, b.Available, b.AuthorID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, book.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("create book: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cached book.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	q := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b, err := scanBook(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("get book by id: %w", err)
	}

	// Best effort; a failed cache write never fails the read.
	_ = r.cache.Set(ctx, cacheKey, b, cacheTTL)

	return b, nil
}

// buildFilter translates the normalized filter into WHERE clauses.
func buildFilter(f query.Filter, args []interface{}) ([]string, []interface{}) {
	var clauses []string

	if genre, ok := f.Exact["genre"]; ok {
		args = append(args, genre)
		clauses = append(clauses, fmt.Sprintf("genre = $%d", len(args)))
	}
	if available, ok := f.Bool["available"]; ok {
		args = append(args, available)
		clauses = append(clauses, fmt.Sprintf("available = $%d", len(args)))
	}
	for _, bound := range f.Min {
		if bound.Name == "price" {
			args = append(args, bound.Value)
			clauses = append(clauses, fmt.Sprintf("price >= $%d", len(args)))
		}
	}
	for _, bound := range f.Max {
		if bound.Name == "price" {
			args = append(args, bound.Value)
			clauses = append(clauses, fmt.Sprintf("price <= $%d", len(args)))
		}
	}
	return clauses, args
}

func (r *postgresRepository) List(ctx context.Context, opts query.Options) ([]book.Book, int64, error) {
	clauses, args := buildFilter(opts.Filter, nil)

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + utils.JoinWithAnd(clauses)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM books"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	direction := "ASC"
	if opts.Order == "desc" {
		direction = "DESC"
	}

	// id tie-break keeps repeated queries deterministic for equal keys.
	listQuery := fmt.Sprintf(
		"SELECT %s FROM books%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		bookColumns, where, sortColumns[opts.SortBy], direction, len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset())

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, total, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book, currentVersion int) (*book.Book, error) {
	q := `
        UPDATE books
        SET title = $1, genre = $2, price = $3, published_date = $4,
            available = $5, author_id = $6, version = $7, updated_at = NOW()
        WHERE id = $8 AND version = $9
        RETURNING ` + bookColumns

	updated, err := scanBook(r.pool.QueryRow(ctx, q,
		b.Title, b.Genre, b.Price, b.PublishedDate, b.Available, b.AuthorID,
		b.Version, b.ID, currentVersion))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, book.ErrDuplicateTitle
		}
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			checkErr := r.pool.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, b.ID).Scan(&exists)
			if checkErr != nil {
				return nil, fmt.Errorf("check book exists: %w", checkErr)
			}
			if !exists {
				return nil, book.ErrBookNotFound
			}
			// Row exists but the version moved under us.
			return nil, book.ErrVersionConflict
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	_ = r.cache.Delete(ctx, bookCacheKeyPrefix+b.ID.String())

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	_ = r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())

	return nil
}

func (r *postgresRepository) AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check author exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE title = $1)`, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check title exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) GetAuthorSummary(ctx context.Context, authorID uuid.UUID) (*book.AuthorSummary, error) {
	q := `SELECT id, name, nationality FROM authors WHERE id = $1`

	var s book.AuthorSummary
	err := r.pool.QueryRow(ctx, q, authorID).Scan(&s.ID, &s.Name, &s.Nationality)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Dangling reference resolves to an absent summary.
			return nil, nil
		}
		return nil, fmt.Errorf("resolve author summary: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) CountByGenre(ctx context.Context) ([]book.GenreCount, error) {
	q := `
        SELECT genre, COUNT(*) AS total
        FROM books
        GROUP BY genre
        ORDER BY total DESC, genre ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count by genre: %w", err)
	}
	defer rows.Close()

	counts := []book.GenreCount{}
	for rows.Next() {
		var gc book.GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Count); err != nil {
			return nil, fmt.Errorf("scan genre count: %w", err)
		}
		counts = append(counts, gc)
	}
	return counts, rows.Err()
}

func (r *postgresRepository) AvgPriceByGenre(ctx context.Context) ([]book.GenreAvgPrice, error) {
	q := `
        SELECT genre, AVG(price) AS avg_price
        FROM books
        GROUP BY genre
        ORDER BY avg_price DESC, genre ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("average price by genre: %w", err)
	}
	defer rows.Close()

	averages := []book.GenreAvgPrice{}
	for rows.Next() {
		var ga book.GenreAvgPrice
		if err := rows.Scan(&ga.Genre, &ga.AvgPrice); err != nil {
			return nil, fmt.Errorf("scan genre average: %w", err)
		}
		averages = append(averages, ga)
	}
	return averages, rows.Err()
}

func (r *postgresRepository) MostProlificAuthorID(ctx context.Context) (uuid.UUID, int64, error) {
	q := `
        SELECT author_id, COUNT(*) AS total
        FROM books
        GROUP BY author_id
        ORDER BY total DESC
        LIMIT 1`

	var authorID uuid.UUID
	var count int64
	err := r.pool.QueryRow(ctx, q).Scan(&authorID, &count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, 0, nil
		}
		return uuid.Nil, 0, fmt.Errorf("most prolific author: %w", err)
	}
	return authorID, count, nil
}
