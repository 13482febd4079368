package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/domains/book"
	"bookcatalog/internal/shared/query"
)

// fakeBookRepo is an in-memory book.Repository recording writes so
// tests can assert which calls reached the store.
type fakeBookRepo struct {
	books       map[uuid.UUID]*book.Book
	authors     map[uuid.UUID]book.AuthorSummary
	createCalls int
	updateCalls int
	lastCASWith int

	// bumpBeforeUpdate simulates a concurrent writer landing between
	// the service's read and its compare-and-swap.
	bumpBeforeUpdate bool
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:   map[uuid.UUID]*book.Book{},
		authors: map[uuid.UUID]book.AuthorSummary{},
	}
}

func (r *fakeBookRepo) addAuthor(name string) uuid.UUID {
	id := uuid.New()
	r.authors[id] = book.AuthorSummary{ID: id, Name: name, Nationality: "American"}
	return id
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) (*book.Book, error) {
	r.createCalls++
	for _, stored := range r.books {
		if stored.Title == b.Title {
			return nil, book.ErrDuplicateTitle
		}
	}
	r.books[b.ID] = b
	return b, nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookRepo) List(_ context.Context, _ query.Options) ([]book.Book, int64, error) {
	var all []book.Book
	for _, b := range r.books {
		all = append(all, *b)
	}
	return all, int64(len(all)), nil
}

func (r *fakeBookRepo) Update(_ context.Context, b *book.Book, currentVersion int) (*book.Book, error) {
	r.updateCalls++
	r.lastCASWith = currentVersion
	stored, ok := r.books[b.ID]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	if r.bumpBeforeUpdate {
		stored.Version++
		r.bumpBeforeUpdate = false
	}
	if stored.Version != currentVersion {
		return nil, book.ErrVersionConflict
	}
	copied := *b
	r.books[b.ID] = &copied
	return b, nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) AuthorExists(_ context.Context, authorID uuid.UUID) (bool, error) {
	_, ok := r.authors[authorID]
	return ok, nil
}

func (r *fakeBookRepo) ExistsByTitle(_ context.Context, title string) (bool, error) {
	for _, b := range r.books {
		if b.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookRepo) GetAuthorSummary(_ context.Context, authorID uuid.UUID) (*book.AuthorSummary, error) {
	s, ok := r.authors[authorID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeBookRepo) CountByGenre(_ context.Context) ([]book.GenreCount, error) {
	counts := map[string]int64{}
	for _, b := range r.books {
		counts[b.Genre]++
	}
	out := []book.GenreCount{}
	for genre, n := range counts {
		out = append(out, book.GenreCount{Genre: genre, Count: n})
	}
	return out, nil
}

func (r *fakeBookRepo) AvgPriceByGenre(_ context.Context) ([]book.GenreAvgPrice, error) {
	return []book.GenreAvgPrice{}, nil
}

func (r *fakeBookRepo) MostProlificAuthorID(_ context.Context) (uuid.UUID, int64, error) {
	counts := map[uuid.UUID]int64{}
	for _, b := range r.books {
		counts[b.AuthorID]++
	}
	var top uuid.UUID
	var best int64
	for id, n := range counts {
		if n > best {
			top, best = id, n
		}
	}
	return top, best, nil
}

func validCreateRequest(authorID uuid.UUID) book.CreateBookRequest {
	return book.CreateBookRequest{
		Title:         "Dune",
		Genre:         "Fiction",
		Price:         decimal.NewFromInt(15),
		PublishedDate: time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC),
		AuthorID:      authorID,
	}
}

func TestCreateUnknownAuthorFailsBeforeWrite(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest(uuid.New()))

	assert.ErrorIs(t, err, book.ErrAuthorRef)
	assert.Zero(t, repo.createCalls, "no write may happen on a dangling reference")
}

func TestCreateDuplicateTitleConflicts(t *testing.T) {
	repo := newFakeBookRepo()
	authorID := repo.addAuthor("Frank Herbert")
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest(authorID))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateRequest(authorID))
	assert.ErrorIs(t, err, book.ErrDuplicateTitle)
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	repo := newFakeBookRepo()
	authorID := repo.addAuthor("Frank Herbert")
	svc := NewBookService(repo)

	req := validCreateRequest(authorID)
	req.Price = decimal.Zero

	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
	assert.Zero(t, repo.createCalls)
}

func seedBook(t *testing.T, repo *fakeBookRepo) *book.Book {
	t.Helper()
	authorID := repo.addAuthor("Frank Herbert")
	svc := NewBookService(repo)
	created, err := svc.Create(context.Background(), validCreateRequest(authorID))
	require.NoError(t, err)
	return created
}

func TestUpdateIdenticalPayloadIsNoOp(t *testing.T) {
	repo := newFakeBookRepo()
	existing := seedBook(t, repo)
	svc := NewBookService(repo)

	title := existing.Title
	price := existing.Price
	got, err := svc.Update(context.Background(), existing.ID, book.UpdateBookRequest{
		Title: &title,
		Price: &price,
	})

	require.NoError(t, err)
	assert.Equal(t, existing.Version, got.Version, "version must not advance on a no-op")
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateEquivalentPriceRepresentationIsNoOp(t *testing.T) {
	repo := newFakeBookRepo()
	existing := seedBook(t, repo)
	svc := NewBookService(repo)

	// 15 and 15.00 are the same price.
	price := decimal.RequireFromString("15.00")
	got, err := svc.Update(context.Background(), existing.ID, book.UpdateBookRequest{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, existing.Version, got.Version)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateSingleFieldAdvancesVersionByOne(t *testing.T) {
	repo := newFakeBookRepo()
	existing := seedBook(t, repo)
	svc := NewBookService(repo)

	price := decimal.NewFromInt(20)
	got, err := svc.Update(context.Background(), existing.ID, book.UpdateBookRequest{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, existing.Version+1, got.Version)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, existing.Version, repo.lastCASWith, "compare-and-swap matches the version read")
}

func TestUpdateChangedAuthorRefIsVerified(t *testing.T) {
	repo := newFakeBookRepo()
	existing := seedBook(t, repo)
	svc := NewBookService(repo)

	missing := uuid.New()
	_, err := svc.Update(context.Background(), existing.ID, book.UpdateBookRequest{AuthorID: &missing})

	assert.ErrorIs(t, err, book.ErrAuthorRef)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateVersionConflictSurfaces(t *testing.T) {
	repo := newFakeBookRepo()
	existing := seedBook(t, repo)
	svc := NewBookService(repo)

	// A concurrent writer lands between our read and our write.
	repo.bumpBeforeUpdate = true

	price := decimal.NewFromInt(99)
	_, err := svc.Update(context.Background(), existing.ID, book.UpdateBookRequest{Price: &price})

	assert.ErrorIs(t, err, book.ErrVersionConflict)
}

func TestAggregateEmptyCollection(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo)

	agg, err := svc.Aggregate(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, agg.CountPerGenre)
	assert.Empty(t, agg.CountPerGenre)
	assert.NotNil(t, agg.AvgPricePerGenre)
	assert.Empty(t, agg.AvgPricePerGenre)
	assert.Nil(t, agg.MostProlificAuthor, "field absent for an empty collection")
}

func TestAggregateResolvesTopAuthor(t *testing.T) {
	repo := newFakeBookRepo()
	existing := seedBook(t, repo)
	svc := NewBookService(repo)

	agg, err := svc.Aggregate(context.Background())

	require.NoError(t, err)
	require.NotNil(t, agg.MostProlificAuthor)
	assert.Equal(t, existing.AuthorID, agg.MostProlificAuthor.Author.ID)
	assert.Equal(t, int64(1), agg.MostProlificAuthor.BookCount)
}

func TestAggregateUnresolvableTopAuthorOmitted(t *testing.T) {
	repo := newFakeBookRepo()
	existing := seedBook(t, repo)
	svc := NewBookService(repo)

	// The author was deleted after the book was written.
	delete(repo.authors, existing.AuthorID)

	agg, err := svc.Aggregate(context.Background())

	require.NoError(t, err)
	assert.Nil(t, agg.MostProlificAuthor)
}

func TestGetWithAuthorDanglingReference(t *testing.T) {
	repo := newFakeBookRepo()
	existing := seedBook(t, repo)
	svc := NewBookService(repo)

	delete(repo.authors, existing.AuthorID)

	detail, err := svc.GetWithAuthor(context.Background(), existing.ID)

	require.NoError(t, err)
	assert.Nil(t, detail.Author)
}
