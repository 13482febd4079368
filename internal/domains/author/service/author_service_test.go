package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/domains/author"
	"bookcatalog/internal/shared/query"
)

// fakeAuthorRepo is an in-memory author.Repository recording writes so
// tests can assert which calls reached the store.
type fakeAuthorRepo struct {
	authors     map[uuid.UUID]*author.Author
	updateCalls int
	lastCASWith int
}

func newFakeAuthorRepo(seed ...*author.Author) *fakeAuthorRepo {
	r := &fakeAuthorRepo{authors: map[uuid.UUID]*author.Author{}}
	for _, a := range seed {
		r.authors[a.ID] = a
	}
	return r
}

func (r *fakeAuthorRepo) Create(_ context.Context, a *author.Author) (*author.Author, error) {
	r.authors[a.ID] = a
	return a, nil
}

func (r *fakeAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := r.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAuthorRepo) List(_ context.Context, opts query.Options) ([]author.Author, int64, error) {
	var all []author.Author
	for _, a := range r.authors {
		all = append(all, *a)
	}
	return all, int64(len(all)), nil
}

func (r *fakeAuthorRepo) Search(_ context.Context, _ string) ([]author.Author, error) {
	var all []author.Author
	for _, a := range r.authors {
		all = append(all, *a)
	}
	return all, nil
}

func (r *fakeAuthorRepo) Update(_ context.Context, a *author.Author, currentVersion int) (*author.Author, error) {
	r.updateCalls++
	r.lastCASWith = currentVersion
	stored, ok := r.authors[a.ID]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	if stored.Version != currentVersion {
		return nil, author.ErrVersionConflict
	}
	copied := *a
	r.authors[a.ID] = &copied
	return a, nil
}

func (r *fakeAuthorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(r.authors, id)
	return nil
}

func (r *fakeAuthorRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.authors[id]
	return ok, nil
}

func (r *fakeAuthorRepo) GetBookSummaries(_ context.Context, _ []uuid.UUID) ([]author.BookSummary, error) {
	return []author.BookSummary{}, nil
}

func seedAuthor() *author.Author {
	return &author.Author{
		ID:          uuid.New(),
		Name:        "Frank Herbert",
		Age:         65,
		Nationality: "American",
		Books:       []uuid.UUID{},
		Version:     3,
	}
}

func TestUpdateIdenticalPayloadIsNoOp(t *testing.T) {
	existing := seedAuthor()
	repo := newFakeAuthorRepo(existing)
	svc := NewAuthorService(repo)

	name := existing.Name
	got, err := svc.Update(context.Background(), existing.ID, author.UpdateAuthorRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Version, "version must not advance on a no-op")
	assert.Zero(t, repo.updateCalls, "no write may reach the store")
}

func TestUpdateSingleFieldAdvancesVersionByOne(t *testing.T) {
	existing := seedAuthor()
	repo := newFakeAuthorRepo(existing)
	svc := NewAuthorService(repo)

	age := 66
	got, err := svc.Update(context.Background(), existing.ID, author.UpdateAuthorRequest{Age: &age})

	require.NoError(t, err)
	assert.Equal(t, 4, got.Version)
	assert.Equal(t, 66, got.Age)
	assert.Equal(t, "Frank Herbert", got.Name, "untouched fields survive the merge")
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, 3, repo.lastCASWith, "compare-and-swap matches the version read")
}

func TestUpdateReorderedBooksIsNoOp(t *testing.T) {
	b1, b2 := uuid.New(), uuid.New()
	existing := seedAuthor()
	existing.Books = []uuid.UUID{b1, b2}
	repo := newFakeAuthorRepo(existing)
	svc := NewAuthorService(repo)

	reordered := []uuid.UUID{b2, b1}
	got, err := svc.Update(context.Background(), existing.ID, author.UpdateAuthorRequest{Books: &reordered})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())

	name := "Someone"
	_, err := svc.Update(context.Background(), uuid.New(), author.UpdateAuthorRequest{Name: &name})

	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestReplaceIdenticalPayloadIsNoOp(t *testing.T) {
	existing := seedAuthor()
	repo := newFakeAuthorRepo(existing)
	svc := NewAuthorService(repo)

	got, err := svc.Replace(context.Background(), existing.ID, author.ReplaceAuthorRequest{
		Name:        existing.Name,
		Age:         existing.Age,
		Nationality: existing.Nationality,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)
	assert.Zero(t, repo.updateCalls)
}

func TestReplaceKeepsIdentityAndBumpsVersion(t *testing.T) {
	existing := seedAuthor()
	repo := newFakeAuthorRepo(existing)
	svc := NewAuthorService(repo)

	got, err := svc.Replace(context.Background(), existing.ID, author.ReplaceAuthorRequest{
		Name:        "Brian Herbert",
		Age:         75,
		Nationality: "American",
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, 4, got.Version)
	assert.Equal(t, "Brian Herbert", got.Name)
}

func TestCreateValidation(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())

	_, err := svc.Create(context.Background(), author.CreateAuthorRequest{Name: "ab", Nationality: "x"})
	assert.Error(t, err, "short name must be rejected")
}
