package store

import (
	"context"
	"errors"
	"testing"

	"billed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errNoRow = errors.New("no row updated")

type fakeRepo struct {
	listedOwner string
	reserved    []string
	reserveErr  error
	owners      map[string]string
	updated     []string
}

func (f *fakeRepo) List(_ context.Context, owner string) ([]models.BillDocument, error) {
	f.listedOwner = owner
	return nil, nil
}

func (f *fakeRepo) Reserve(_ context.Context, id, _, _, _ string) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reserved = append(f.reserved, id)
	return nil
}

func (f *fakeRepo) Create(_ context.Context, bill *models.Bill) (*models.Bill, error) {
	return bill, nil
}

func (f *fakeRepo) Update(_ context.Context, owner, id string, bill *models.Bill) (*models.Bill, error) {
	stored, ok := f.owners[id]
	if !ok || (owner != "" && stored != owner) {
		return nil, errNoRow
	}
	f.updated = append(f.updated, id)
	return bill, nil
}

type fakeFiles struct {
	saved   []string
	removed []string
}

func (f *fakeFiles) Save(file *models.UploadedFile) (string, string, error) {
	name := "stored-" + file.Name
	f.saved = append(f.saved, name)
	return name, "/uploads/" + name, nil
}

func (f *fakeFiles) Remove(storedName string) {
	f.removed = append(f.removed, storedName)
}

func TestUploadReservesPlaceholder(t *testing.T) {
	repo, files := &fakeRepo{}, &fakeFiles{}
	s := NewPostgres(repo, files, zap.NewNop())

	result, err := s.Upload(context.Background(), &models.UploadedFile{Name: "a.png"}, "a.png", "e@x.tld")
	require.NoError(t, err)

	assert.Equal(t, "/uploads/stored-a.png", result.FileURL)
	assert.Equal(t, "a.png", result.FileName)
	assert.Equal(t, []string{result.Key}, repo.reserved)
	assert.Empty(t, files.removed)
}

func TestUploadRemovesFileWhenReserveFails(t *testing.T) {
	repo, files := &fakeRepo{reserveErr: errors.New("db down")}, &fakeFiles{}
	s := NewPostgres(repo, files, zap.NewNop())

	_, err := s.Upload(context.Background(), &models.UploadedFile{Name: "a.png"}, "a.png", "e@x.tld")
	assert.ErrorIs(t, err, repo.reserveErr)
	assert.Equal(t, files.saved, files.removed)
}

func TestForOwnerScopesListing(t *testing.T) {
	repo := &fakeRepo{}
	s := NewPostgres(repo, &fakeFiles{}, zap.NewNop())

	_, err := s.ForOwner("employee@test.tld").Bills().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "employee@test.tld", repo.listedOwner)

	_, err = s.Bills().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, repo.listedOwner)
}

func TestForOwnerScopesUpdate(t *testing.T) {
	repo := &fakeRepo{owners: map[string]string{
		"bill-a": "employee-a@test.tld",
		"bill-b": "employee-b@test.tld",
	}}
	s := NewPostgres(repo, &fakeFiles{}, zap.NewNop())
	ctx := context.Background()

	testCases := []struct {
		name        string
		store       *Postgres
		id          string
		expectedErr error
	}{
		{name: "own_bill", store: s.ForOwner("employee-a@test.tld"), id: "bill-a"},
		{name: "other_owner", store: s.ForOwner("employee-a@test.tld"), id: "bill-b", expectedErr: errNoRow},
		{name: "unscoped", store: s, id: "bill-b"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.store.Bills().Update(ctx, tc.id, &models.Bill{Status: models.BillStatusAccepted})
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}
	assert.Equal(t, []string{"bill-a", "bill-b"}, repo.updated)
}
