package catalogsvc_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bookshare/model"
	catalogsvc "bookshare/service/catalog"
)

type listingsMock struct {
	listAvailableFn func(ctx context.Context, limit int) ([]model.Book, error)
	listByOwnerFn   func(ctx context.Context, ownerID string) ([]model.Book, error)
	getFn           func(ctx context.Context, id string) (*model.Book, error)
	createFn        func(ctx context.Context, b *model.Book) error
	deleteFn        func(ctx context.Context, id string) error
}

func (m *listingsMock) ListAvailable(ctx context.Context, limit int) ([]model.Book, error) {
	return m.listAvailableFn(ctx, limit)
}
func (m *listingsMock) ListByOwner(ctx context.Context, ownerID string) ([]model.Book, error) {
	return m.listByOwnerFn(ctx, ownerID)
}
func (m *listingsMock) Get(ctx context.Context, id string) (*model.Book, error) {
	return m.getFn(ctx, id)
}
func (m *listingsMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *listingsMock) Delete(ctx context.Context, id string) error     { return m.deleteFn(ctx, id) }

type profilesMock struct {
	byIDFn func(ctx context.Context, id string) (*model.User, error)
}

func (m *profilesMock) ByID(ctx context.Context, id string) (*model.User, error) {
	return m.byIDFn(ctx, id)
}

type uploaderMock struct {
	uploadFn func(ctx context.Context, r io.Reader, path string, upsert bool) (string, error)
}

func (m *uploaderMock) Upload(ctx context.Context, r io.Reader, path string, upsert bool) (string, error) {
	if m.uploadFn == nil {
		return "", errors.New("unexpected upload")
	}
	return m.uploadFn(ctx, r, path, upsert)
}

func TestBrowse_OwnerJoinFailureIsIsolated(t *testing.T) {
	lm := &listingsMock{
		listAvailableFn: func(ctx context.Context, limit int) ([]model.Book, error) {
			return []model.Book{
				{ID: "b1", UserID: "u1"},
				{ID: "b2", UserID: "u-broken"},
				{ID: "b3", UserID: "u3"},
			}, nil
		},
	}
	pm := &profilesMock{
		byIDFn: func(ctx context.Context, id string) (*model.User, error) {
			if id == "u-broken" {
				return nil, errors.New("profile fetch blew up")
			}
			return &model.User{ID: id, Rating: 4}, nil
		},
	}
	s := catalogsvc.New(lm, pm, &uploaderMock{})

	books, err := s.Browse(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, books, 3)

	// order preserved regardless of join completion order
	require.Equal(t, "b1", books[0].ID)
	require.Equal(t, "b2", books[1].ID)
	require.Equal(t, "b3", books[2].ID)

	// only the broken join degrades to a nil owner
	require.NotNil(t, books[0].Owner)
	require.Nil(t, books[1].Owner)
	require.NotNil(t, books[2].Owner)
	require.Equal(t, "u1", books[0].Owner.ID)
}

func TestBrowse_DefaultLimit(t *testing.T) {
	var gotLimit int
	lm := &listingsMock{
		listAvailableFn: func(ctx context.Context, limit int) ([]model.Book, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	s := catalogsvc.New(lm, &profilesMock{}, &uploaderMock{})

	_, err := s.Browse(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 50, gotLimit)
}

func TestCreate_RejectsBeforeAnyNetworkCall(t *testing.T) {
	lm := &listingsMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			t.Fatal("store touched for invalid payload")
			return nil
		},
	}
	s := catalogsvc.New(lm, &profilesMock{}, &uploaderMock{})

	cases := []model.CreateBookReq{
		{Author: "A", Condition: "good", PricePerDay: 1},                 // no title
		{Title: "T", Condition: "good", PricePerDay: 1},                  // no author
		{Title: "T", Author: "A", Condition: "mint", PricePerDay: 1},     // bad condition
		{Title: "T", Author: "A", Condition: "good", PricePerDay: -0.01}, // negative rate
	}
	for _, req := range cases {
		_, err := s.Create(context.Background(), "u1", req, nil)
		require.ErrorIs(t, err, catalogsvc.ErrBadInput, "req %+v", req)
	}
}

func TestCreate_TooManyImages(t *testing.T) {
	s := catalogsvc.New(&listingsMock{}, &profilesMock{}, &uploaderMock{})

	images := make([]catalogsvc.ImageUpload, 6)
	for i := range images {
		images[i] = catalogsvc.ImageUpload{Name: "x.png", Content: strings.NewReader("png")}
	}
	_, err := s.Create(context.Background(), "u1", model.CreateBookReq{
		Title: "T", Author: "A", Condition: "good", PricePerDay: 2,
	}, images)
	require.ErrorIs(t, err, catalogsvc.ErrBadInput)
}

func TestCreate_UploadsThenPersists(t *testing.T) {
	var created *model.Book
	lm := &listingsMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			created = b
			return nil
		},
	}
	var paths []string
	um := &uploaderMock{
		uploadFn: func(ctx context.Context, r io.Reader, path string, upsert bool) (string, error) {
			require.True(t, upsert)
			paths = append(paths, path)
			return "https://cdn/" + path, nil
		},
	}
	s := catalogsvc.New(lm, &profilesMock{}, um)

	b, err := s.Create(context.Background(), "u1", model.CreateBookReq{
		Title: "Algorithms", Author: "Cormen", Condition: "like_new", PricePerDay: 5,
	}, []catalogsvc.ImageUpload{
		{Name: "front.png", Content: strings.NewReader("a")},
		{Name: "back.png", Content: strings.NewReader("b")},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, created.ID, b.ID)
	require.True(t, strings.HasPrefix(b.ID, "book_u1_"))
	require.True(t, b.IsAvailable)
	require.Len(t, b.Images, 2)
	require.Contains(t, b.Images[0], "books/u1/")
	require.Len(t, paths, 2)
}

func TestCreate_UploadFailureAborts(t *testing.T) {
	lm := &listingsMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			t.Fatal("listing persisted despite failed upload")
			return nil
		},
	}
	um := &uploaderMock{
		uploadFn: func(ctx context.Context, r io.Reader, path string, upsert bool) (string, error) {
			return "", errors.New("storage down")
		},
	}
	s := catalogsvc.New(lm, &profilesMock{}, um)

	_, err := s.Create(context.Background(), "u1", model.CreateBookReq{
		Title: "T", Author: "A", Condition: "good", PricePerDay: 1,
	}, []catalogsvc.ImageUpload{{Name: "x.png", Content: strings.NewReader("x")}})
	require.Error(t, err)
}

func TestDelete_OwnerOnly(t *testing.T) {
	lm := &listingsMock{
		getFn: func(ctx context.Context, id string) (*model.Book, error) {
			return &model.Book{ID: id, UserID: "owner"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	s := catalogsvc.New(lm, &profilesMock{}, &uploaderMock{})

	require.NoError(t, s.Delete(context.Background(), "owner", "b1"))
	require.ErrorIs(t, s.Delete(context.Background(), "intruder", "b1"), catalogsvc.ErrNotOwner)
}
