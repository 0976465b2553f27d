package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"bookshare/model"
	"bookshare/store"
)

var (
	ErrBadInput = errors.New("bad input")
	ErrNotFound = errors.New("listing not found")
	ErrNotOwner = errors.New("not the listing owner")
)

const (
	defaultBrowseLimit = 50
	maxImages          = 5
)

type Listings interface {
	ListAvailable(ctx context.Context, limit int) ([]model.Book, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Book, error)
	Get(ctx context.Context, id string) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id string) error
}

type Profiles interface {
	ByID(ctx context.Context, id string) (*model.User, error)
}

// ImageUpload is one file from the listing form.
type ImageUpload struct {
	Name    string
	Content io.Reader
}

type Service interface {
	// Browse lists available books, newest first, with owners joined.
	Browse(ctx context.Context, limit int) ([]model.Book, error)

	// Owned lists the caller's books, newest first, without the owner join.
	Owned(ctx context.Context, ownerID string) ([]model.Book, error)

	Detail(ctx context.Context, id string) (*model.Book, error)
	Create(ctx context.Context, ownerID string, req model.CreateBookReq, images []ImageUpload) (*model.Book, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type service struct {
	listings Listings
	profiles Profiles
	uploads  store.Uploader
	now      func() time.Time
}

func New(l Listings, p Profiles, up store.Uploader) Service {
	return &service{listings: l, profiles: p, uploads: up, now: time.Now}
}

func (s *service) Browse(ctx context.Context, limit int) ([]model.Book, error) {
	if limit <= 0 {
		limit = defaultBrowseLimit
	}
	books, err := s.listings.ListAvailable(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.joinOwners(ctx, books)
	return books, nil
}

// joinOwners resolves each book's owner concurrently. A failed or empty
// lookup leaves that one book with a nil owner; it never touches the rest
// and the slice keeps its fetch order.
func (s *service) joinOwners(ctx context.Context, books []model.Book) {
	owners := make([]*model.User, len(books))
	var wg sync.WaitGroup
	for i := range books {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := s.profiles.ByID(ctx, books[i].UserID)
			if err != nil {
				return
			}
			owners[i] = u
		}(i)
	}
	wg.Wait()
	for i := range books {
		books[i].Owner = owners[i]
	}
}

func (s *service) Owned(ctx context.Context, ownerID string) ([]model.Book, error) {
	return s.listings.ListByOwner(ctx, ownerID)
}

func (s *service) Detail(ctx context.Context, id string) (*model.Book, error) {
	b, err := s.listings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if u, err := s.profiles.ByID(ctx, b.UserID); err == nil {
		b.Owner = u
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, ownerID string, req model.CreateBookReq, images []ImageUpload) (*model.Book, error) {
	// Reject before any network call.
	if req.Title == "" || req.Author == "" || req.PricePerDay < 0 {
		return nil, ErrBadInput
	}
	if !model.Condition(req.Condition).Valid() {
		return nil, ErrBadInput
	}
	if len(images) > maxImages {
		return nil, ErrBadInput
	}

	now := s.now().UTC()
	urls := make([]string, 0, len(images))
	for _, img := range images {
		path := fmt.Sprintf("books/%s/%d-%s", ownerID, now.UnixMilli(), img.Name)
		u, err := s.uploads.Upload(ctx, img.Content, path, true)
		if err != nil {
			return nil, fmt.Errorf("upload image %s: %w", img.Name, err)
		}
		urls = append(urls, u)
	}

	b := &model.Book{
		ID:            fmt.Sprintf("book_%s_%d", ownerID, now.UnixNano()),
		UserID:        ownerID,
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Edition:       req.Edition,
		Subject:       req.Subject,
		CourseCode:    req.CourseCode,
		Description:   req.Description,
		Condition:     model.Condition(req.Condition),
		PricePerDay:   req.PricePerDay,
		PricePerWeek:  req.PricePerWeek,
		PricePerMonth: req.PricePerMonth,
		Images:        urls,
		IsAvailable:   true,
		Location:      req.Location,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.listings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	b, err := s.listings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if b.UserID != ownerID {
		return ErrNotOwner
	}
	return s.listings.Delete(ctx, id)
}
