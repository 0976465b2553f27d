package rentalsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookshare/model"
	"bookshare/store"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrNotOwner    ErrCode = "NOT_OWNER"
	ErrNotPending  ErrCode = "NOT_PENDING"
	ErrBadInput    ErrCode = "BAD_INPUT"
	ErrUnavailable ErrCode = "UNAVAILABLE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

type Listings interface {
	ListByOwner(ctx context.Context, ownerID string) ([]model.Book, error)
	Get(ctx context.Context, id string) (*model.Book, error)
	SetAvailability(ctx context.Context, id string, available bool, at time.Time) error
}

type Requests interface {
	ListByRequester(ctx context.Context, requesterID string) ([]model.RentalRequest, error)
	ListForBooks(ctx context.Context, bookIDs []string) ([]model.RentalRequest, error)
	Get(ctx context.Context, id string) (*model.RentalRequest, error)
	Create(ctx context.Context, rr *model.RentalRequest) error
	UpdateStatus(ctx context.Context, id string, status model.RequestStatus, at time.Time) error
}

// Overview is the my-rentals aggregate: own listings plus both sides of
// the user's rental traffic.
type Overview struct {
	Books    []model.Book          `json:"myBooks"`
	Outgoing []model.RentalRequest `json:"outgoing"`
	Incoming []model.RentalRequest `json:"incoming"`
}

type Service interface {
	// MyRentals loads the caller's listings and partitions related
	// requests into outgoing and incoming views.
	MyRentals(ctx context.Context, userID string) (*Overview, error)

	// Request files a new rental request against an available book.
	Request(ctx context.Context, requesterID string, req model.CreateRequestReq) (*model.RentalRequest, error)

	// Decide approves or rejects a pending request. Any other starting
	// status is an invalid transition.
	Decide(ctx context.Context, ownerID, requestID string, action Action) (*model.RentalRequest, error)

	// ToggleAvailability flips a listing's availability, any state.
	ToggleAvailability(ctx context.Context, ownerID, bookID string) (*model.Book, error)
}

type service struct {
	listings Listings
	requests Requests
	now      func() time.Time
}

func New(l Listings, r Requests) Service {
	return &service{listings: l, requests: r, now: time.Now}
}

// Split holds the two sides of a partition. A request can sit in both
// only in the self-rental case, which is deliberately not special-cased.
type Split struct {
	Outgoing []model.RentalRequest
	Incoming []model.RentalRequest
}

// Partition assigns each request to outgoing (user is the requester),
// incoming (request targets one of the user's books), or neither.
func Partition(requests []model.RentalRequest, userID string, myBookIDs map[string]struct{}) Split {
	sp := Split{
		Outgoing: []model.RentalRequest{},
		Incoming: []model.RentalRequest{},
	}
	for _, rr := range requests {
		if rr.RequesterID == userID {
			sp.Outgoing = append(sp.Outgoing, rr)
		}
		if _, ok := myBookIDs[rr.BookID]; ok {
			sp.Incoming = append(sp.Incoming, rr)
		}
	}
	return sp
}

func (s *service) MyRentals(ctx context.Context, userID string) (*Overview, error) {
	books, err := s.listings.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(books))
	idSet := make(map[string]struct{}, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
		idSet[b.ID] = struct{}{}
	}

	outgoing, err := s.requests.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	incoming, err := s.requests.ListForBooks(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Merge both fetches, then partition; self-rentals land on both sides.
	seen := make(map[string]struct{}, len(outgoing)+len(incoming))
	all := make([]model.RentalRequest, 0, len(outgoing)+len(incoming))
	for _, rr := range append(outgoing, incoming...) {
		if _, ok := seen[rr.ID]; ok {
			continue
		}
		seen[rr.ID] = struct{}{}
		all = append(all, rr)
	}
	sp := Partition(all, userID, idSet)

	return &Overview{Books: books, Outgoing: sp.Outgoing, Incoming: sp.Incoming}, nil
}

func (s *service) Request(ctx context.Context, requesterID string, req model.CreateRequestReq) (*model.RentalRequest, error) {
	// Validate before any store call.
	start, err := time.Parse(model.DateLayout, req.StartDate)
	if err != nil {
		return nil, makeErr(ErrBadInput)
	}
	end, err := time.Parse(model.DateLayout, req.EndDate)
	if err != nil {
		return nil, makeErr(ErrBadInput)
	}
	if start.After(end) || req.TotalPrice < 0 || req.BookID == "" {
		return nil, makeErr(ErrBadInput)
	}

	book, err := s.listings.Get(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if !book.IsAvailable {
		return nil, makeErr(ErrUnavailable)
	}

	now := s.now().UTC()
	rr := &model.RentalRequest{
		ID:          fmt.Sprintf("req_%s_%d", requesterID, now.UnixNano()),
		BookID:      book.ID,
		RequesterID: requesterID,
		OwnerID:     book.UserID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TotalPrice:  req.TotalPrice,
		Status:      model.RequestPending,
		Message:     req.Message,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.requests.Create(ctx, rr); err != nil {
		return nil, err
	}
	return rr, nil
}

func (s *service) Decide(ctx context.Context, ownerID, requestID string, action Action) (*model.RentalRequest, error) {
	var next model.RequestStatus
	switch action {
	case ActionApprove:
		next = model.RequestApproved
	case ActionReject:
		next = model.RequestRejected
	default:
		return nil, makeErr(ErrBadInput)
	}

	rr, err := s.requests.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if rr.OwnerID != ownerID {
		return nil, makeErr(ErrNotOwner)
	}
	if rr.Status != model.RequestPending {
		return nil, makeErr(ErrNotPending)
	}

	now := s.now().UTC()
	if err := s.requests.UpdateStatus(ctx, requestID, next, now); err != nil {
		return nil, err
	}
	rr.Status = next
	rr.UpdatedAt = now
	return rr, nil
}

func (s *service) ToggleAvailability(ctx context.Context, ownerID, bookID string) (*model.Book, error) {
	b, err := s.listings.Get(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if b.UserID != ownerID {
		return nil, makeErr(ErrNotOwner)
	}

	now := s.now().UTC()
	if err := s.listings.SetAvailability(ctx, bookID, !b.IsAvailable, now); err != nil {
		return nil, err
	}
	b.IsAvailable = !b.IsAvailable
	b.UpdatedAt = now
	return b, nil
}
