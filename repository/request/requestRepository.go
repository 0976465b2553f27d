// repository/request/repo.go
package requestrepo

import (
	"context"
	"encoding/json"
	"time"

	"bookshare/model"
	"bookshare/store"
)

type Repo interface {
	ListByRequester(ctx context.Context, requesterID string) ([]model.RentalRequest, error)
	ListForBooks(ctx context.Context, bookIDs []string) ([]model.RentalRequest, error)
	Get(ctx context.Context, id string) (*model.RentalRequest, error)
	Create(ctx context.Context, rr *model.RentalRequest) error
	UpdateStatus(ctx context.Context, id string, status model.RequestStatus, at time.Time) error
}

type repo struct{ st store.Store }

func New(st store.Store) Repo { return &repo{st} }

func (r *repo) ListByRequester(ctx context.Context, requesterID string) ([]model.RentalRequest, error) {
	recs, err := r.st.List(ctx, store.RentalRequests, store.Query{
		Where:   map[string]any{"requesterId": requesterID},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(recs)
}

func (r *repo) ListForBooks(ctx context.Context, bookIDs []string) ([]model.RentalRequest, error) {
	// An owner with no books has no incoming requests; skip the query.
	if len(bookIDs) == 0 {
		return []model.RentalRequest{}, nil
	}
	recs, err := r.st.List(ctx, store.RentalRequests, store.Query{
		Where:   map[string]any{"bookId": store.In(bookIDs)},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(recs)
}

func (r *repo) Get(ctx context.Context, id string) (*model.RentalRequest, error) {
	recs, err := r.st.List(ctx, store.RentalRequests, store.Query{
		Where: map[string]any{"id": id},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, store.ErrNotFound
	}
	rr, err := decode(recs[0])
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

func (r *repo) Create(ctx context.Context, rr *model.RentalRequest) error {
	raw, err := json.Marshal(rr)
	if err != nil {
		return err
	}
	var rec store.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return err
	}
	delete(rec, "book")
	delete(rec, "requester")
	delete(rec, "owner")
	return r.st.Create(ctx, store.RentalRequests, rec)
}

func (r *repo) UpdateStatus(ctx context.Context, id string, status model.RequestStatus, at time.Time) error {
	return r.st.Update(ctx, store.RentalRequests, id, store.Record{
		"status":    string(status),
		"updatedAt": at.UTC().Format(time.RFC3339),
	})
}

func decodeAll(recs []store.Record) ([]model.RentalRequest, error) {
	out := make([]model.RentalRequest, 0, len(recs))
	for _, rec := range recs {
		rr, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, nil
}

func decode(rec store.Record) (model.RentalRequest, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return model.RentalRequest{}, err
	}
	var rr model.RentalRequest
	if err := json.Unmarshal(raw, &rr); err != nil {
		return model.RentalRequest{}, err
	}
	return rr, nil
}
