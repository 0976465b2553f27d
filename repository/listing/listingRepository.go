// repository/listing/repo.go
package listingrepo

import (
	"context"
	"encoding/json"
	"time"

	"bookshare/imagefield"
	"bookshare/model"
	"bookshare/store"
)

type Repo interface {
	ListAvailable(ctx context.Context, limit int) ([]model.Book, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Book, error)
	Get(ctx context.Context, id string) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) error
	SetAvailability(ctx context.Context, id string, available bool, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type repo struct{ st store.Store }

func New(st store.Store) Repo { return &repo{st} }

func (r *repo) ListAvailable(ctx context.Context, limit int) ([]model.Book, error) {
	recs, err := r.st.List(ctx, store.Books, store.Query{
		Where:   map[string]any{"isAvailable": "1"},
		OrderBy: "createdAt",
		Desc:    true,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(recs)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID string) ([]model.Book, error) {
	recs, err := r.st.List(ctx, store.Books, store.Query{
		Where:   map[string]any{"userId": ownerID},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(recs)
}

func (r *repo) Get(ctx context.Context, id string) (*model.Book, error) {
	recs, err := r.st.List(ctx, store.Books, store.Query{
		Where: map[string]any{"id": id},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, store.ErrNotFound
	}
	b, err := decode(recs[0])
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	return r.st.Create(ctx, store.Books, encode(b))
}

func (r *repo) SetAvailability(ctx context.Context, id string, available bool, at time.Time) error {
	return r.st.Update(ctx, store.Books, id, store.Record{
		"isAvailable": flag(available),
		"updatedAt":   at.UTC().Format(time.RFC3339),
	})
}

func (r *repo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, store.Books, id)
}

// encode fixes the canonical stored shape at the write boundary: images as
// a JSON-encoded array string, availability as the backend's "1"/"0".
func encode(b *model.Book) store.Record {
	raw, _ := json.Marshal(b)
	var rec store.Record
	_ = json.Unmarshal(raw, &rec)
	delete(rec, "owner")

	images := b.Images
	if images == nil {
		images = []string{}
	}
	imgs, _ := json.Marshal(images)
	rec["images"] = string(imgs)
	rec["isAvailable"] = flag(b.IsAvailable)
	return rec
}

func decodeAll(recs []store.Record) ([]model.Book, error) {
	out := make([]model.Book, 0, len(recs))
	for _, rec := range recs {
		b, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func decode(rec store.Record) (model.Book, error) {
	images := imagefield.Normalize(rec["images"])

	cp := make(store.Record, len(rec))
	for k, v := range rec {
		cp[k] = v
	}
	cp["isAvailable"] = truthy(rec["isAvailable"])
	delete(cp, "images")

	raw, err := json.Marshal(cp)
	if err != nil {
		return model.Book{}, err
	}
	var b model.Book
	if err := json.Unmarshal(raw, &b); err != nil {
		return model.Book{}, err
	}
	b.Images = images
	return b, nil
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// The backend stores booleans loosely: "1"/"0", true/false or numbers.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "1" || t == "true"
	case float64:
		return t > 0
	}
	return false
}
