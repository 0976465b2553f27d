// Package store defines the contract of the external document backend the
// marketplace delegates persistence, identity and object storage to.
package store

import (
	"context"
	"errors"
	"io"

	"bookshare/model"
)

// Collection names used by the marketplace.
const (
	Books          = "books"
	Users          = "users"
	RentalRequests = "rentalRequests"
)

var (
	ErrDuplicateID = errors.New("duplicate id")
	ErrNotFound    = errors.New("record not found")
)

// Record is a raw document as the backend returns it. Field values keep
// whatever loose typing the backend stored; callers coerce.
type Record map[string]any

// In marks a where-value as a set-membership predicate.
type In []string

// Query supports equality and `in` predicates, a single order field and
// an optional row cap — the full extent of the backend's query language.
type Query struct {
	Where   map[string]any
	OrderBy string
	Desc    bool
	Limit   int
}

type Store interface {
	List(ctx context.Context, collection string, q Query) ([]Record, error)
	Create(ctx context.Context, collection string, rec Record) error
	Update(ctx context.Context, collection, id string, patch Record) error
	Delete(ctx context.Context, collection, id string) error
}

// AuthState is one snapshot of the backend's auth subscription.
type AuthState struct {
	User      *model.User
	IsLoading bool
}

type Auth interface {
	Me(ctx context.Context) (*model.User, error)
	// OnAuthStateChanged delivers snapshots until the returned func is
	// called. Teardown is synchronous: after unsubscribe returns, fn is
	// never invoked again.
	OnAuthStateChanged(fn func(AuthState)) (unsubscribe func())
}

type Uploader interface {
	Upload(ctx context.Context, r io.Reader, path string, upsert bool) (publicURL string, err error)
}
