// repository/profile/repo.go
package profilerepo

import (
	"context"
	"encoding/json"

	"bookshare/model"
	"bookshare/store"
)

type Repo interface {
	// ByID returns (nil, nil) when no profile matches.
	ByID(ctx context.Context, id string) (*model.User, error)
}

type repo struct{ st store.Store }

func New(st store.Store) Repo { return &repo{st} }

func (r *repo) ByID(ctx context.Context, id string) (*model.User, error) {
	recs, err := r.st.List(ctx, store.Users, store.Query{
		Where: map[string]any{"id": id},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(recs[0])
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
