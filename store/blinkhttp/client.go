// Package blinkhttp talks to the hosted document backend over its REST
// surface. It implements store.Store, store.Auth and store.Uploader.
package blinkhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"bookshare/model"
	"bookshare/store"
	"bookshare/util/httpx"
)

type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, hc: httpx.Client()}
}

func (c *Client) List(ctx context.Context, collection string, q store.Query) ([]store.Record, error) {
	body := map[string]any{}
	if len(q.Where) > 0 {
		where := make(map[string]any, len(q.Where))
		for k, v := range q.Where {
			if in, ok := v.(store.In); ok {
				where[k] = map[string]any{"in": []string(in)}
				continue
			}
			where[k] = v
		}
		body["where"] = where
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Desc {
			dir = "desc"
		}
		body["orderBy"] = map[string]string{q.OrderBy: dir}
	}
	if q.Limit > 0 {
		body["limit"] = q.Limit
	}

	var out struct {
		Data []store.Record `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/db/"+collection+"/query", body, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Create(ctx context.Context, collection string, rec store.Record) error {
	return c.do(ctx, http.MethodPost, "/api/db/"+collection, rec, nil)
}

func (c *Client) Update(ctx context.Context, collection, id string, patch store.Record) error {
	return c.do(ctx, http.MethodPatch, "/api/db/"+collection+"/"+url.PathEscape(id), patch, nil)
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/db/"+collection+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// OnAuthStateChanged emits a loading snapshot, resolves the current user
// and emits the settled snapshot. The mutex makes unsubscribe a hard
// barrier: once it returns, fn will not run again.
func (c *Client) OnAuthStateChanged(fn func(store.AuthState)) func() {
	var mu sync.Mutex
	stopped := false

	emit := func(st store.AuthState) {
		mu.Lock()
		defer mu.Unlock()
		if !stopped {
			fn(st)
		}
	}

	go func() {
		emit(store.AuthState{IsLoading: true})
		u, err := c.Me(context.Background())
		if err != nil {
			emit(store.AuthState{})
			return
		}
		emit(store.AuthState{User: u})
	}()

	return func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
	}
}

func (c *Client) Upload(ctx context.Context, r io.Reader, path string, upsert bool) (string, error) {
	u := c.baseURL + "/api/storage/upload?path=" + url.QueryEscape(path) + "&upsert=" + strconv.FormatBool(upsert)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, r)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("storage upload failed: %s", resp.Status)
	}
	var out struct {
		PublicURL string `json:"publicUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.PublicURL, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return store.ErrDuplicateID
	case resp.StatusCode == http.StatusNotFound:
		return store.ErrNotFound
	case resp.StatusCode >= 300:
		return fmt.Errorf("backend %s %s: %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
