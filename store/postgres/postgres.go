// Package postgres backs the document contract with a single jsonb table,
// for deployments that do not use the hosted backend.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshare/store"
)

// Schema:
//
//	CREATE TABLE documents (
//	    collection TEXT NOT NULL,
//	    id         TEXT NOT NULL,
//	    doc        JSONB NOT NULL,
//	    PRIMARY KEY (collection, id)
//	);
type Documents struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Documents { return &Documents{pool: pool} }

func (d *Documents) List(ctx context.Context, collection string, q store.Query) ([]store.Record, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT doc FROM documents WHERE collection = $1`)
	args := []any{collection}

	for field, v := range q.Where {
		if err := checkField(field); err != nil {
			return nil, err
		}
		if in, ok := v.(store.In); ok {
			args = append(args, []string(in))
			fmt.Fprintf(&sb, " AND doc->>'%s' = ANY($%d)", field, len(args))
			continue
		}
		args = append(args, fmt.Sprint(v))
		fmt.Fprintf(&sb, " AND doc->>'%s' = $%d", field, len(args))
	}
	if q.OrderBy != "" {
		if err := checkField(q.OrderBy); err != nil {
			return nil, err
		}
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY doc->>'%s' %s", q.OrderBy, dir)
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := d.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var rec store.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (d *Documents) Create(ctx context.Context, collection string, rec store.Record) error {
	id, _ := rec["id"].(string)
	if id == "" {
		return errors.New("record missing id")
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	const q = `INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)`
	if _, err := d.pool.Exec(ctx, q, collection, id, doc); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return store.ErrDuplicateID
		}
		return err
	}
	return nil
}

func (d *Documents) Update(ctx context.Context, collection, id string, patch store.Record) error {
	doc, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	const q = `UPDATE documents SET doc = doc || $3 WHERE collection = $1 AND id = $2`
	tag, err := d.pool.Exec(ctx, q, collection, id, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (d *Documents) Delete(ctx context.Context, collection, id string) error {
	const q = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	tag, err := d.pool.Exec(ctx, q, collection, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Field names are interpolated into the jsonb accessor, so only plain
// identifiers coming from our own repositories are accepted.
func checkField(f string) error {
	for _, r := range f {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return fmt.Errorf("invalid query field %q", f)
		}
	}
	if f == "" {
		return errors.New("empty query field")
	}
	return nil
}
