package resources

import (
	"context"
	_ "embed"
)

//go:embed schema.sql
var Schema string

func (q *Queries) Migrate(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, Schema)
	return err
}

const deleteResource = `-- name: DeleteResource :execrows
DELETE FROM resources WHERE kind = ? AND id = ?
`

type DeleteResourceParams struct {
	Kind string
	ID   string
}

func (q *Queries) DeleteResource(ctx context.Context, arg DeleteResourceParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteResource, arg.Kind, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getResource = `-- name: GetResource :one
SELECT kind, id, payload, updated_at FROM resources WHERE kind = ? AND id = ?
`

type GetResourceParams struct {
	Kind string
	ID   string
}

func (q *Queries) GetResource(ctx context.Context, arg GetResourceParams) (Resource, error) {
	row := q.db.QueryRowContext(ctx, getResource, arg.Kind, arg.ID)
	var i Resource
	err := row.Scan(
		&i.Kind,
		&i.ID,
		&i.Payload,
		&i.UpdatedAt,
	)
	return i, err
}

const listResourcesByKind = `-- name: ListResourcesByKind :many
SELECT kind, id, payload, updated_at FROM resources WHERE kind = ? ORDER BY id
`

func (q *Queries) ListResourcesByKind(ctx context.Context, kind string) ([]Resource, error) {
	rows, err := q.db.QueryContext(ctx, listResourcesByKind, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Resource
	for rows.Next() {
		var i Resource
		if err := rows.Scan(
			&i.Kind,
			&i.ID,
			&i.Payload,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const saveResource = `-- name: SaveResource :exec
INSERT INTO resources (kind, id, payload, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (kind, id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
`

type SaveResourceParams struct {
	Kind      string
	ID        string
	Payload   string
	UpdatedAt int64
}

func (q *Queries) SaveResource(ctx context.Context, arg SaveResourceParams) error {
	_, err := q.db.ExecContext(ctx, saveResource,
		arg.Kind,
		arg.ID,
		arg.Payload,
		arg.UpdatedAt,
	)
	return err
}
