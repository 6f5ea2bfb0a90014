// Package sqlite caches decoded Patreon entities in SQLite or libSQL.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/willmadison/patreon-sync-tools/patreon"
	"github.com/willmadison/patreon-sync-tools/patreon/internal/sqlite/resources"
)

var ErrNotFound = errors.New("resource not found")

// Store persists entities by kind and id. It implements patreon.Lookup so
// unresolved references can be resolved against it.
type Store interface {
	patreon.Lookup
	Save(context.Context, patreon.Entity) error
	SaveAll(context.Context, ...patreon.Entity) error
	Find(ctx context.Context, kind patreon.Kind, id string) (patreon.Entity, error)
	List(ctx context.Context, kind patreon.Kind) ([]patreon.Entity, error)
	Delete(ctx context.Context, kind patreon.Kind, id string) error
	Close() error
}

type defaultStore struct {
	db      *sql.DB
	queries *resources.Queries
	now     func() time.Time
}

// Open connects to databaseURL, which must start with libsql:// or file:,
// and creates the cache table if needed.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	var driver string

	switch {
	case strings.HasPrefix(databaseURL, "libsql://"):
		driver = "libsql"
	case strings.HasPrefix(databaseURL, "file:"):
		driver = "sqlite3"
	default:
		return nil, errors.Errorf("unsupported DATABASE_URL: %s", databaseURL)
	}

	db, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "encountered an error connecting to the database")
	}

	queries := resources.New(db)

	if err := queries.Migrate(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "encountered an error creating the resources table")
	}

	return &defaultStore{db: db, queries: queries, now: time.Now}, nil
}

func (s *defaultStore) Save(ctx context.Context, e patreon.Entity) error {
	return s.save(ctx, s.queries, e)
}

// SaveAll saves every entity in one transaction: either all of them are
// cached or none is.
func (s *defaultStore) SaveAll(ctx context.Context, entities ...patreon.Entity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "encountered an error starting a transaction")
	}
	defer tx.Rollback()

	queries := s.queries.WithTx(tx)
	for _, e := range entities {
		if err := s.save(ctx, queries, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "encountered an error committing the transaction")
	}

	return nil
}

func (s *defaultStore) save(ctx context.Context, queries *resources.Queries, e patreon.Entity) error {
	kind, id := patreon.KindOf(e), patreon.IDOf(e)
	if id == "" {
		return errors.Errorf("cannot cache a %s without an id", kind)
	}

	raw, err := patreon.Encode(e)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s %q", kind, id)
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s %q", kind, id)
	}

	err = queries.SaveResource(ctx, resources.SaveResourceParams{
		Kind:      string(kind),
		ID:        id,
		Payload:   string(payload),
		UpdatedAt: s.now().Unix(),
	})
	if err != nil {
		return errors.Wrapf(err, "encountered an error persisting %s %q", kind, id)
	}

	return nil
}

func (s *defaultStore) Find(ctx context.Context, kind patreon.Kind, id string) (patreon.Entity, error) {
	row, err := s.queries.GetResource(ctx, resources.GetResourceParams{Kind: string(kind), ID: id})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "%s %q", kind, id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "encountered an error fetching %s %q", kind, id)
	}

	return decode(row)
}

func (s *defaultStore) Lookup(ctx context.Context, kind patreon.Kind, id string) (patreon.Entity, error) {
	return s.Find(ctx, kind, id)
}

func (s *defaultStore) List(ctx context.Context, kind patreon.Kind) ([]patreon.Entity, error) {
	rows, err := s.queries.ListResourcesByKind(ctx, string(kind))
	if err != nil {
		return nil, errors.Wrapf(err, "encountered an error listing %s resources", kind)
	}

	entities := make([]patreon.Entity, 0, len(rows))
	for _, row := range rows {
		e, err := decode(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}

	return entities, nil
}

func (s *defaultStore) Delete(ctx context.Context, kind patreon.Kind, id string) error {
	n, err := s.queries.DeleteResource(ctx, resources.DeleteResourceParams{Kind: string(kind), ID: id})
	if err != nil {
		return errors.Wrapf(err, "encountered an error deleting %s %q", kind, id)
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "%s %q", kind, id)
	}
	return nil
}

func (s *defaultStore) Close() error {
	return s.db.Close()
}

func decode(row resources.Resource) (patreon.Entity, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(row.Payload), &raw); err != nil {
		return nil, errors.Wrapf(err, "corrupt payload for %s %q", row.Kind, row.ID)
	}

	e, err := patreon.Decode(patreon.Kind(row.Kind), raw)
	if err != nil {
		return nil, errors.Wrapf(err, "cached %s %q no longer decodes", row.Kind, row.ID)
	}

	return e, nil
}
