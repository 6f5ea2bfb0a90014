package patreon

import (
	"context"
	"encoding/json"
	"fmt"
)

// Lookup finds an entity by kind and id, typically in a cache populated
// from earlier responses. The decoder never calls it.
type Lookup interface {
	Lookup(ctx context.Context, kind Kind, id string) (Entity, error)
}

// Ref is a to-one relationship. It is resolved when the related resource
// was embedded in the decoded payload; otherwise it only carries the
// related id (or nothing at all when the relationship was not requested).
type Ref[T any] struct {
	id    string
	value *T
}

// reference is how the decoder fills a Ref without knowing T.
type reference interface {
	target() Kind
	set(id string, e Entity)
}

func (r *Ref[T]) target() Kind {
	return kindOf[T]()
}

func (r *Ref[T]) set(id string, e Entity) {
	r.id = id
	if e != nil {
		r.value = any(e).(*T)
	}
}

func (r Ref[T]) ID() string {
	return r.id
}

func (r Ref[T]) Kind() Kind {
	return kindOf[T]()
}

func (r Ref[T]) Resolved() bool {
	return r.value != nil
}

// Get returns the embedded record, or an *UnresolvedReferenceError when
// the payload only linked to it.
func (r Ref[T]) Get() (T, error) {
	if r.value == nil {
		var zero T
		return zero, &UnresolvedReferenceError{Kind: r.Kind(), ID: r.id}
	}
	return *r.value, nil
}

// Resolve returns the embedded record when there is one and otherwise asks
// l for it by id. The Ref itself is left untouched.
func (r Ref[T]) Resolve(ctx context.Context, l Lookup) (T, error) {
	var zero T

	if r.value != nil {
		return *r.value, nil
	}

	if r.id == "" {
		return zero, &UnresolvedReferenceError{Kind: r.Kind()}
	}

	e, err := l.Lookup(ctx, r.Kind(), r.id)
	if err != nil {
		return zero, err
	}

	switch v := any(e).(type) {
	case *T:
		return *v, nil
	case T:
		return v, nil
	}

	return zero, fmt.Errorf("%w: lookup of %s %q returned %T", ErrTypeMismatch, r.Kind(), r.id, e)
}

type linkage struct {
	ID   string `json:"id"`
	Type Kind   `json:"type"`
}

// MarshalJSON writes the embedded record, a {"id","type"} linkage, or null.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	switch {
	case r.value != nil:
		return json.Marshal(*r.value)
	case r.id != "":
		return json.Marshal(linkage{ID: r.id, Type: r.Kind()})
	default:
		return []byte("null"), nil
	}
}

// Refs is a to-many relationship. A Refs that was absent from the payload
// is not loaded, which is different from a loaded empty list.
type Refs[T any] struct {
	refs   []Ref[T]
	loaded bool
}

type referenceList interface {
	target() Kind
	load()
	add(id string, e Entity)
}

func (r *Refs[T]) target() Kind {
	return kindOf[T]()
}

func (r *Refs[T]) load() {
	r.loaded = true
	r.refs = []Ref[T]{}
}

func (r *Refs[T]) add(id string, e Entity) {
	var ref Ref[T]
	ref.set(id, e)
	r.refs = append(r.refs, ref)
}

func (r Refs[T]) Kind() Kind {
	return kindOf[T]()
}

func (r Refs[T]) Loaded() bool {
	return r.loaded
}

func (r Refs[T]) Len() int {
	return len(r.refs)
}

func (r Refs[T]) At(i int) Ref[T] {
	return r.refs[i]
}

func (r Refs[T]) IDs() []string {
	ids := make([]string, 0, len(r.refs))
	for _, ref := range r.refs {
		ids = append(ids, ref.id)
	}
	return ids
}

// Get returns every related record. It fails if the list itself was not
// loaded or if any element was only linked.
func (r Refs[T]) Get() ([]T, error) {
	if !r.loaded {
		return nil, &UnresolvedReferenceError{Kind: r.Kind()}
	}

	values := make([]T, 0, len(r.refs))
	for _, ref := range r.refs {
		v, err := ref.Get()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, nil
}

// Resolve is Get with linked elements fetched through l.
func (r Refs[T]) Resolve(ctx context.Context, l Lookup) ([]T, error) {
	if !r.loaded {
		return nil, &UnresolvedReferenceError{Kind: r.Kind()}
	}

	values := make([]T, 0, len(r.refs))
	for _, ref := range r.refs {
		v, err := ref.Resolve(ctx, l)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, nil
}

func (r Refs[T]) MarshalJSON() ([]byte, error) {
	if !r.loaded {
		return []byte("null"), nil
	}
	return json.Marshal(r.refs)
}
