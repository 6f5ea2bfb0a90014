package patreon

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"
)

// Decode validates raw against the declared shape of kind and returns the
// typed record (a pointer, e.g. *Member). Unknown keys are ignored. The
// first failing field is reported as a *ValidationError and no record is
// returned.
func Decode(kind Kind, raw map[string]any) (Entity, error) {
	return schema.Decode(kind, raw)
}

// DecodeAs is Decode for a statically known entity type.
func DecodeAs[T any](raw map[string]any) (T, error) {
	var zero T

	e, err := schema.Decode(kindOf[T](), raw)
	if err != nil {
		return zero, err
	}

	return *any(e).(*T), nil
}

func (r *Registry) Decode(kind Kind, raw map[string]any) (Entity, error) {
	s, ok := r.schemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	d := decoder{registry: r, root: kind}

	v, err := d.record(s, raw, "")
	if err != nil {
		return nil, err
	}

	return v.Interface().(Entity), nil
}

type decoder struct {
	registry *Registry
	root     Kind
}

func (d decoder) record(s *entitySchema, raw map[string]any, path string) (reflect.Value, error) {
	out := reflect.New(s.typ)

	for _, f := range s.fields {
		p := f.name
		if path != "" {
			p = path + "." + f.name
		}

		v, present := raw[f.name]
		if v == nil {
			if !f.optional && !(f.nullable && present) {
				return reflect.Value{}, d.fail(p, f, nil, ErrMissingField)
			}
			continue
		}

		dst := out.Elem().Field(f.index)
		if f.pointer {
			ptr := reflect.New(f.goType)
			if err := d.assign(f, ptr.Elem(), v, p); err != nil {
				return reflect.Value{}, err
			}
			dst.Set(ptr)
			continue
		}

		if err := d.assign(f, dst, v, p); err != nil {
			return reflect.Value{}, err
		}
	}

	return out, nil
}

func (d decoder) assign(f field, dst reflect.Value, v any, path string) error {
	switch f.typ {
	case stringField:
		s, ok := v.(string)
		if !ok {
			return d.fail(path, f, v, ErrTypeMismatch)
		}
		dst.SetString(s)

	case integerField:
		n, ok := asInteger(v)
		if !ok || dst.OverflowInt(n) {
			return d.fail(path, f, v, ErrTypeMismatch)
		}
		dst.SetInt(n)

	case floatField:
		x, ok := asFloat(v)
		if !ok || dst.OverflowFloat(x) {
			return d.fail(path, f, v, ErrTypeMismatch)
		}
		dst.SetFloat(x)

	case booleanField:
		b, ok := v.(bool)
		if !ok {
			return d.fail(path, f, v, ErrTypeMismatch)
		}
		dst.SetBool(b)

	case timestampField:
		s, ok := v.(string)
		if !ok {
			return d.fail(path, f, v, ErrTypeMismatch)
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return d.fail(path, f, v, ErrMalformedTimestamp)
		}
		dst.Set(reflect.ValueOf(t.UTC()))

	case enumField:
		s, ok := v.(string)
		if !ok {
			return d.fail(path, f, v, ErrTypeMismatch)
		}
		e := reflect.New(f.goType).Elem()
		e.SetString(s)
		if !e.Interface().(enum).Valid() {
			return d.fail(path, f, v, ErrUnknownEnumValue)
		}
		dst.Set(e)

	case opaqueField:
		dst.Set(reflect.ValueOf(clone(v)))

	case referenceField:
		id, e, err := d.reference(f, v, path)
		if err != nil {
			return err
		}
		dst.Addr().Interface().(reference).set(id, e)

	case referenceListField:
		items, ok := v.([]any)
		if !ok {
			return d.fail(path, f, v, ErrTypeMismatch)
		}

		list := reflect.New(f.goType)
		refs := list.Interface().(referenceList)
		refs.load()

		for i, item := range items {
			id, e, err := d.reference(f, item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return err
			}
			refs.add(id, e)
		}
		dst.Set(list.Elem())
	}

	return nil
}

// reference decodes one relationship value: a bare id, a {"id","type"}
// linkage, or an embedded resource fragment.
func (d decoder) reference(f field, v any, path string) (string, Entity, error) {
	switch x := v.(type) {
	case string:
		if x == "" {
			return "", nil, d.fail(path, f, v, ErrTypeMismatch)
		}
		return x, nil, nil

	case map[string]any:
		if id, kind, ok := d.linkage(x); ok {
			if kind != "" && kind != f.target {
				return "", nil, d.fail(path, f, v, ErrTypeMismatch)
			}
			return id, nil, nil
		}

		rec, err := d.record(d.registry.schemas[f.target], x, path)
		if err != nil {
			return "", nil, err
		}
		e := rec.Interface().(Entity)
		return e.id(), e, nil
	}

	return "", nil, d.fail(path, f, v, ErrTypeMismatch)
}

// linkage reports whether m is a bare resource identifier: an "id" and at
// most a "type" naming a registered kind. A fragment whose "type" is an
// attribute (pledge events have one) is not a linkage.
func (d decoder) linkage(m map[string]any) (string, Kind, bool) {
	id, ok := m["id"].(string)
	if !ok || id == "" {
		return "", "", false
	}

	switch len(m) {
	case 1:
		return id, "", true
	case 2:
		t, ok := m["type"].(string)
		if !ok {
			return "", "", false
		}
		if _, registered := d.registry.schemas[Kind(t)]; !registered {
			return "", "", false
		}
		return id, Kind(t), true
	}

	return "", "", false
}

func (d decoder) fail(path string, f field, v any, err error) error {
	return &ValidationError{
		Kind:     d.root,
		Path:     path,
		Field:    f.name,
		Expected: f.expected(),
		Value:    v,
		Err:      err,
	}
}

func asInteger(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		x, err := n.Float64()
		return x, err == nil
	}
	return 0, false
}

// clone detaches an opaque value from the caller's payload.
func clone(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = clone(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = clone(e)
		}
		return out
	}
	return v
}

// unmarshal backs the entities' UnmarshalJSON methods.
func unmarshal(data []byte, dst Entity) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e, err := schema.Decode(dst.kind(), raw)
	if err != nil {
		return err
	}

	reflect.ValueOf(dst).Elem().Set(reflect.ValueOf(e).Elem())
	return nil
}
