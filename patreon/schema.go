package patreon

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

type fieldType int

const (
	stringField fieldType = iota
	integerField
	floatField
	booleanField
	timestampField
	enumField
	opaqueField
	referenceField
	referenceListField
)

func (t fieldType) String() string {
	switch t {
	case stringField:
		return "string"
	case integerField:
		return "integer"
	case floatField:
		return "float"
	case booleanField:
		return "boolean"
	case timestampField:
		return "timestamp"
	case enumField:
		return "enum"
	case opaqueField:
		return "any"
	case referenceField:
		return "reference"
	case referenceListField:
		return "list of references"
	}
	return "unknown"
}

// field is the compiled form of one struct field. Requiredness comes from
// the `patreon` tag: untagged fields are required, "optional" fields may be
// absent or null, "nullable" fields must be present but may be null.
type field struct {
	name     string
	index    int
	typ      fieldType
	optional bool
	nullable bool
	pointer  bool
	goType   reflect.Type
	target   Kind
}

func (f field) expected() string {
	switch f.typ {
	case enumField:
		return f.goType.Name()
	case referenceField:
		return fmt.Sprintf("%s reference", f.target)
	case referenceListField:
		return fmt.Sprintf("list of %s references", f.target)
	}
	return f.typ.String()
}

func (f field) relationship() bool {
	return f.typ == referenceField || f.typ == referenceListField
}

type entitySchema struct {
	kind   Kind
	typ    reflect.Type
	fields []field
}

// Registry holds the compiled shape of every entity kind. It is read-only
// once Compile returns and safe for concurrent use.
type Registry struct {
	schemas map[Kind]*entitySchema
	order   []Kind
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	enumType          = reflect.TypeOf((*enum)(nil)).Elem()
	referenceType     = reflect.TypeOf((*reference)(nil)).Elem()
	referenceListType = reflect.TypeOf((*referenceList)(nil)).Elem()
)

// Compile builds a Registry from zero values of the given entities. Every
// kind is named before any field is examined, so relationships may point
// at kinds that appear later in the list (or at the entity itself).
func Compile(entities ...Entity) (*Registry, error) {
	r := &Registry{schemas: map[Kind]*entitySchema{}}

	for _, e := range entities {
		t := reflect.TypeOf(e)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}

		k := reflect.Zero(t).Interface().(Entity).kind()
		if _, dup := r.schemas[k]; dup {
			return nil, fmt.Errorf("kind %q registered twice", k)
		}

		r.schemas[k] = &entitySchema{kind: k, typ: t}
		r.order = append(r.order, k)
	}

	for _, k := range r.order {
		if err := r.compileFields(r.schemas[k]); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Registry) compileFields(s *entitySchema) error {
	for i := 0; i < s.typ.NumField(); i++ {
		sf := s.typ.Field(i)

		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if !sf.IsExported() || name == "" || name == "-" {
			continue
		}

		f := field{name: name, index: i}

		for _, opt := range strings.Split(sf.Tag.Get("patreon"), ",") {
			switch opt {
			case "":
			case "optional":
				f.optional = true
			case "nullable":
				f.nullable = true
			default:
				return fmt.Errorf("%s.%s: unknown tag option %q", s.kind, name, opt)
			}
		}

		t := sf.Type
		if t.Kind() == reflect.Pointer {
			if !f.optional {
				return fmt.Errorf("%s.%s: pointer fields must be optional", s.kind, name)
			}
			f.pointer = true
			t = t.Elem()
		}
		f.goType = t

		switch {
		case reflect.PointerTo(t).Implements(referenceType):
			f.typ = referenceField
			f.target = reflect.New(t).Interface().(reference).target()
		case reflect.PointerTo(t).Implements(referenceListType):
			f.typ = referenceListField
			f.target = reflect.New(t).Interface().(referenceList).target()
		case t == timeType:
			f.typ = timestampField
		case t.Kind() == reflect.String && t.Implements(enumType):
			f.typ = enumField
		case t.Kind() == reflect.String:
			f.typ = stringField
		case t.Kind() >= reflect.Int && t.Kind() <= reflect.Int64:
			f.typ = integerField
		case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
			f.typ = floatField
		case t.Kind() == reflect.Bool:
			f.typ = booleanField
		case t.Kind() == reflect.Interface && t.NumMethod() == 0:
			f.typ = opaqueField
		default:
			return fmt.Errorf("%s.%s: unsupported field type %s", s.kind, name, sf.Type)
		}

		if f.relationship() {
			if _, ok := r.schemas[f.target]; !ok {
				return fmt.Errorf("%s.%s: references unregistered kind %q", s.kind, name, f.target)
			}
		}

		if f.nullable && (f.typ != enumField || f.optional) {
			return fmt.Errorf("%s.%s: only required enums may be nullable", s.kind, name)
		}

		s.fields = append(s.fields, f)
	}

	return nil
}

// Kinds lists the registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	return append([]Kind(nil), r.order...)
}

// AttributeNames lists the wire names of kind's non-relationship fields,
// excluding the id.
func (r *Registry) AttributeNames(kind Kind) []string {
	s, ok := r.schemas[kind]
	if !ok {
		return nil
	}

	var names []string
	for _, f := range s.fields {
		if f.name != "id" && !f.relationship() {
			names = append(names, f.name)
		}
	}
	return names
}

// RelationshipNames lists the wire names of kind's relationship fields.
func (r *Registry) RelationshipNames(kind Kind) []string {
	s, ok := r.schemas[kind]
	if !ok {
		return nil
	}

	var names []string
	for _, f := range s.fields {
		if f.relationship() {
			names = append(names, f.name)
		}
	}
	return names
}

// RelationshipTarget reports the kind a relationship of kind points at.
func (r *Registry) RelationshipTarget(kind Kind, name string) (Kind, bool) {
	s, ok := r.schemas[kind]
	if !ok {
		return "", false
	}

	for _, f := range s.fields {
		if f.name == name && f.relationship() {
			return f.target, true
		}
	}
	return "", false
}

var schema = mustCompile(
	Address{},
	Benefit{},
	Campaign{},
	Deliverable{},
	Goal{},
	Media{},
	Member{},
	OAuthClient{},
	PledgeEvent{},
	Post{},
	Tier{},
	User{},
	Webhook{},
)

func mustCompile(entities ...Entity) *Registry {
	r, err := Compile(entities...)
	if err != nil {
		panic(err)
	}
	return r
}

// Schema returns the registry of every entity kind in this package.
func Schema() *Registry {
	return schema
}

func Kinds() []Kind {
	return schema.Kinds()
}

func AttributeNames(kind Kind) []string {
	return schema.AttributeNames(kind)
}

func RelationshipNames(kind Kind) []string {
	return schema.RelationshipNames(kind)
}
