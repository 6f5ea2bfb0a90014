package jsonapi

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Flatten turns res into a raw payload: its attributes, its id, and one
// key per relationship. Each related resource found in the document is
// embedded once, at the shallowest point it is reachable from res; every
// other reference to it (including back references to res) becomes an
// {"id","type"} linkage. Relationship data that is not a linkage is passed
// through as-is for the decoder to reject.
func (d *Document) Flatten(res Resource) map[string]any {
	return d.flatten(res, d.index())
}

// FlattenAll flattens every primary resource.
func (d *Document) FlattenAll() ([]map[string]any, error) {
	resources, err := d.Resources()
	if err != nil {
		return nil, err
	}

	index := d.index()
	flattened := make([]map[string]any, 0, len(resources))
	for _, res := range resources {
		flattened = append(flattened, d.flatten(res, index))
	}
	return flattened, nil
}

func (d *Document) index() map[Identifier]Resource {
	index := make(map[Identifier]Resource, len(d.Included))

	if primary, err := d.Resources(); err == nil {
		for _, res := range primary {
			index[Identifier{ID: res.ID, Type: res.Type}] = res
		}
	}

	for _, res := range d.Included {
		index[Identifier{ID: res.ID, Type: res.Type}] = res
	}

	return index
}

type pending struct {
	res Resource
	raw map[string]any
}

type flattener struct {
	index map[Identifier]Resource
	seen  map[Identifier]bool
	queue []pending
}

// flatten walks the relationship graph breadth first so the output holds
// at most one embedded copy of each resource.
func (d *Document) flatten(root Resource, index map[Identifier]Resource) map[string]any {
	f := &flattener{
		index: index,
		seen:  map[Identifier]bool{{ID: root.ID, Type: root.Type}: true},
	}

	out := attributes(root)
	f.queue = append(f.queue, pending{res: root, raw: out})

	for len(f.queue) > 0 {
		next := f.queue[0]
		f.queue = f.queue[1:]

		names := make([]string, 0, len(next.res.Relationships))
		for name := range next.res.Relationships {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			data := bytes.TrimSpace(next.res.Relationships[name].Data)

			switch {
			case len(data) == 0:
				// links-only relationship, nothing to decode
			case bytes.Equal(data, []byte("null")):
				next.raw[name] = nil
			case data[0] == '[':
				var elements []json.RawMessage
				if err := json.Unmarshal(data, &elements); err != nil {
					next.raw[name] = passthrough(data)
					continue
				}
				items := make([]any, 0, len(elements))
				for _, element := range elements {
					items = append(items, f.related(element))
				}
				next.raw[name] = items
			default:
				next.raw[name] = f.related(data)
			}
		}
	}

	return out
}

// related returns the embedded resource for a linkage seen for the first
// time, a linkage for anything else that identifies a resource, and the
// decoded value when data is not a linkage at all.
func (f *flattener) related(data json.RawMessage) any {
	var id Identifier
	if err := json.Unmarshal(data, &id); err != nil || id.ID == "" || id.Type == "" {
		return passthrough(data)
	}

	if res, ok := f.index[id]; ok && !f.seen[id] {
		f.seen[id] = true
		raw := attributes(res)
		f.queue = append(f.queue, pending{res: res, raw: raw})
		return raw
	}

	return map[string]any{"id": id.ID, "type": string(id.Type)}
}

func attributes(res Resource) map[string]any {
	raw := make(map[string]any, len(res.Attributes)+len(res.Relationships)+1)
	for k, v := range res.Attributes {
		raw[k] = v
	}
	raw["id"] = res.ID
	return raw
}

func passthrough(data json.RawMessage) any {
	var v any
	if err := decode(bytes.NewReader(data), &v); err != nil {
		return nil
	}
	return v
}
