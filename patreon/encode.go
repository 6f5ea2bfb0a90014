package patreon

import "encoding/json"

// Encode renders e in the raw form Decode accepts: timestamps as RFC 3339
// strings, embedded relationships as nested mappings, linked ones as
// {"id","type"} linkages and absent optional fields as null. Numbers come
// back as float64, as encoding/json produces them.
func Encode(e Entity) (map[string]any, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}
