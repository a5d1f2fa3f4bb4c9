package recordstore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Normalize rewrites driver container types into plain maps and slices.
func Normalize(v any) any {
	switch t := v.(type) {
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case Record:
		return Normalize(map[string]any(t))
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = Normalize(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = val
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	default:
		return v
	}
}

func cloneValue(v any) any {
	return Normalize(v)
}

// Decode copies rec into a typed struct through its bson tags.
func Decode(rec Record, out any) error {
	raw, err := bson.Marshal(map[string]any(rec))
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

// FromStruct converts a bson-tagged struct into a Record.
func FromStruct(in any) (Record, error) {
	raw, err := bson.Marshal(in)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return Record(Normalize(m).(map[string]any)), nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
