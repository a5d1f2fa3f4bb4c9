package recordstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("record not found")

// Record is a JSON-like document. "_id" holds the id once persisted.
type Record map[string]any

// ID returns the record id as a hex string, or "" when unset.
func (r Record) ID() string {
	return IDString(r["_id"])
}

// Clone returns a deep copy so callers may mutate the result freely.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return Record(cloneValue(map[string]any(r)).(map[string]any))
}

// Store persists records of one collection.
type Store interface {
	Create(ctx context.Context, doc Record) (Record, error)
	FindByID(ctx context.Context, id string) (Record, error)
	// Update applies set to the stored record and returns the result.
	Update(ctx context.Context, id string, set Record) (Record, error)
	Delete(ctx context.Context, id string) (bool, error)
	// Each calls fn for every record until fn returns an error.
	Each(ctx context.Context, fn func(Record) error) error
}

func IDString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case *primitive.ObjectID:
		if id == nil {
			return ""
		}
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

// Put sets key to *v when v is non-nil.
func Put[T any](r Record, key string, v *T) {
	if v != nil {
		r[key] = *v
	}
}

// PutString sets key to the trimmed *v when v is non-nil.
func PutString(r Record, key string, v *string) {
	if v != nil {
		r[key] = strings.TrimSpace(*v)
	}
}
