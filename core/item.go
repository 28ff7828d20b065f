package core

import (
	"encoding/json"
	"fmt"
)

// Item is a single entry of a list container. Identity is ID; Fields carries
// the caller's opaque record and is never interpreted by the engine.
//
// The serialized form is the flat record {"id": ..., ...fields}, which is the
// shape reported as a drop payload.
type Item struct {
	ID     string
	Fields map[string]any
}

// NewItem creates an item from an id and optional key/value pairs.
func NewItem(id string, kv ...any) Item {
	it := Item{ID: id, Fields: map[string]any{}}
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			continue
		}
		it.Fields[k] = kv[i+1]
	}
	return it
}

// Clone returns a copy with its own Fields map. Field values are shared, so
// nested maps or slices are not copied.
func (i Item) Clone() Item {
	c := Item{ID: i.ID, Fields: make(map[string]any, len(i.Fields))}
	for k, v := range i.Fields {
		c.Fields[k] = v
	}
	return c
}

// Get returns a field value and whether it was present.
func (i Item) Get(key string) (any, bool) {
	v, ok := i.Fields[key]
	return v, ok
}

// Record returns the flat {"id": ..., ...fields} representation.
func (i Item) Record() map[string]any {
	rec := make(map[string]any, len(i.Fields)+1)
	for k, v := range i.Fields {
		rec[k] = v
	}
	rec["id"] = i.ID
	return rec
}

// MarshalJSON emits the flat record form.
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Record())
}

// UnmarshalJSON parses the flat record form. The "id" key is required.
func (i *Item) UnmarshalJSON(data []byte) error {
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	return i.fromRecord(rec)
}

// UnmarshalYAML parses the flat record form used in scenario files.
func (i *Item) UnmarshalYAML(unmarshal func(any) error) error {
	var rec map[string]any
	if err := unmarshal(&rec); err != nil {
		return err
	}
	return i.fromRecord(rec)
}

func (i *Item) fromRecord(rec map[string]any) error {
	raw, ok := rec["id"]
	if !ok {
		return fmt.Errorf("item record without id: %w", ErrInvalidItem)
	}
	i.ID = fmt.Sprint(raw)
	i.Fields = make(map[string]any, len(rec))
	for k, v := range rec {
		if k == "id" {
			continue
		}
		i.Fields[k] = v
	}
	return nil
}

// IndexOf returns the position of the item with the given id or -1.
func IndexOf(items []Item, id string) int {
	for idx, it := range items {
		if it.ID == id {
			return idx
		}
	}
	return -1
}

// CloneItems returns a copy of the slice with every item cloned.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for idx, it := range items {
		out[idx] = it.Clone()
	}
	return out
}
