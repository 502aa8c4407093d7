package conferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Item is a single key/value pair of a Record.
type Item struct {
	Key   string
	Value any
}

// Record is an ordered mapping of field names to values, as read from or
// written to a tabular or structured file. Key order is preserved.
type Record struct {
	items []Item
}

// NewRecord creates a record from the given items. A repeated key keeps its
// first position and takes the last value.
func NewRecord(items ...Item) Record {
	var r Record
	for _, it := range items {
		r.Set(it.Key, it.Value)
	}
	return r
}

// Len returns the number of keys in the record.
func (r Record) Len() int {
	return len(r.items)
}

// Keys returns the keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.items))
	for i, it := range r.items {
		keys[i] = it.Key
	}
	return keys
}

// Items returns a copy of the record's items in order.
func (r Record) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Get returns the raw value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, it := range r.items {
		if it.Key == key {
			return it.Value, true
		}
	}
	return nil, false
}

// String returns the value stored under key rendered as text, or "" when absent.
func (r Record) String(key string) string {
	v, _ := r.Get(key)
	return ValueString(v)
}

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Set stores value under key, keeping the key's position if it already exists.
func (r *Record) Set(key string, value any) {
	for i := range r.items {
		if r.items[i].Key == key {
			r.items[i].Value = value
			return
		}
	}
	r.items = append(r.items, Item{Key: key, Value: value})
}

// Delete removes key and reports whether it was present.
func (r *Record) Delete(key string) bool {
	for i := range r.items {
		if r.items[i].Key == key {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// Rename moves the value of from to the key to, in from's position.
// An existing value under to is replaced.
func (r *Record) Rename(from, to string) bool {
	v, ok := r.Get(from)
	if !ok {
		return false
	}
	r.Delete(to)
	for i := range r.items {
		if r.items[i].Key == from {
			r.items[i] = Item{Key: to, Value: v}
			break
		}
	}
	return true
}

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	return Record{items: r.Items()}
}

// ValueString renders a decoded file value as text.
func ValueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04")
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			parts = append(parts, ValueString(p))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
