package conferences

import (
	"fmt"
	"strings"

	"github.com/agentstation/confmap/pkg/errors"
)

// Deadlines is an insertion-ordered set of deadlines keyed by id.
// Ids are compared case-insensitively. It is not safe for concurrent use.
type Deadlines struct {
	items []*Deadline
	index map[string]int
}

// NewDeadlines creates an empty collection.
func NewDeadlines() *Deadlines {
	return &Deadlines{index: make(map[string]int)}
}

func key(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Get returns the deadline with the given id.
func (c *Deadlines) Get(id string) (*Deadline, bool) {
	i, ok := c.index[key(id)]
	if !ok {
		return nil, false
	}
	return c.items[i], true
}

// Exists reports whether a deadline with id is present.
func (c *Deadlines) Exists(id string) bool {
	_, ok := c.index[key(id)]
	return ok
}

// Add appends a deadline, returning an error if its id is already present.
func (c *Deadlines) Add(d *Deadline) error {
	if d == nil {
		return errors.New("deadline cannot be nil")
	}
	if d.ID == "" {
		return errors.NewValidationError(string(FieldID), d.ID, "id is required")
	}
	if c.Exists(d.ID) {
		return fmt.Errorf("deadline %s: %w", d.ID, errors.ErrAlreadyExists)
	}
	c.index[key(d.ID)] = len(c.items)
	c.items = append(c.items, d)
	return nil
}

// Len returns the number of deadlines.
func (c *Deadlines) Len() int {
	return len(c.items)
}

// List returns the deadlines in insertion order.
func (c *Deadlines) List() []*Deadline {
	out := make([]*Deadline, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns the ids in insertion order.
func (c *Deadlines) IDs() []string {
	out := make([]string, len(c.items))
	for i, d := range c.items {
		out[i] = d.ID
	}
	return out
}
