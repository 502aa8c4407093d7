// Package provenance records which source contributed each field value of a
// reconciled deadline, so a curator can trace a value back to the page it
// was scraped from.
package provenance

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/sources"
)

// Provenance tracks the origin of a field value.
type Provenance struct {
	Source        sources.ID `yaml:"source"`                   // Source that provided the value
	Field         string     `yaml:"field"`                    // Field name
	Value         string     `yaml:"value"`                    // The value offered by the source
	Timestamp     time.Time  `yaml:"timestamp"`                // When the value was seen
	Reason        string     `yaml:"reason,omitempty"`         // e.g. "added", "conflict"
	PreviousValue string     `yaml:"previous_value,omitempty"` // Value before the merge
}

// Map tracks provenance for multiple deadlines.
type Map map[string][]Provenance // key is "id:field"

// Tracker manages provenance tracking during reconciliation.
type Tracker interface {
	// Track records provenance for a field
	Track(id string, field string, p Provenance)

	// FindByField retrieves provenance for a specific field
	FindByField(id string, field string) []Provenance

	// FindByID retrieves all provenance for a deadline
	FindByID(id string) map[string][]Provenance

	// Map returns the complete provenance map
	Map() Map

	// Clear removes all provenance data
	Clear()
}

type tracker struct {
	provenance Map
	enabled    bool
	now        func() time.Time
}

// NewTracker creates a new provenance tracker. A disabled tracker records nothing.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		provenance: make(Map),
		enabled:    enabled,
		now:        time.Now,
	}
}

// Track records provenance for a field.
func (p *tracker) Track(id string, field string, history Provenance) {
	if !p.enabled {
		return
	}
	if history.Timestamp.IsZero() {
		history.Timestamp = p.now()
	}
	if history.Field == "" {
		history.Field = field
	}
	key := makeKey(id, field)
	p.provenance[key] = append(p.provenance[key], history)
}

// FindByField retrieves provenance for a specific field.
func (p *tracker) FindByField(id string, field string) []Provenance {
	if !p.enabled {
		return nil
	}
	return p.provenance[makeKey(id, field)]
}

// FindByID retrieves all provenance for a deadline, keyed by field.
func (p *tracker) FindByID(id string) map[string][]Provenance {
	if !p.enabled {
		return nil
	}
	result := make(map[string][]Provenance)
	prefix := strings.ToLower(id) + ":"
	for key, info := range p.provenance {
		if field, found := strings.CutPrefix(key, prefix); found {
			result[field] = info
		}
	}
	return result
}

// Map returns a copy of the complete provenance map.
func (p *tracker) Map() Map {
	if !p.enabled {
		return nil
	}
	result := make(Map, len(p.provenance))
	for k, v := range p.provenance {
		result[k] = append([]Provenance{}, v...)
	}
	return result
}

// Clear removes all provenance data.
func (p *tracker) Clear() {
	p.provenance = make(Map)
}

func makeKey(id string, field string) string {
	return fmt.Sprintf("%s:%s", strings.ToLower(id), field)
}

// String renders the map grouped by deadline, sorted for stable output.
func (m Map) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	current := ""
	for _, key := range keys {
		id, field, _ := strings.Cut(key, ":")
		if id != current {
			fmt.Fprintf(&sb, "%s\n", id)
			current = id
		}
		for _, p := range m[key] {
			fmt.Fprintf(&sb, "  %s: %q from %s", field, p.Value, p.Source)
			if p.Reason != "" {
				fmt.Fprintf(&sb, " (%s)", p.Reason)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// File represents a provenance file stored on disk.
type File struct {
	Provenance Map `yaml:"provenance"`
}

// Load reads provenance data from a YAML file.
// Returns nil, nil if the file doesn't exist.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var pf File
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &pf, nil
}

// Save merges m into the provenance file at path, appending to the history
// already stored there.
func Save(path string, m Map) error {
	existing, err := Load(path)
	if err != nil {
		return err
	}
	merged := make(Map)
	if existing != nil {
		for k, v := range existing.Provenance {
			merged[k] = v
		}
	}
	for k, v := range m {
		merged[k] = append(merged[k], v...)
	}

	data, err := yaml.MarshalWithOptions(File{Provenance: merged}, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
