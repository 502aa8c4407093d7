package reconciler

import (
	"fmt"
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
)

// StrategyType represents the type of conflict resolution strategy.
type StrategyType string

// String returns the string representation of a strategy type.
func (s StrategyType) String() string {
	return string(s)
}

// Name returns the name of the strategy type.
func (s StrategyType) Name() string {
	words := strings.Split(s.String(), "-")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

const (
	// StrategyTypeRetainExisting keeps the existing value and reports the conflict.
	StrategyTypeRetainExisting StrategyType = "retain-existing"
	// StrategyTypeBracketAppend keeps the existing value and appends the incoming one as "existing[incoming]".
	StrategyTypeBracketAppend StrategyType = "bracket-append"
)

// StrategyTypes returns every supported strategy type.
func StrategyTypes() []StrategyType {
	return []StrategyType{StrategyTypeRetainExisting, StrategyTypeBracketAppend}
}

// Strategy decides what to store when an existing non-empty value and an
// incoming non-empty value differ.
type Strategy interface {
	// Type returns the strategy type
	Type() StrategyType

	// Description returns a human-readable description
	Description() string

	// ResolveConflict returns the value to store and the event kind to report
	ResolveConflict(field conferences.Field, existing, incoming string) (string, EventKind)
}

type baseStrategy struct {
	typ         StrategyType
	description string
}

// Type returns the strategy type.
func (s *baseStrategy) Type() StrategyType {
	return s.typ
}

// Description returns a human-readable description.
func (s *baseStrategy) Description() string {
	return s.description
}

// RetainExistingStrategy never overwrites curator-trusted data.
type RetainExistingStrategy struct {
	baseStrategy
}

// NewRetainExistingStrategy creates the default strategy.
func NewRetainExistingStrategy() Strategy {
	return &RetainExistingStrategy{
		baseStrategy: baseStrategy{
			typ:         StrategyTypeRetainExisting,
			description: "Keeps existing values and reports differing incoming values for review",
		},
	}
}

// ResolveConflict keeps the existing value.
func (s *RetainExistingStrategy) ResolveConflict(_ conferences.Field, existing, _ string) (string, EventKind) {
	return existing, EventConflict
}

// BracketAppendStrategy keeps the existing value and records the incoming one
// next to it, so the published data shows both until a curator decides.
type BracketAppendStrategy struct {
	baseStrategy
}

// NewBracketAppendStrategy creates a bracket-append strategy.
func NewBracketAppendStrategy() Strategy {
	return &BracketAppendStrategy{
		baseStrategy: baseStrategy{
			typ:         StrategyTypeBracketAppend,
			description: "Appends differing incoming values in brackets after the existing value",
		},
	}
}

// keepAsIs lists fields that must stay parseable: the year and the dates.
var keepAsIs = map[conferences.Field]bool{
	conferences.FieldYear:             true,
	conferences.FieldDeadline:         true,
	conferences.FieldAbstractDeadline: true,
	conferences.FieldStart:            true,
	conferences.FieldEnd:              true,
}

// ResolveConflict appends "[incoming]" unless incoming is already the leading
// value or one of the bracketed ones. The year, deadlines and start/end dates
// are kept as is and reported as conflicts.
func (s *BracketAppendStrategy) ResolveConflict(field conferences.Field, existing, incoming string) (string, EventKind) {
	if keepAsIs[field] {
		return existing, EventConflict
	}
	lead, _, _ := strings.Cut(existing, "[")
	suffix := "[" + incoming + "]"
	if lead == incoming || strings.Contains(existing, suffix) {
		return existing, EventConflict
	}
	return existing + suffix, EventAppended
}

// NewStrategy creates the strategy of the given type.
func NewStrategy(typ StrategyType) (Strategy, error) {
	switch StrategyType(strings.ToLower(string(typ))) {
	case StrategyTypeRetainExisting, "":
		return NewRetainExistingStrategy(), nil
	case StrategyTypeBracketAppend:
		return NewBracketAppendStrategy(), nil
	default:
		return nil, errors.NewValidationError("strategy", typ,
			fmt.Sprintf("unknown strategy, expected one of %v", StrategyTypes()))
	}
}
