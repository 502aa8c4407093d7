// Package table converts confmap values into rows for tabular CLI output.
package table

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault leaves alignment to the renderer.
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data is renderer-independent table content.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: one entry per column
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
