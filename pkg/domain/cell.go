package domain

import (
	"encoding/json"
	"strings"
)

// CellType constants match the nbformat cell_type values.
const (
	// CellTypeCode holds executable source and carries outputs.
	CellTypeCode = "code"
	// CellTypeMarkdown holds prose; it is never executed.
	CellTypeMarkdown = "markdown"
	// CellTypeRaw holds passthrough content for converters.
	CellTypeRaw = "raw"
)

// Cell is a single unit of a notebook document.
type Cell struct {
	Type     string         `json:"cell_type"`
	Source   MultilineText  `json:"source"`
	Metadata map[string]any `json:"metadata,omitempty"`

	// Code cells only.
	Outputs        []Output `json:"outputs,omitempty"`
	ExecutionCount *int     `json:"execution_count,omitempty"`
}

// MarshalJSON keeps serialized code cells strict nbformat v4: the outputs
// and execution_count keys are always present, even when empty. Markdown and
// raw cells must not carry them, which the struct tags already handle.
func (c Cell) MarshalJSON() ([]byte, error) {
	type alias Cell
	if c.Type != CellTypeCode {
		return json.Marshal(alias(c))
	}

	outputs := c.Outputs
	if outputs == nil {
		outputs = []Output{}
	}
	return json.Marshal(struct {
		alias
		Outputs        []Output `json:"outputs"`
		ExecutionCount *int     `json:"execution_count"`
	}{alias(c), outputs, c.ExecutionCount})
}

// NewCodeCell builds a fresh, unexecuted code cell from source text.
func NewCodeCell(source string) *Cell {
	return &Cell{
		Type:     CellTypeCode,
		Source:   MultilineText(source),
		Metadata: make(map[string]any),
		Outputs:  []Output{},
	}
}

// NewMarkdownCell builds a markdown cell.
func NewMarkdownCell(source string) *Cell {
	return &Cell{
		Type:     CellTypeMarkdown,
		Source:   MultilineText(source),
		Metadata: make(map[string]any),
	}
}

// Tags returns the cell's metadata tags, or nil when none are set.
// Notebook JSON carries tags as a list under metadata["tags"].
func (c *Cell) Tags() []string {
	raw, ok := c.Metadata["tags"]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

// OutputText concatenates the literal-text fragments of the cell's outputs
// and trims surrounding whitespace.
func (c *Cell) OutputText() string {
	var sb strings.Builder
	for _, out := range c.Outputs {
		sb.WriteString(string(out.Text))
	}
	return strings.TrimSpace(sb.String())
}

// ExecuteResults returns the MIME bundles of the cell's execute_result outputs.
func (c *Cell) ExecuteResults() []MIMEBundle {
	var results []MIMEBundle
	for _, out := range c.Outputs {
		if out.Type == OutputTypeExecuteResult {
			results = append(results, out.Data)
		}
	}
	return results
}
