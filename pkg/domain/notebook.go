package domain

import "fmt"

// Notebook is an ordered sequence of cells plus document-level metadata.
type Notebook struct {
	Cells         []*Cell        `json:"cells"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

// NewNotebook creates an empty v4 notebook.
func NewNotebook(cells ...*Cell) *Notebook {
	return &Notebook{
		Cells:         cells,
		Metadata:      make(map[string]any),
		NBFormat:      4,
		NBFormatMinor: 5,
	}
}

// Len returns the number of cells in the document.
func (n *Notebook) Len() int {
	return len(n.Cells)
}

// Cell returns the cell at the given index.
func (n *Notebook) Cell(index int) (*Cell, error) {
	if index < 0 || index >= len(n.Cells) {
		return nil, fmt.Errorf("index %d: %w", index, ErrCellIndex)
	}
	return n.Cells[index], nil
}

// TagIndex resolves a cell tag to its index via a linear scan over cell metadata.
// Returns ErrTagNotFound when no cell carries the tag.
func (n *Notebook) TagIndex(tag string) (int, error) {
	for idx, cell := range n.Cells {
		for _, t := range cell.Tags() {
			if t == tag {
				return idx, nil
			}
		}
	}
	return 0, fmt.Errorf("tag %q: %w", tag, ErrTagNotFound)
}

// Append adds a cell to the end of the document and returns its index.
func (n *Notebook) Append(cell *Cell) int {
	n.Cells = append(n.Cells, cell)
	return len(n.Cells) - 1
}
