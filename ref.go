package nbtest

import "github.com/aretw0/nbtest/pkg/domain"

// Ref identifies a cell in the notebook, either by position or by metadata tag.
// Construct one with Index or Tag.
type Ref interface {
	resolve(nb *domain.Notebook) (int, error)
}

type indexRef int

func (r indexRef) resolve(nb *domain.Notebook) (int, error) {
	if _, err := nb.Cell(int(r)); err != nil {
		return 0, err
	}
	return int(r), nil
}

type tagRef string

func (r tagRef) resolve(nb *domain.Notebook) (int, error) {
	return nb.TagIndex(string(r))
}

// Index references a cell by its zero-based position.
func Index(i int) Ref { return indexRef(i) }

// Tag references the first cell whose metadata tags contain t.
func Tag(t string) Ref { return tagRef(t) }
