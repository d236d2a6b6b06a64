package core

import "fmt"

// IndexType tags the storage structure behind an index, where the
// dialect distinguishes one.
type IndexType string

const (
	IndexTypeBTree    IndexType = "BTREE"
	IndexTypeHash     IndexType = "HASH"
	IndexTypeFullText IndexType = "FULLTEXT"
	IndexTypeSpatial  IndexType = "SPATIAL"
	IndexTypeGIN      IndexType = "GIN"
	IndexTypeGiST     IndexType = "GIST"
	IndexTypeClustrd  IndexType = "CLUSTERED"
)

// IndexColumn is one column participating in an index.
type IndexColumn struct {
	ColumnName string
	KeyOrdinal int
	Descending bool
	Included   bool
}

// Index is a normalized catalog index.
type Index struct {
	Name       string
	Unique     bool
	PrimaryKey bool
	Disabled   bool
	Type       IndexType
	Comment    string
	Columns    []IndexColumn
}

// validate enforces that PrimaryKey implies Unique, and that key
// ordinals of non-included columns are strictly increasing starting at
// 1.
func (i *Index) validate() error {
	if i.Name == "" {
		return fmt.Errorf("index name is required")
	}
	if i.PrimaryKey && !i.Unique {
		return fmt.Errorf("index %q: primary key index must be unique", i.Name)
	}
	expected := 1
	for _, c := range i.Columns {
		if c.Included {
			continue
		}
		if c.KeyOrdinal != expected {
			return fmt.Errorf("index %q: key ordinals must be contiguous from 1, got %d want %d", i.Name, c.KeyOrdinal, expected)
		}
		expected++
	}
	return nil
}

// ColumnSet returns the key (non-included) column names, in ordinal
// order.
func (i *Index) ColumnSet() []string {
	names := make([]string, 0, len(i.Columns))
	for _, c := range i.Columns {
		if !c.Included {
			names = append(names, c.ColumnName)
		}
	}
	return names
}
