package core

import "fmt"

// Table is identified by (SchemaName, TableName). Built once during
// introspection and never mutated afterward except by the introspection
// post-process (introspect.ApplyOneToOneHints) appending inferred
// one-to-one hints to a ForeignKey's comment.
type Table struct {
	SchemaName  string
	TableName   string
	Columns     []*Column
	ForeignKeys []*ForeignKey
	Indexes     []*Index
	Comment     string
}

// NewTable is the single construction path for a Table: it runs every
// structural validation (column ordinals and type invariants, index key
// ordinals, foreign-key shape) instead of relying on a family of
// builder objects to encode those invariants piecemeal.
func NewTable(schemaName, tableName string, columns []*Column, indexes []*Index, fks []*ForeignKey, comment string) (*Table, error) {
	t := &Table{
		SchemaName:  schemaName,
		TableName:   tableName,
		Columns:     columns,
		Indexes:     indexes,
		ForeignKeys: fks,
		Comment:     comment,
	}
	if err := t.validate(); err != nil {
		return nil, &SchemaError{Table: t.TableName, Detail: err.Error()}
	}
	return t, nil
}

func (t *Table) validate() error {
	if t.TableName == "" {
		return fmt.Errorf("table name is required")
	}

	// Column ordinals are 1..n without gaps.
	for idx, c := range t.Columns {
		if err := c.validate(); err != nil {
			return err
		}
		if c.Ordinal != idx+1 {
			return fmt.Errorf("table %q: column %q has ordinal %d, want %d", t.TableName, c.Name, c.Ordinal, idx+1)
		}
	}

	hasPKIndex := false
	pkIndexCount := 0
	for _, idxEntry := range t.Indexes {
		if err := idxEntry.validate(); err != nil {
			return err
		}
		if idxEntry.PrimaryKey {
			pkIndexCount++
			hasPKIndex = true
		}
	}
	if pkIndexCount > 1 {
		return fmt.Errorf("table %q: more than one primary-key index", t.TableName)
	}

	// PK columns form a non-empty subset of columns iff the table has a
	// primary-key index.
	hasPKColumn := false
	for _, c := range t.Columns {
		if c.PrimaryKey {
			hasPKColumn = true
			break
		}
	}
	if hasPKColumn != hasPKIndex {
		return fmt.Errorf("table %q: primary-key column presence (%v) disagrees with primary-key index presence (%v)", t.TableName, hasPKColumn, hasPKIndex)
	}

	for _, fk := range t.ForeignKeys {
		if err := fk.validate(); err != nil {
			return err
		}
	}

	t.linkIndexBackReferences()
	return nil
}

// linkIndexBackReferences populates each Column's ParticipatingIndexes.
func (t *Table) linkIndexBackReferences() {
	byName := make(map[string]*Column, len(t.Columns))
	for _, c := range t.Columns {
		byName[c.Name] = c
		c.ParticipatingIndexes = nil
	}
	for _, idxEntry := range t.Indexes {
		for _, ic := range idxEntry.Columns {
			if c, ok := byName[ic.ColumnName]; ok {
				c.ParticipatingIndexes = append(c.ParticipatingIndexes, idxEntry.Name)
			}
		}
	}
}

// PrimaryKeyColumns returns the table's primary-key column names, in
// declared column order.
func (t *Table) PrimaryKeyColumns() []string {
	var names []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			names = append(names, c.Name)
		}
	}
	return names
}

// FindColumn looks up a column by name.
func (t *Table) FindColumn(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// UniqueIndexOn returns a non-primary unique index whose key column set
// exactly matches columns, or nil.
func (t *Table) UniqueIndexOn(columns []string) *Index {
	want := make(map[string]bool, len(columns))
	for _, c := range columns {
		want[c] = true
	}
	for _, idxEntry := range t.Indexes {
		if idxEntry.PrimaryKey || !idxEntry.Unique {
			continue
		}
		set := idxEntry.ColumnSet()
		if len(set) != len(want) {
			continue
		}
		ok := true
		for _, c := range set {
			if !want[c] {
				ok = false
				break
			}
		}
		if ok {
			return idxEntry
		}
	}
	return nil
}

// String renders "schema.table" for log messages.
func (t *Table) String() string {
	if t.SchemaName == "" {
		return t.TableName
	}
	return t.SchemaName + "." + t.TableName
}
