package core

import "fmt"

// ColumnPair is one (fkColumn, pkColumn) mapping within a ForeignKey.
type ColumnPair struct {
	FKColumn string
	PKColumn string
}

// ForeignKey is a normalized catalog foreign key, possibly composite.
type ForeignKey struct {
	Name             string
	PrimaryTableName string
	ColumnPairs      []ColumnPair
	DeleteRule       string
	UpdateRule       string
	Enabled          bool
	Comment          string
}

// IsCompositeKey reports whether the foreign key spans more than one
// column pair.
func (fk *ForeignKey) IsCompositeKey() bool {
	return len(fk.ColumnPairs) > 1
}

// ForeignKeyColumn mirrors ColumnPairs[0].FKColumn, the convenience
// accessor named in the data model.
func (fk *ForeignKey) ForeignKeyColumn() string {
	if len(fk.ColumnPairs) == 0 {
		return ""
	}
	return fk.ColumnPairs[0].FKColumn
}

// PrimaryKeyColumn mirrors ColumnPairs[0].PKColumn.
func (fk *ForeignKey) PrimaryKeyColumn() string {
	if len(fk.ColumnPairs) == 0 {
		return ""
	}
	return fk.ColumnPairs[0].PKColumn
}

// validate enforces that the foreign key names a non-empty referenced
// table and at least one column pair, plus the composite-key uniqueness
// invariant: every pair's fkColumn is unique within the FK, and every
// pair's pkColumn is unique.
func (fk *ForeignKey) validate() error {
	if fk.Name == "" {
		return fmt.Errorf("foreign key name is required")
	}
	if fk.PrimaryTableName == "" {
		return fmt.Errorf("foreign key %q: primary table name is required", fk.Name)
	}
	if len(fk.ColumnPairs) == 0 {
		return fmt.Errorf("foreign key %q: at least one column pair is required", fk.Name)
	}
	seenFK := make(map[string]bool, len(fk.ColumnPairs))
	seenPK := make(map[string]bool, len(fk.ColumnPairs))
	for _, p := range fk.ColumnPairs {
		if p.FKColumn == "" || p.PKColumn == "" {
			return fmt.Errorf("foreign key %q: column pair has empty fk/pk name", fk.Name)
		}
		if fk.IsCompositeKey() {
			if seenFK[p.FKColumn] {
				return fmt.Errorf("foreign key %q: duplicate fk column %q in composite key", fk.Name, p.FKColumn)
			}
			if seenPK[p.PKColumn] {
				return fmt.Errorf("foreign key %q: duplicate pk column %q in composite key", fk.Name, p.PKColumn)
			}
		}
		seenFK[p.FKColumn] = true
		seenPK[p.PKColumn] = true
	}
	return nil
}
