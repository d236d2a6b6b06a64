package introspect

import "ormreveal/internal/core"

// oneToOneMarker is appended to a ForeignKey's comment once its single
// column is covered by a non-primary unique index of width one.
const oneToOneMarker = " [One-to-One Relationship]"

// ApplyOneToOneHints runs the post-process phase of the DialectReader
// contract: for every table and every non-composite FK whose column is
// covered by a non-primary unique index of width 1, the marker is
// appended to the FK's comment.
func ApplyOneToOneHints(tables []*core.Table) {
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, fk := range t.ForeignKeys {
			if fk.IsCompositeKey() {
				continue
			}
			col := fk.ForeignKeyColumn()
			if col == "" {
				continue
			}
			if t.UniqueIndexOn([]string{col}) != nil {
				fk.Comment += oneToOneMarker
			}
		}
	}
}
