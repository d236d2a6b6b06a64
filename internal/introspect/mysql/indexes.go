package mysql

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"ormreveal/internal/core"
)

type indexRow struct {
	Name       string
	NonUnique  bool
	Type       string
	Comment    string
	ColumnName string
	SeqInIndex int
}

func readIndexes(ctx context.Context, conn *sql.Conn, tableName string) ([]*core.Index, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT index_name, non_unique, index_type, comment, column_name, seq_in_index
		FROM information_schema.statistics
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY index_name, seq_in_index
	`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*core.Index{}
	var order []string
	for rows.Next() {
		var r indexRow
		var nonUnique int
		if err := rows.Scan(&r.Name, &nonUnique, &r.Type, &r.Comment, &r.ColumnName, &r.SeqInIndex); err != nil {
			return nil, err
		}
		r.NonUnique = nonUnique != 0

		idx, ok := byName[r.Name]
		if !ok {
			idx = &core.Index{
				Name:       r.Name,
				Unique:     !r.NonUnique,
				PrimaryKey: r.Name == "PRIMARY",
				Type:       normalizeIndexType(r.Type),
				Comment:    r.Comment,
			}
			byName[r.Name] = idx
			order = append(order, r.Name)
		}
		idx.Columns = append(idx.Columns, core.IndexColumn{ColumnName: r.ColumnName, KeyOrdinal: r.SeqInIndex})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*core.Index, 0, len(order))
	for _, name := range order {
		idx := byName[name]
		sort.Slice(idx.Columns, func(i, j int) bool { return idx.Columns[i].KeyOrdinal < idx.Columns[j].KeyOrdinal })
		out = append(out, idx)
	}
	return out, nil
}

func normalizeIndexType(t string) core.IndexType {
	switch strings.ToUpper(t) {
	case "HASH":
		return core.IndexTypeHash
	case "FULLTEXT":
		return core.IndexTypeFullText
	case "SPATIAL":
		return core.IndexTypeSpatial
	default:
		return core.IndexTypeBTree
	}
}
