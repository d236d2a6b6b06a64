package mssql

import (
	"context"
	"database/sql"
	"sort"

	"ormreveal/internal/core"
)

func readIndexes(ctx context.Context, conn *sql.Conn, schema, tableName string) ([]*core.Index, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT
			ix.name,
			ix.is_unique,
			ix.is_primary_key,
			ix.is_disabled,
			ix.type_desc,
			c.name,
			ic.key_ordinal,
			ic.is_descending_key,
			ic.is_included_column
		FROM sys.indexes ix
		JOIN sys.tables t ON t.object_id = ix.object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		JOIN sys.index_columns ic ON ic.object_id = ix.object_id AND ic.index_id = ix.index_id
		JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
		WHERE s.name = @p1 AND t.name = @p2 AND ix.name IS NOT NULL
		ORDER BY ix.name, ic.key_ordinal
	`, sql.Named("p1", schema), sql.Named("p2", tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*core.Index{}
	var order []string
	for rows.Next() {
		var (
			name, colName, typeDesc string
			unique, primary, disabled, desc, included bool
			keyOrdinal int
		)
		if err := rows.Scan(&name, &unique, &primary, &disabled, &typeDesc, &colName, &keyOrdinal, &desc, &included); err != nil {
			return nil, err
		}

		idx, ok := byName[name]
		if !ok {
			idx = &core.Index{
				Name:       name,
				Unique:     unique,
				PrimaryKey: primary,
				Disabled:   disabled,
				Type:       normalizeIndexType(typeDesc),
			}
			byName[name] = idx
			order = append(order, name)
		}
		idx.Columns = append(idx.Columns, core.IndexColumn{
			ColumnName: colName,
			KeyOrdinal: keyOrdinal,
			Descending: desc,
			Included:   included,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*core.Index, 0, len(order))
	for _, name := range order {
		idx := byName[name]
		sort.Slice(idx.Columns, func(i, j int) bool {
			if idx.Columns[i].Included != idx.Columns[j].Included {
				return !idx.Columns[i].Included
			}
			return idx.Columns[i].KeyOrdinal < idx.Columns[j].KeyOrdinal
		})
		out = append(out, idx)
	}
	return out, nil
}

func normalizeIndexType(desc string) core.IndexType {
	switch desc {
	case "CLUSTERED", "NONCLUSTERED":
		return core.IndexTypeBTree
	case "XML", "SPATIAL":
		return core.IndexTypeSpatial
	default:
		return core.IndexTypeBTree
	}
}
