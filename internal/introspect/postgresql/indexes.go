package postgresql

import (
	"context"
	"database/sql"
	"sort"

	"ormreveal/internal/core"
)

func readIndexes(ctx context.Context, conn *sql.Conn, schema, tableName string) ([]*core.Index, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT
			ic.relname AS index_name,
			ix.indisunique,
			ix.indisprimary,
			a.attname,
			array_position(ix.indkey, a.attnum) AS key_ordinal,
			(ix.indoption[array_position(ix.indkey, a.attnum) - 1] & 1) = 1 AS is_desc
		FROM pg_index ix
		JOIN pg_class c ON c.oid = ix.indrelid
		JOIN pg_class ic ON ic.oid = ix.indexrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = ANY (ix.indkey)
		WHERE n.nspname = $1 AND c.relname = $2
		ORDER BY ic.relname, key_ordinal
	`, schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*core.Index{}
	var order []string
	for rows.Next() {
		var name, colName string
		var unique, primary, desc bool
		var keyOrdinal int
		if err := rows.Scan(&name, &unique, &primary, &colName, &keyOrdinal, &desc); err != nil {
			return nil, err
		}

		idx, ok := byName[name]
		if !ok {
			idx = &core.Index{Name: name, Unique: unique, PrimaryKey: primary, Type: core.IndexTypeBTree}
			byName[name] = idx
			order = append(order, name)
		}
		idx.Columns = append(idx.Columns, core.IndexColumn{ColumnName: colName, KeyOrdinal: keyOrdinal, Descending: desc})
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
