package mysql

import (
	"context"
	"database/sql"
	"sort"

	"ormreveal/internal/core"
)

func readForeignKeys(ctx context.Context, conn *sql.Conn, tableName string) ([]*core.ForeignKey, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT
			k.constraint_name,
			k.referenced_table_name,
			k.column_name,
			k.referenced_column_name,
			k.ordinal_position,
			r.delete_rule,
			r.update_rule
		FROM information_schema.key_column_usage k
		JOIN information_schema.referential_constraints r
			ON r.constraint_schema = k.table_schema AND r.constraint_name = k.constraint_name
		WHERE k.table_schema = DATABASE() AND k.table_name = ? AND k.referenced_table_name IS NOT NULL
		ORDER BY k.constraint_name, k.ordinal_position
	`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*core.ForeignKey{}
	var order []string
	for rows.Next() {
		var name, refTable, col, refCol, deleteRule, updateRule string
		var ordinal int
		if err := rows.Scan(&name, &refTable, &col, &refCol, &ordinal, &deleteRule, &updateRule); err != nil {
			return nil, err
		}

		fk, ok := byName[name]
		if !ok {
			fk = &core.ForeignKey{
				Name:             name,
				PrimaryTableName: refTable,
				DeleteRule:       core.NormalizeRule(deleteRule),
				UpdateRule:       core.NormalizeRule(updateRule),
				Enabled:          true,
			}
			byName[name] = fk
			order = append(order, name)
		}
		fk.ColumnPairs = append(fk.ColumnPairs, core.ColumnPair{FKColumn: col, PKColumn: refCol})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*core.ForeignKey, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
