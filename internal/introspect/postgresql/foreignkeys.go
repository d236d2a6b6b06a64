package postgresql

import (
	"context"
	"database/sql"
	"sort"

	"ormreveal/internal/core"
)

// readForeignKeys follows the classic information_schema four-way join
// (table_constraints + key_column_usage + constraint_column_usage +
// referential_constraints), grouped by constraint name so composite FKs
// collect every column pair.
func readForeignKeys(ctx context.Context, conn *sql.Conn, schema, tableName string) ([]*core.ForeignKey, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT
			tc.constraint_name,
			ccu.table_name AS referenced_table,
			kcu.column_name,
			ccu.column_name AS referenced_column,
			kcu.ordinal_position,
			rc.delete_rule,
			rc.update_rule
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name AND kcu.constraint_schema = tc.constraint_schema
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name AND ccu.constraint_schema = tc.constraint_schema
		JOIN information_schema.referential_constraints rc
			ON rc.constraint_name = tc.constraint_name AND rc.constraint_schema = tc.constraint_schema
		WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = $1 AND tc.table_name = $2
		ORDER BY tc.constraint_name, kcu.ordinal_position
	`, schema, tableName)
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
