package mssql

import (
	"context"
	"database/sql"
	"sort"

	"ormreveal/internal/core"
)

func readForeignKeys(ctx context.Context, conn *sql.Conn, schema, tableName string) ([]*core.ForeignKey, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT
			fk.name,
			rt.name,
			fc.name,
			rc.name,
			fkc.constraint_column_id,
			fk.delete_referential_action_desc,
			fk.update_referential_action_desc,
			fk.is_disabled,
			COALESCE(CAST(ep.value AS nvarchar(max)), '')
		FROM sys.foreign_keys fk
		JOIN sys.tables t ON t.object_id = fk.parent_object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		JOIN sys.tables rt ON rt.object_id = fk.referenced_object_id
		JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
		JOIN sys.columns fc ON fc.object_id = fkc.parent_object_id AND fc.column_id = fkc.parent_column_id
		JOIN sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = fk.object_id AND ep.minor_id = 0 AND ep.name = 'MS_Description'
		WHERE s.name = @p1 AND t.name = @p2
		ORDER BY fk.name, fkc.constraint_column_id
	`, sql.Named("p1", schema), sql.Named("p2", tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*core.ForeignKey{}
	var order []string
	for rows.Next() {
		var name, refTable, col, refCol, deleteDesc, updateDesc, comment string
		var ordinal int
		var disabled bool
		if err := rows.Scan(&name, &refTable, &col, &refCol, &ordinal, &deleteDesc, &updateDesc, &disabled, &comment); err != nil {
			return nil, err
		}

		fk, ok := byName[name]
		if !ok {
			fk = &core.ForeignKey{
				Name:             name,
				PrimaryTableName: refTable,
				DeleteRule:       core.NormalizeRule(deleteDesc),
				UpdateRule:       core.NormalizeRule(updateDesc),
				Enabled:          !disabled,
				Comment:          comment,
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
