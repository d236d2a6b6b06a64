package mysql

import (
	"context"
	"database/sql"
	"strings"

	"ormreveal/internal/core"
)

func readColumns(ctx context.Context, conn *sql.Conn, tableName string) ([]*core.Column, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT
			c.column_name,
			c.column_type,
			c.column_comment,
			c.is_nullable,
			c.column_default,
			c.extra,
			c.collation_name,
			c.generation_expression,
			c.numeric_precision,
			c.numeric_scale,
			c.character_maximum_length,
			c.ordinal_position
		FROM information_schema.columns c
		WHERE c.table_schema = DATABASE() AND c.table_name = ?
		ORDER BY c.ordinal_position
	`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.Column
	for rows.Next() {
		var (
			name, colType, comment, nullable, extra, collation, genExpr sql.NullString
			defaultVal                                                  sql.NullString
			precision, scale, maxLen                                    sql.NullInt64
			ordinal                                                     int
		)
		if err := rows.Scan(&name, &colType, &comment, &nullable, &defaultVal, &extra,
			&collation, &genExpr, &precision, &scale, &maxLen, &ordinal); err != nil {
			return nil, err
		}

		col := &core.Column{
			Name:      name.String,
			RawType:   colType.String,
			Type:      core.NormalizeDataType(colType.String),
			Nullable:  nullable.String == "YES",
			Comment:   comment.String,
			Collation: collation.String,
			Ordinal:   ordinal,
		}

		col.AutoIncrement = strings.Contains(extra.String, "auto_increment")
		if defaultVal.Valid {
			v := defaultVal.String
			col.Default = &v
		}
		if genExpr.Valid && genExpr.String != "" {
			col.Computed = true
			col.GenerationExp = genExpr.String
			switch {
			case strings.Contains(strings.ToUpper(extra.String), "STORED"):
				col.GeneratedKind = core.GeneratedStored
			case strings.Contains(strings.ToUpper(extra.String), "VIRTUAL"):
				col.GeneratedKind = core.GeneratedVirtual
			default:
				col.GeneratedKind = core.GeneratedComputed
			}
		}
		if precision.Valid {
			p := int(precision.Int64)
			col.Precision = &p
		}
		if scale.Valid {
			s := int(scale.Int64)
			col.Scale = &s
		}
		if maxLen.Valid {
			m := int(maxLen.Int64)
			col.MaxLength = &m
		}

		out = append(out, col)
	}
	return out, rows.Err()
}

// applyPrimaryKeyColumns marks every column whose name appears in the
// table's PRIMARY constraint via a follow-up query rather than the
// column_key flag on information_schema.columns, which only ever reports
// the first PK column for composite keys.
func applyPrimaryKeyColumns(ctx context.Context, conn *sql.Conn, tableName string, cols []*core.Column) error {
	rows, err := conn.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = DATABASE() AND table_name = ? AND constraint_name = 'PRIMARY'
	`, tableName)
	if err != nil {
		return err
	}
	defer rows.Close()

	pk := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		pk[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, c := range cols {
		if pk[c.Name] {
			c.PrimaryKey = true
		}
	}
	return nil
}
