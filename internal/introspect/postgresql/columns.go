package postgresql

import (
	"context"
	"database/sql"
	"strings"

	"ormreveal/internal/core"
)

func readColumns(ctx context.Context, conn *sql.Conn, schema, tableName string) ([]*core.Column, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT
			a.attname,
			format_type(a.atttypid, a.atttypmod),
			a.attnotnull,
			a.attidentity <> '',
			a.attgenerated <> '',
			pg_get_expr(d.adbin, d.adrelid),
			COALESCE(col_description(a.attrelid, a.attnum), ''),
			a.attnum,
			EXISTS (
				SELECT 1 FROM pg_constraint con
				WHERE con.contype = 'p' AND con.conrelid = a.attrelid AND a.attnum = ANY (con.conkey)
			)
		FROM pg_attribute a
		JOIN pg_class c ON c.oid = a.attrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		LEFT JOIN pg_attrdef d ON d.adrelid = a.attrelid AND d.adnum = a.attnum
		WHERE n.nspname = $1 AND c.relname = $2 AND a.attnum > 0 AND NOT a.attisdropped
		ORDER BY a.attnum
	`, schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.Column
	for rows.Next() {
		var (
			name, rawType, comment  string
			notNull, identity, gen  bool
			defaultExpr             sql.NullString
			ordinal                 int
			isPK                    bool
		)
		if err := rows.Scan(&name, &rawType, &notNull, &identity, &gen, &defaultExpr, &comment, &ordinal, &isPK); err != nil {
			return nil, err
		}

		col := &core.Column{
			Name:          name,
			RawType:       rawType,
			Type:          core.NormalizeDataType(rawType),
			Nullable:      !notNull,
			PrimaryKey:    isPK,
			AutoIncrement: identity || isSerialDefault(defaultExpr),
			Comment:       comment,
			Ordinal:       ordinal,
		}
		switch {
		case gen:
			// A generated column's adbin expression is its generation
			// formula, not a default value — a generated column has no
			// true default.
			col.Computed = true
			col.GeneratedKind = core.GeneratedStored
			if defaultExpr.Valid {
				col.GenerationExp = defaultExpr.String
			}
		case defaultExpr.Valid:
			v := normalizeDefault(defaultExpr.String)
			col.Default = &v
		}

		applyLengthAndPrecision(col, rawType)
		out = append(out, col)
	}
	return out, rows.Err()
}

// isSerialDefault detects the SERIAL/BIGSERIAL pseudo-type via its
// nextval(...) default expression, since Postgres has no catalog bit
// for "is serial" the way MySQL has auto_increment.
func isSerialDefault(def sql.NullString) bool {
	return def.Valid && strings.Contains(strings.ToLower(def.String), "nextval(")
}

// normalizeDefault strips a trailing "::type" cast Postgres appends to
// literal defaults. A cast nested inside a larger expression, such as
// nextval('seq'::regclass), is left in place.
func normalizeDefault(expr string) string {
	idx := strings.LastIndex(expr, "::")
	if idx < 0 {
		return expr
	}
	cast := expr[idx+2:]
	if strings.Contains(cast, "'") || strings.Count(cast, "(") != strings.Count(cast, ")") {
		return expr
	}
	return expr[:idx]
}
