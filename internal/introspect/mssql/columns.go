package mssql

import (
	"context"
	"database/sql"

	"ormreveal/internal/core"
)

func readColumns(ctx context.Context, conn *sql.Conn, schema, tableName string) ([]*core.Column, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT
			c.name,
			ty.name,
			c.max_length,
			c.precision,
			c.scale,
			c.is_nullable,
			COLUMNPROPERTY(c.object_id, c.name, 'IsIdentity'),
			c.is_computed,
			COLUMNPROPERTY(c.object_id, c.name, 'IsRowGuidCol'),
			ty.name = 'timestamp' OR ty.name = 'rowversion',
			dc.definition,
			cc.definition,
			COALESCE(CAST(ep.value AS nvarchar(max)), ''),
			c.collation_name,
			c.column_id,
			EXISTS (
				SELECT 1 FROM sys.index_columns ic
				JOIN sys.indexes ix ON ix.object_id = ic.object_id AND ix.index_id = ic.index_id
				WHERE ix.is_primary_key = 1 AND ic.object_id = c.object_id AND ic.column_id = c.column_id
			)
		FROM sys.columns c
		JOIN sys.types ty ON ty.user_type_id = c.user_type_id
		JOIN sys.tables t ON t.object_id = c.object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		LEFT JOIN sys.default_constraints dc ON dc.object_id = c.default_object_id
		LEFT JOIN sys.computed_columns cc ON cc.object_id = c.object_id AND cc.column_id = c.column_id
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = c.object_id AND ep.minor_id = c.column_id AND ep.name = 'MS_Description'
		WHERE s.name = @p1 AND t.name = @p2
		ORDER BY c.column_id
	`, sql.Named("p1", schema), sql.Named("p2", tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.Column
	for rows.Next() {
		var (
			name, typeName, collation, comment string
			maxLength, precision, scale        int
			nullable, identity, computed        bool
			rowGuid, rowVersion                 bool
			defaultDef, computedDef             sql.NullString
			ordinal                              int
			isPK                                 bool
		)
		if err := rows.Scan(&name, &typeName, &maxLength, &precision, &scale, &nullable,
			&identity, &computed, &rowGuid, &rowVersion, &defaultDef, &computedDef,
			&comment, &collation, &ordinal, &isPK); err != nil {
			return nil, err
		}

		col := &core.Column{
			Name:          name,
			RawType:       typeName,
			Type:          core.NormalizeDataType(typeName),
			Nullable:      nullable,
			PrimaryKey:    isPK,
			AutoIncrement: identity,
			Computed:      computed,
			RowVersion:    rowVersion,
			Collation:     collation,
			Comment:       comment,
			Ordinal:       ordinal,
		}
		if rowGuid {
			col.Type = core.TypeGuid
		}
		if maxLength != 0 {
			col.MaxLength = &maxLength
		}
		if precision > 0 {
			col.Precision = &precision
		}
		if scale > 0 {
			col.Scale = &scale
		}
		if defaultDef.Valid {
			v := defaultDef.String
			col.Default = &v
		}
		if computed {
			col.GeneratedKind = core.GeneratedComputed
			if computedDef.Valid {
				col.GenerationExp = computedDef.String
			}
		}

		out = append(out, col)
	}
	return out, rows.Err()
}
