package mssql

import (
	"context"
	"database/sql"
)

type tableStub struct {
	Name    string
	Comment string
}

func enumerateTables(ctx context.Context, conn *sql.Conn, schema string) ([]tableStub, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT
			t.name,
			COALESCE(CAST(ep.value AS nvarchar(max)), '')
		FROM sys.tables t
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = t.object_id AND ep.minor_id = 0 AND ep.name = 'MS_Description'
		WHERE s.name = @p1
		ORDER BY t.name
	`, sql.Named("p1", schema))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tableStub
	for rows.Next() {
		var s tableStub
		if err := rows.Scan(&s.Name, &s.Comment); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
