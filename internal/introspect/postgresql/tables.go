package postgresql

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
		SELECT c.relname, COALESCE(obj_description(c.oid, 'pg_class'), '')
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relkind = 'r'
		ORDER BY c.relname
	`, schema)
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
