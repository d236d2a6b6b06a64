package mysql

import (
	"context"
	"database/sql"
)

// tableStub is the row shape of the enumerate phase.
type tableStub struct {
	Name    string
	Comment string
}

func enumerateTables(ctx context.Context, conn *sql.Conn) ([]tableStub, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT table_name, table_comment
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
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
