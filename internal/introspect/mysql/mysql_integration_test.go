//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"ormreveal/internal/introspect"
	_ "ormreveal/internal/introspect/mysql"
	"ormreveal/internal/pool"
)

type testMySQLContainer struct {
	container *tcmysql.MySQLContainer
	dsn       string
}

func setupMySQL(t *testing.T) *testMySQLContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0",
		tcmysql.WithDatabase("schemadb"),
		tcmysql.WithUsername("root"),
		tcmysql.WithPassword("testpass"),
	)
	require.NoError(t, err, "failed to start MySQL container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "parseTime=true")
	require.NoError(t, err, "failed to get connection string")

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err, "failed to open direct DB connection")
	require.NoError(t, db.PingContext(ctx), "failed to ping database")
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.ExecContext(ctx, `
		CREATE TABLE author (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL
		)
	`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `
		CREATE TABLE book (
			id INT AUTO_INCREMENT PRIMARY KEY,
			author_id INT NOT NULL,
			title VARCHAR(200) NOT NULL,
			CONSTRAINT fk_book_author FOREIGN KEY (author_id) REFERENCES author(id)
				ON DELETE CASCADE ON UPDATE NO ACTION
		)
	`)
	require.NoError(t, err)

	return &testMySQLContainer{container: container, dsn: dsn}
}

func TestIntrospectIntegration_ReadsTablesColumnsAndForeignKeys(t *testing.T) {
	tc := setupMySQL(t)
	ctx := context.Background()

	p, err := pool.New("mysql", 4)
	require.NoError(t, err)
	defer p.Clear()

	reader, err := introspect.NewIntrospecter("mysql", p, nil)
	require.NoError(t, err)

	db, err := reader.Introspect(ctx, tc.dsn)
	require.NoError(t, err)
	require.Len(t, db.Tables, 2)

	author := db.FindTable("author")
	require.NotNil(t, author)
	assert.Equal(t, []string{"id"}, author.PrimaryKeyColumns())

	book := db.FindTable("book")
	require.NotNil(t, book)
	require.Len(t, book.ForeignKeys, 1)
	fk := book.ForeignKeys[0]
	assert.Equal(t, "author", fk.PrimaryTableName)
	assert.Equal(t, "author_id", fk.ForeignKeyColumn())
	assert.Equal(t, "id", fk.PrimaryKeyColumn())
	assert.Equal(t, "CASCADE", fk.DeleteRule)
	assert.Equal(t, "NO ACTION", fk.UpdateRule)
}
