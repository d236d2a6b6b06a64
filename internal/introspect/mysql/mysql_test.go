package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ormreveal/internal/core"
)

func TestReadColumns_NormalizesTypesAndAutoIncrement(t *testing.T) {
	const dsn = "mysql-columns-dsn"
	db, mock, err := sqlmock.NewWithDSN(dsn)
	require.NoError(t, err)
	defer db.Close()
	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{
		"column_name", "column_type", "column_comment", "is_nullable", "column_default",
		"extra", "collation_name", "generation_expression", "numeric_precision",
		"numeric_scale", "character_maximum_length", "ordinal_position",
	}).
		AddRow("id", "int(11)", "", "NO", nil, "auto_increment", nil, "", nil, nil, nil, 1).
		AddRow("price", "decimal(8,2)", "", "NO", "0.00", "", nil, "", 8, 2, nil, 2).
		AddRow("name", "varchar(120)", "display name", "YES", nil, "", "utf8mb4_general_ci", "", nil, nil, 120, 3).
		AddRow("full_name", "varchar(200)", "", "YES", nil, "STORED GENERATED", nil, "CONCAT(first,' ',last)", nil, nil, 200, 4)
	mock.ExpectQuery(".*").WillReturnRows(rows)

	cols, err := readColumns(context.Background(), conn, "product")
	require.NoError(t, err)
	require.Len(t, cols, 4)

	assert.Equal(t, core.TypeInt, cols[0].Type)
	assert.True(t, cols[0].AutoIncrement)

	assert.Equal(t, core.TypeDecimal, cols[1].Type)
	require.NotNil(t, cols[1].Precision)
	assert.Equal(t, 8, *cols[1].Precision)
	require.NotNil(t, cols[1].Scale)
	assert.Equal(t, 2, *cols[1].Scale)

	assert.Equal(t, core.TypeString, cols[2].Type)
	require.NotNil(t, cols[2].MaxLength)
	assert.Equal(t, 120, *cols[2].MaxLength)
	assert.True(t, cols[2].Nullable)

	assert.True(t, cols[3].Computed)
	assert.Equal(t, core.GeneratedStored, cols[3].GeneratedKind)
	assert.Equal(t, "CONCAT(first,' ',last)", cols[3].GenerationExp)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPrimaryKeyColumns_MarksCompositeKey(t *testing.T) {
	const dsn = "mysql-pk-dsn"
	db, mock, err := sqlmock.NewWithDSN(dsn)
	require.NoError(t, err)
	defer db.Close()
	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	cols := []*core.Column{{Name: "student_id"}, {Name: "course_id"}, {Name: "enrolled_at"}}

	rows := sqlmock.NewRows([]string{"column_name"}).
		AddRow("student_id").
		AddRow("course_id")
	mock.ExpectQuery(".*").WillReturnRows(rows)

	err = applyPrimaryKeyColumns(context.Background(), conn, "enrollment", cols)
	require.NoError(t, err)

	assert.True(t, cols[0].PrimaryKey)
	assert.True(t, cols[1].PrimaryKey)
	assert.False(t, cols[2].PrimaryKey)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadIndexes_GroupsByNameAndMarksPrimary(t *testing.T) {
	const dsn = "mysql-indexes-dsn"
	db, mock, err := sqlmock.NewWithDSN(dsn)
	require.NoError(t, err)
	defer db.Close()
	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{
		"index_name", "non_unique", "index_type", "comment", "column_name", "seq_in_index",
	}).
		AddRow("PRIMARY", 0, "BTREE", "", "id", 1).
		AddRow("idx_email", 0, "BTREE", "", "email", 1)
	mock.ExpectQuery(".*").WillReturnRows(rows)

	idx, err := readIndexes(context.Background(), conn, "user")
	require.NoError(t, err)
	require.Len(t, idx, 2)

	assert.True(t, idx[0].PrimaryKey)
	assert.True(t, idx[0].Unique)
	assert.False(t, idx[1].PrimaryKey)
	assert.True(t, idx[1].Unique)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadForeignKeys_NormalizesRulesAndGroupsByConstraint(t *testing.T) {
	const dsn = "mysql-fks-dsn"
	db, mock, err := sqlmock.NewWithDSN(dsn)
	require.NoError(t, err)
	defer db.Close()
	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{
		"constraint_name", "referenced_table_name", "column_name", "referenced_column_name",
		"ordinal_position", "delete_rule", "update_rule",
	}).
		AddRow("fk_enrollment_student", "student", "student_id", "id", 1, "CASCADE", "CASCADE").
		AddRow("fk_enrollment_course", "course", "course_id", "id", 1, "RESTRICT", "CASCADE")
	mock.ExpectQuery(".*").WillReturnRows(rows)

	fks, err := readForeignKeys(context.Background(), conn, "enrollment")
	require.NoError(t, err)
	require.Len(t, fks, 2)

	for _, fk := range fks {
		assert.False(t, fk.IsCompositeKey())
		assert.Contains(t, core.DeleteUpdateRules, fk.DeleteRule)
		assert.Contains(t, core.DeleteUpdateRules, fk.UpdateRule)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}
