package relate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ormreveal/internal/core"
)

func intPtrRelate(i int) *int { return &i }

func pkCol(name string) *core.Column {
	return &core.Column{Name: name, Type: core.TypeInt, PrimaryKey: true, Ordinal: 1}
}

func mustTable(t *testing.T, schema, name string, cols []*core.Column, idx []*core.Index, fks []*core.ForeignKey) *core.Table {
	t.Helper()
	for i, c := range cols {
		c.Ordinal = i + 1
	}
	tbl, err := core.NewTable(schema, name, cols, idx, fks, "")
	require.NoError(t, err)
	return tbl
}

func TestAnalyze_ManyToManyJunction(t *testing.T) {
	student := mustTable(t, "dbo", "Student", []*core.Column{pkCol("Id")},
		[]*core.Index{{Name: "PK_Student", PrimaryKey: true, Unique: true, Columns: []core.IndexColumn{{ColumnName: "Id", KeyOrdinal: 1}}}}, nil)
	course := mustTable(t, "dbo", "Course", []*core.Column{pkCol("Id")},
		[]*core.Index{{Name: "PK_Course", PrimaryKey: true, Unique: true, Columns: []core.IndexColumn{{ColumnName: "Id", KeyOrdinal: 1}}}}, nil)

	studentCourse := mustTable(t, "dbo", "StudentCourse",
		[]*core.Column{
			{Name: "StudentId", Type: core.TypeInt, PrimaryKey: true},
			{Name: "CourseId", Type: core.TypeInt, PrimaryKey: true},
		},
		[]*core.Index{{Name: "PK_StudentCourse", PrimaryKey: true, Unique: true, Columns: []core.IndexColumn{
			{ColumnName: "StudentId", KeyOrdinal: 1}, {ColumnName: "CourseId", KeyOrdinal: 2},
		}}},
		[]*core.ForeignKey{
			{Name: "FK_SC_Student", PrimaryTableName: "Student", Enabled: true, ColumnPairs: []core.ColumnPair{{FKColumn: "StudentId", PKColumn: "Id"}}},
			{Name: "FK_SC_Course", PrimaryTableName: "Course", Enabled: true, ColumnPairs: []core.ColumnPair{{FKColumn: "CourseId", PKColumn: "Id"}}},
		},
	)

	a := New(nil)
	rel, err := a.Analyze(studentCourse, course)
	require.NoError(t, err)
	assert.Equal(t, core.RelationshipManyToMany, rel.Kind)
	require.NotNil(t, rel.JunctionTable)
	assert.Equal(t, "StudentCourse", rel.JunctionTable.TableName)
	assert.ElementsMatch(t, []string{"StudentId", "CourseId"}, rel.JunctionTable.SourceKeyColumns)
	_ = student
}

func TestAnalyze_OneToOneViaUniqueConstraint(t *testing.T) {
	user := mustTable(t, "dbo", "User", []*core.Column{pkCol("Id")},
		[]*core.Index{{Name: "PK_User", PrimaryKey: true, Unique: true, Columns: []core.IndexColumn{{ColumnName: "Id", KeyOrdinal: 1}}}}, nil)

	profile := mustTable(t, "dbo", "UserProfile",
		[]*core.Column{
			{Name: "ProfileId", Type: core.TypeInt, PrimaryKey: true},
			{Name: "UserId", Type: core.TypeInt},
			{Name: "Biography", Type: core.TypeString, RawType: "varchar(max)", Nullable: true, MaxLength: intPtrRelate(-1)},
		},
		[]*core.Index{
			{Name: "PK_UserProfile", PrimaryKey: true, Unique: true, Columns: []core.IndexColumn{{ColumnName: "ProfileId", KeyOrdinal: 1}}},
			{Name: "UX_UserProfile_UserId", Unique: true, Columns: []core.IndexColumn{{ColumnName: "UserId", KeyOrdinal: 1}}},
		},
		[]*core.ForeignKey{
			{Name: "FK_Profile_User", PrimaryTableName: "User", Enabled: true, ColumnPairs: []core.ColumnPair{{FKColumn: "UserId", PKColumn: "Id"}}},
		},
	)

	a := New(nil)
	rel, err := a.Analyze(profile, user)
	require.NoError(t, err)
	assert.Equal(t, core.RelationshipOneToOne, rel.Kind)
	assert.Equal(t, "UserProfile", rel.SourceTable)
	assert.Equal(t, "User", rel.TargetTable)
	require.Len(t, rel.ForeignKeys, 1)
	assert.Equal(t, "UserId", rel.ForeignKeys[0].FKColumn)
	assert.Equal(t, "Id", rel.ForeignKeys[0].PKColumn)
}

func TestAnalyze_CompositePKNonJunctionIsOneToMany(t *testing.T) {
	order := mustTable(t, "dbo", "Order", []*core.Column{pkCol("Id")},
		[]*core.Index{{Name: "PK_Order", PrimaryKey: true, Unique: true, Columns: []core.IndexColumn{{ColumnName: "Id", KeyOrdinal: 1}}}}, nil)

	detail := mustTable(t, "dbo", "OrderDetail",
		[]*core.Column{
			{Name: "OrderId", Type: core.TypeInt, PrimaryKey: true},
			{Name: "ProductId", Type: core.TypeInt, PrimaryKey: true},
			{Name: "Quantity", Type: core.TypeInt},
		},
		[]*core.Index{{Name: "PK_OrderDetail", PrimaryKey: true, Unique: true, Columns: []core.IndexColumn{
			{ColumnName: "OrderId", KeyOrdinal: 1}, {ColumnName: "ProductId", KeyOrdinal: 2},
		}}},
		[]*core.ForeignKey{
			{Name: "FK_Detail_Order", PrimaryTableName: "Order", Enabled: true, ColumnPairs: []core.ColumnPair{{FKColumn: "OrderId", PKColumn: "Id"}}},
		},
	)

	a := New(nil)
	rel, err := a.Analyze(detail, order)
	require.NoError(t, err)
	assert.Equal(t, core.RelationshipOneToMany, rel.Kind)
	assert.Equal(t, "Order", rel.SourceTable)
	assert.Equal(t, "OrderDetail", rel.TargetTable)
	require.Len(t, rel.ForeignKeys, 1)
	assert.Equal(t, "OrderId", rel.ForeignKeys[0].FKColumn)
}

func TestAnalyze_NoMatchingFKIsUnknown(t *testing.T) {
	a := New(nil)
	pkIdx := func(name string) []*core.Index {
		return []*core.Index{{Name: "PK_" + name, PrimaryKey: true, Unique: true, Columns: []core.IndexColumn{{ColumnName: "Id", KeyOrdinal: 1}}}}
	}
	t1 := mustTable(t, "dbo", "A", []*core.Column{pkCol("Id")}, pkIdx("A"), nil)
	t2 := mustTable(t, "dbo", "B", []*core.Column{pkCol("Id")}, pkIdx("B"), nil)
	rel, err := a.Analyze(t1, t2)
	require.NoError(t, err)
	assert.Equal(t, core.RelationshipUnknown, rel.Kind)
}

func TestAnalyze_NilArgumentIsError(t *testing.T) {
	a := New(nil)
	_, err := a.Analyze(nil, nil)
	require.Error(t, err)
}

func TestAnalyze_IsPureFunctionOfInputs(t *testing.T) {
	a := New(nil)
	order := mustTable(t, "dbo", "Order", []*core.Column{pkCol("Id")},
		[]*core.Index{{Name: "PK_Order", PrimaryKey: true, Unique: true, Columns: []core.IndexColumn{{ColumnName: "Id", KeyOrdinal: 1}}}}, nil)
	detail := mustTable(t, "dbo", "OrderDetail",
		[]*core.Column{{Name: "OrderId", Type: core.TypeInt, PrimaryKey: true}, {Name: "ProductId", Type: core.TypeInt, PrimaryKey: true}},
		[]*core.Index{{Name: "PK_OrderDetail", PrimaryKey: true, Unique: true, Columns: []core.IndexColumn{
			{ColumnName: "OrderId", KeyOrdinal: 1}, {ColumnName: "ProductId", KeyOrdinal: 2},
		}}},
		[]*core.ForeignKey{{Name: "FK", PrimaryTableName: "Order", Enabled: true, ColumnPairs: []core.ColumnPair{{FKColumn: "OrderId", PKColumn: "Id"}}}},
	)
	first, err := a.Analyze(detail, order)
	require.NoError(t, err)
	second, err := a.Analyze(detail, order)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
