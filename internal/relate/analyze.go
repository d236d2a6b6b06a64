// Package relate classifies ordered pairs of tables into relationship
// kinds, identifies junction tables, and assigns principal/dependent
// ends. The analyzer is stateless and safe to call concurrently.
package relate

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ormreveal/internal/core"
	"ormreveal/internal/logging"
)

// ErrInvalidArgument is returned when Analyze is called with a nil or
// unnamed table.
var ErrInvalidArgument = errors.New("relate: source and target tables must be non-nil")

const junctionMaxNonPKColumns = 3

// Analyzer classifies table pairs. It is stateless; the zero value with
// a nil logger is usable but silent.
type Analyzer struct {
	log *logging.Logger
}

// New constructs an Analyzer that reports rejections and downgrades
// through the given logger.
func New(log *logging.Logger) *Analyzer {
	if log != nil {
		log = log.Named("relate")
	}
	return &Analyzer{log: log}
}

// Analyze classifies the ordered pair (source, target). Internal faults
// downgrade the result to Unknown and are logged rather than returned;
// only a nil or unnamed table argument is reported as an error.
func (a *Analyzer) Analyze(source, target *core.Table) (rel *core.Relationship, err error) {
	if source == nil || target == nil {
		return nil, ErrInvalidArgument
	}
	if source.TableName == "" || target.TableName == "" {
		return nil, ErrInvalidArgument
	}

	defer func() {
		if r := recover(); r != nil {
			cause := fmt.Errorf("panic: %v", r)
			a.logWarn(source, target, cause)
			rel = &core.Relationship{Kind: core.RelationshipUnknown, SourceTable: source.TableName, TargetTable: target.TableName}
			err = nil
		}
	}()

	if len(source.Columns) == 0 || len(target.Columns) == 0 {
		a.logInfo(fmt.Sprintf("table %s or %s has no columns", source, target))
	}

	candidates := selectForeignKeys(source, target)
	if len(candidates) == 0 {
		return &core.Relationship{Kind: core.RelationshipUnknown, SourceTable: source.TableName, TargetTable: target.TableName}, nil
	}
	fk := candidates[0]

	if isJunctionTable(source) {
		return buildManyToMany(source, target, fk), nil
	}

	if source.UniqueIndexOn(fkColumns(fk)) != nil {
		return &core.Relationship{
			Kind:        core.RelationshipOneToOne,
			SourceTable: source.TableName,
			TargetTable: target.TableName,
			ForeignKeys: foreignKeyInfo(fk),
		}, nil
	}

	// OneToMany: intentional inversion so downstream consumers see
	// SourceTable as the "one" side.
	return &core.Relationship{
		Kind:        core.RelationshipOneToMany,
		SourceTable: target.TableName,
		TargetTable: source.TableName,
		ForeignKeys: foreignKeyInfo(fk),
	}, nil
}

// AnalyzeAll classifies every ordered pair drawn from tables, returning
// only the pairs that resolve to something other than Unknown.
func (a *Analyzer) AnalyzeAll(tables []*core.Table) []*core.Relationship {
	var out []*core.Relationship
	for _, s := range tables {
		for _, t := range tables {
			if s == t {
				continue
			}
			rel, err := a.Analyze(s, t)
			if err != nil {
				a.logWarn(s, t, err)
				continue
			}
			if rel.Kind != core.RelationshipUnknown {
				out = append(out, rel)
			}
		}
	}
	return out
}

// selectForeignKeys collects enabled, structurally valid FKs on source
// whose primary table is target.
func selectForeignKeys(source, target *core.Table) []*core.ForeignKey {
	var out []*core.ForeignKey
	for _, fk := range source.ForeignKeys {
		if !fk.Enabled || fk.PrimaryTableName != target.TableName {
			continue
		}
		if len(fk.ColumnPairs) == 0 {
			continue
		}
		valid := true
		for _, p := range fk.ColumnPairs {
			if p.FKColumn == "" || p.PKColumn == "" {
				valid = false
				break
			}
		}
		if valid {
			out = append(out, fk)
		}
	}
	return out
}

func fkColumns(fk *core.ForeignKey) []string {
	cols := make([]string, len(fk.ColumnPairs))
	for i, p := range fk.ColumnPairs {
		cols[i] = p.FKColumn
	}
	return cols
}

func foreignKeyInfo(fk *core.ForeignKey) []core.ForeignKeyInfo {
	out := make([]core.ForeignKeyInfo, len(fk.ColumnPairs))
	for i, p := range fk.ColumnPairs {
		out[i] = core.ForeignKeyInfo{
			FKColumn:   p.FKColumn,
			PKColumn:   p.PKColumn,
			DeleteRule: fk.DeleteRule,
			UpdateRule: fk.UpdateRule,
		}
	}
	return out
}

// isJunctionTable reports whether t is solely the carrier of a
// many-to-many relationship: a composite primary key entirely composed
// of FK columns, referencing at least two distinct tables, with few
// non-key columns.
func isJunctionTable(t *core.Table) bool {
	referenced := map[string]bool{}
	fkColumnSet := map[string]bool{}
	for _, fk := range t.ForeignKeys {
		if !fk.Enabled {
			continue
		}
		referenced[fk.PrimaryTableName] = true
		for _, p := range fk.ColumnPairs {
			fkColumnSet[p.FKColumn] = true
		}
	}
	if len(referenced) < 2 {
		return false
	}

	pkCols := t.PrimaryKeyColumns()
	if len(pkCols) < 2 {
		return false
	}
	for _, c := range pkCols {
		if !fkColumnSet[c] {
			return false
		}
	}

	nonPK := 0
	for _, c := range t.Columns {
		if !c.PrimaryKey {
			nonPK++
		}
	}
	return nonPK <= junctionMaxNonPKColumns
}

// buildManyToMany assembles the ManyToMany relationship for a junction
// table. The FK selected by selectForeignKeys points at target; the
// "other" FK (the one pointing somewhere else) names the entity on the
// opposite side, which becomes the output's SourceTable. The junction
// itself (the `source` input) becomes the output's TargetTable and is
// described by JunctionTableInfo.
func buildManyToMany(junction, target *core.Table, targetFK *core.ForeignKey) *core.Relationship {
	var otherFK *core.ForeignKey
	for _, fk := range junction.ForeignKeys {
		if fk.Enabled && fk.PrimaryTableName != target.TableName {
			otherFK = fk
			break
		}
	}

	sourceTable := junction.TableName
	if otherFK != nil {
		sourceTable = otherFK.PrimaryTableName
	}

	fkColumnSet := map[string]bool{}
	var sourceKeyColumns []string
	for _, fk := range junction.ForeignKeys {
		if !fk.Enabled {
			continue
		}
		for _, p := range fk.ColumnPairs {
			if !fkColumnSet[p.FKColumn] {
				fkColumnSet[p.FKColumn] = true
				sourceKeyColumns = append(sourceKeyColumns, p.FKColumn)
			}
		}
	}

	var additional []string
	for _, c := range junction.Columns {
		if !fkColumnSet[c.Name] {
			additional = append(additional, c.Name)
		}
	}

	var fkInfo []core.ForeignKeyInfo
	if otherFK != nil {
		fkInfo = foreignKeyInfo(otherFK)
	} else {
		fkInfo = foreignKeyInfo(targetFK)
	}

	return &core.Relationship{
		Kind:        core.RelationshipManyToMany,
		SourceTable: sourceTable,
		TargetTable: junction.TableName,
		ForeignKeys: fkInfo,
		JunctionTable: &core.JunctionTableInfo{
			TableName:         junction.TableName,
			SourceKeyColumns:  sourceKeyColumns,
			AdditionalColumns: additional,
		},
	}
}

func (a *Analyzer) logInfo(msg string) {
	if a.log != nil {
		a.log.Info(msg)
	}
}

func (a *Analyzer) logWarn(source, target *core.Table, cause error) {
	if a.log == nil {
		return
	}
	a.log.Warning(fmt.Sprintf("downgrading %s -> %s to Unknown", source, target), zap.Error(cause))
}
