// Package emit is a minimal stand-in for the downstream code emitter,
// which is deliberately out of scope: the schema graph is the contract,
// not bit-exact generated source. Result writes an entity manifest and a
// configuration manifest per table, plus one db context manifest, under
// the configured output directory, enough to exercise that
// the graph can drive the Entities/Configurations/<DbContextName>
// layout without implementing a templating engine.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ormreveal/internal/core"
)

// Result writes the manifest tree for db under outputDir and returns the
// db context file path it produced.
func Result(db *core.Database, outputDir, namespace, dbContextName string) (string, error) {
	entitiesDir := filepath.Join(outputDir, "Entities")
	configDir := filepath.Join(outputDir, "Configurations")
	for _, dir := range []string{entitiesDir, configDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", &core.CodeGenerationError{Entity: dir, Cause: err}
		}
	}

	for _, t := range db.Tables {
		entityPath := filepath.Join(entitiesDir, t.TableName+".manifest")
		if err := writeEntityManifest(entityPath, t, namespace); err != nil {
			return "", &core.CodeGenerationError{Entity: t.TableName, Cause: err}
		}

		configPath := filepath.Join(configDir, t.TableName+"Configuration.manifest")
		if err := writeConfigManifest(configPath, t, namespace); err != nil {
			return "", &core.CodeGenerationError{Entity: t.TableName, Cause: err}
		}
	}

	contextPath := filepath.Join(outputDir, dbContextName+".manifest")
	if err := writeContextManifest(contextPath, db, namespace, dbContextName); err != nil {
		return "", &core.CodeGenerationError{Entity: dbContextName, Cause: err}
	}
	return contextPath, nil
}

func writeEntityManifest(path string, t *core.Table, namespace string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "namespace %s.Entities;\n\nentity %s {\n", namespace, t.TableName)
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "  %s %s", c.Name, c.Type)
		if c.Nullable {
			b.WriteString("?")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeConfigManifest(path string, t *core.Table, namespace string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "namespace %s.Configurations;\n\nconfigure %sConfiguration for %s {\n", namespace, t.TableName, t.TableName)
	for _, fk := range t.ForeignKeys {
		fmt.Fprintf(&b, "  references %s via %s -> %s\n", fk.PrimaryTableName, fk.ForeignKeyColumn(), fk.PrimaryKeyColumn())
	}
	b.WriteString("}\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeContextManifest(path string, db *core.Database, namespace, dbContextName string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "namespace %s;\n\ncontext %s {\n", namespace, dbContextName)
	for _, t := range db.Tables {
		fmt.Fprintf(&b, "  DbSet<%s> %s\n", t.TableName, t.TableName)
	}
	b.WriteString("}\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
