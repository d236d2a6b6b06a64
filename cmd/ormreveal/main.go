// Package main wires the CLI: parse flags and config, introspect the
// target database, classify relationships, and emit the manifest tree.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"

	"ormreveal/internal/config"
	"ormreveal/internal/core"
	"ormreveal/internal/emit"
	"ormreveal/internal/introspect"
	_ "ormreveal/internal/introspect/mssql"
	_ "ormreveal/internal/introspect/mysql"
	_ "ormreveal/internal/introspect/postgresql"
	"ormreveal/internal/logging"
	"ormreveal/internal/pool"
	"ormreveal/internal/relate"
)

func main() {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "ormreveal",
		Short: "Reverse-engineer a relational schema into an EF Core model",
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Introspect a database and emit Entities/Configurations/DbContext",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, v)
		},
	}
	config.BindFlags(generateCmd, v)
	rootCmd.AddCommand(generateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, v *viper.Viper) error {
	configPath, _ := cmd.Flags().GetString("config")
	cg, err := config.Load(v, cmd, configPath)
	if err != nil {
		return err
	}

	log, err := logging.New("CodeGen.log")
	if err != nil {
		return fmt.Errorf("open log sink: %w", err)
	}
	defer log.Sync()

	dialect, err := core.DialectFromProvider(cg.Provider)
	if err != nil {
		log.Error("unsupported provider", err)
		return err
	}

	p, err := pool.New(core.DriverName(dialect), 8)
	if err != nil {
		log.Error("pool construction failed", err)
		return err
	}
	defer p.Clear()

	ctr, err := introspect.NewIntrospecter(cg.Provider, p, log)
	if err != nil {
		log.Error("no introspecter for provider", err, zap.String("provider", cg.Provider))
		return err
	}

	ctx := context.Background()
	db, err := ctr.Introspect(ctx, cg.Connection)
	if err != nil {
		log.Error("introspection failed", err)
		return err
	}
	log.Info("introspection complete", zap.Int("tables", len(db.Tables)))

	analyzer := relate.New(log)
	relationships := analyzer.AnalyzeAll(db.Tables)
	log.Info("relationship analysis complete", zap.Int("relationships", len(relationships)))

	contextPath, err := emit.Result(db, cg.Output, cg.Namespace, "AppDbContext")
	if err != nil {
		log.Error("emit failed", err)
		return err
	}
	log.Info("generation complete", zap.String("dbContext", contextPath))
	return nil
}
