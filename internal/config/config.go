// Package config defines the CodeGenerator settings loaded from a JSON
// config file and merged with CLI flag overrides via viper.
package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ormreveal/internal/core"
)

// CodeGenerator mirrors the CLI flag names in camelCase, per the
// external-interfaces config file schema.
type CodeGenerator struct {
	Connection      string `mapstructure:"connection" json:"connection"`
	Provider        string `mapstructure:"provider" json:"provider"`
	Namespace       string `mapstructure:"namespace" json:"namespace"`
	Output          string `mapstructure:"output" json:"output"`
	Pluralize       bool   `mapstructure:"pluralize" json:"pluralize"`
	DataAnnotations bool   `mapstructure:"dataAnnotations" json:"dataAnnotations"`
}

// Defaults returns the flag defaults from the external-interfaces
// contract.
func Defaults() CodeGenerator {
	return CodeGenerator{
		Provider:        "Microsoft.Data.SqlClient",
		Namespace:       "GeneratedApp.Data",
		Output:          "./Generated",
		Pluralize:       true,
		DataAnnotations: true,
	}
}

// BindFlags registers the CLI flags on cmd. Flags are read back
// explicitly in Load via cmd.Flags().Changed, so only flags the user
// actually passed override the config file — cobra's own defaults never
// clobber a value loaded from disk.
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	d := Defaults()
	flags := cmd.Flags()

	flags.StringP("connection", "c", "", "database connection string")
	flags.StringP("provider", "p", d.Provider, "one of SqlServer, MySql, PostgreSql")
	flags.StringP("namespace", "n", d.Namespace, "namespace/package for emitted code")
	flags.StringP("output", "o", d.Output, "output directory")
	flags.Bool("pluralize", d.Pluralize, "pluralize collection names")
	flags.Bool("data-annotations", d.DataAnnotations, "emit validation annotations")
	flags.String("config", "appsettings.json", "path to a JSON config file")
}

// Load reads configPath (if it exists) into a CodeGenerator seeded with
// Defaults(), then applies any flag explicitly set on cmd on top. CLI
// flags win over the config file only when the user actually passed
// them.
func Load(v *viper.Viper, cmd *cobra.Command, configPath string) (*CodeGenerator, error) {
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return nil, &core.ConfigError{Detail: "reading config file " + configPath, Cause: err}
		}
	}

	cg := Defaults()
	if err := v.UnmarshalKey("codeGenerator", &cg); err != nil {
		return nil, &core.ConfigError{Detail: "parsing config file " + configPath, Cause: err}
	}

	flags := cmd.Flags()
	if flags.Changed("connection") {
		cg.Connection, _ = flags.GetString("connection")
	}
	if flags.Changed("provider") {
		cg.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("namespace") {
		cg.Namespace, _ = flags.GetString("namespace")
	}
	if flags.Changed("output") {
		cg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("pluralize") {
		cg.Pluralize, _ = flags.GetBool("pluralize")
	}
	if flags.Changed("data-annotations") {
		cg.DataAnnotations, _ = flags.GetBool("data-annotations")
	}

	if cg.Connection == "" {
		return nil, &core.ConfigError{Detail: "connection string is required"}
	}
	if !core.ValidDialect(string(mustDialect(cg.Provider))) {
		return nil, &core.ConfigError{Detail: "unsupported provider " + cg.Provider}
	}
	return &cg, nil
}

func mustDialect(provider string) core.Dialect {
	d, err := core.DialectFromProvider(provider)
	if err != nil {
		return core.DialectUnsupported
	}
	return d
}
