package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/reoring/baseclass/i18n"
	"github.com/reoring/baseclass/manifest"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// app carries what every subcommand shares.
type app struct {
	v   *viper.Viper
	log *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "baseclass",
		Short: "Inspect and instantiate classes declared in a YAML manifest",
		Long: `baseclass loads class and mixin declarations from a YAML manifest and
shows their merged fields, signatures and JSON Schema, or constructs an
instance from key=value arguments.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	pf := root.PersistentFlags()
	pf.StringP("manifest", "m", "baseclass.yaml", "manifest file")
	pf.StringP("output", "o", "text", "output format: text or json")
	pf.Bool("no-color", false, "disable colored output")
	pf.String("lang", "en", "message language: en or ja")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	_ = a.v.BindPFlag("manifest", pf.Lookup("manifest"))
	_ = a.v.BindPFlag("output", pf.Lookup("output"))
	_ = a.v.BindPFlag("no_color", pf.Lookup("no-color"))
	_ = a.v.BindPFlag("lang", pf.Lookup("lang"))
	_ = a.v.BindPFlag("verbose", pf.Lookup("verbose"))

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDescribeCmd(a))
	root.AddCommand(newNewCmd(a))
	root.AddCommand(newSchemaCmd(a))
	return root
}

// setup reads .baseclass.yaml from the working directory (if present) and
// BASECLASS_* environment variables, then applies language and logging.
func (a *app) setup() error {
	a.v.SetConfigName(".baseclass")
	a.v.SetConfigType("yaml")
	a.v.AddConfigPath(".")
	a.v.SetEnvPrefix("BASECLASS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	i18n.SetLanguage(a.v.GetString("lang"))
	switch a.v.GetString("output") {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q", a.v.GetString("output"))
	}
	if a.v.GetBool("verbose") {
		l, err := zap.NewDevelopment()
		if err != nil {
			l = zap.NewNop()
		}
		a.log = l
	}
	a.log.Debug("config resolved",
		zap.String("config_file", a.v.ConfigFileUsed()),
		zap.String("manifest", a.v.GetString("manifest")),
		zap.String("output", a.v.GetString("output")))
	return nil
}

func (a *app) jsonOutput() bool { return a.v.GetString("output") == "json" }

func (a *app) noColor() bool { return a.v.GetBool("no_color") }

func (a *app) registry() (*manifest.Registry, error) {
	path := a.v.GetString("manifest")
	r, err := manifest.LoadFile(path)
	if err != nil {
		a.log.Debug("manifest load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	a.log.Debug("manifest loaded",
		zap.String("path", path),
		zap.Strings("classes", r.Names()),
		zap.Strings("mixins", r.MixinNames()))
	return r, nil
}
