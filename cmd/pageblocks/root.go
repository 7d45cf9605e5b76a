package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-pageblocks/internal/config"
	"github.com/goliatone/go-pageblocks/internal/logging"
	"github.com/goliatone/go-pageblocks/pkg/orchestrator"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/renderers/terminal"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla"
)

var (
	settings = config.New("")
	cfg      config.Config
	logger   = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "pageblocks",
	Short: "Render and edit block-based landing pages",
	Long: `pageblocks renders a landing page stored as a single JSON document of
typed content blocks, and hosts an in-place editor for it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default ./pageblocks.yaml)")
	flags.StringP("content", "c", config.Defaults().Content, "content document")
	flags.String("static-dir", config.Defaults().StaticDir, "site root holding uploaded images")
	flags.String("theme", config.Defaults().Theme, "theme name")
	flags.String("variant", config.Defaults().Variant, "theme variant")
	flags.String("templates", "", "directory replacing the embedded HTML templates")
	flags.String("log-level", config.Defaults().LogLevel, "log level (debug, info, warn, error)")
}

func setup(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("config")
	settings = config.New(file)
	if err := bindFlags(cmd, settings, map[string]string{
		"content":    "content",
		"static_dir": "static-dir",
		"theme":      "theme",
		"variant":    "variant",
		"templates":  "templates",
		"log_level":  "log-level",
		"output_dir": "out",
		"addr":       "addr",
		"title":      "title",
		"watch":      "watch",
		"debounce":   "debounce",
	}); err != nil {
		return err
	}

	loaded, used, err := config.Load(settings, file != "")
	if err != nil {
		return err
	}
	cfg = loaded
	logger = logging.NewWriter(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	if used != "" {
		logger.Debug("config loaded", "file", used)
	}
	return nil
}

// bindFlags binds the flags a command defines; others are skipped.
func bindFlags(cmd *cobra.Command, v *viper.Viper, keys map[string]string) error {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// newOrchestrator wires the renderers and theme from the loaded config.
func newOrchestrator(log *slog.Logger) (*orchestrator.Orchestrator, error) {
	html, err := vanilla.New(vanilla.WithTemplatesDir(cfg.Templates), vanilla.WithLogger(log))
	if err != nil {
		return nil, err
	}
	style, width := terminal.Detect(os.Stdout)

	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(terminal.New(terminal.WithStyle(style), terminal.WithWidth(width), terminal.WithLogger(log)))

	return orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithThemeSelector(render.BuiltinThemes(), cfg.Theme, cfg.Variant),
		orchestrator.WithLogger(log),
	), nil
}

// themeConfig resolves the configured theme for the edit host.
func themeConfig(ctx context.Context) (*theme.RendererConfig, error) {
	selected, err := render.SelectTheme(ctx, render.BuiltinThemes(), cfg.Theme, cfg.Variant)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return render.LandingTheme(cfg.Variant), nil
	}
	return selected, nil
}
