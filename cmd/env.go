package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/config"
	"github.com/arcanaland/punchcard/internal/render"
	"github.com/arcanaland/punchcard/internal/typeface"
)

// env is what commands share once startup has succeeded.
type env struct {
	cfg      *config.Config
	typeface *typeface.Typeface
	renderer *render.Renderer
}

var app env

// setup loads the config, installs the logger and loads the font. A font that
// cannot be loaded or fails verification aborts the command.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	levelName := cfg.LogLevel
	if logLevel != "" {
		levelName = logLevel
	}
	level, err := config.ParseLogLevel(levelName)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	tf, err := typeface.Load(cfg.FontPath)
	if err != nil {
		return fmt.Errorf("could not load font: %w", err)
	}
	geometry := cfg.Geometry()
	if err := tf.Verify(geometry.Height); err != nil {
		return fmt.Errorf("font %s cannot be used for punch cards: %w", tf.Name, err)
	}
	slog.Debug("font loaded", "name", tf.Name, "path", cfg.FontPath)

	background, ink, err := cfg.Colors()
	if err != nil {
		return err
	}

	app = env{
		cfg:      cfg,
		typeface: tf,
		renderer: render.New(tf, geometry, render.WithColors(background, ink)),
	}
	return nil
}

// cardFromArgs builds the card from the optional header argument and the
// --footer flag.
func cardFromArgs(cmd *cobra.Command, args []string) (card.Card, error) {
	var header string
	if len(args) > 0 {
		header = args[0]
	}
	footer, _ := cmd.Flags().GetString("footer")
	return card.New(header, footer)
}

func addFooterFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("footer", "f", "", "Optional line of text at the bottom of the card")
}
