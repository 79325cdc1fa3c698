// Package cmd implements the command line interface of summer.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"summer/internal/config"
	"summer/internal/display"
	"summer/internal/logger"
	"summer/internal/render"
	"summer/internal/scanner"
	"summer/internal/style"
	"summer/internal/tui"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// EnvPrefix is the prefix of the environment variables bound to flags,
// like SUMMER_CONFIG.
const EnvPrefix = "SUMMER"

// NewRootCommand creates the summer command.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "summer [PATH]",
		Short: "Summarize the contents of a directory",
		Long: `summer lists the entries of a directory in columns.

Entries are classified in groups defined in the configuration file, and
they are shown with their disk usage and the changes in the Git
repository, when available.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			return run(cmd, v, path)
		},
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "Configuration file (default is $XDG_CONFIG_HOME/summer/config.yaml)")
	flags.BoolP("dump-config", "D", false, "Print the active configuration and exit")
	flags.BoolP("interactive", "i", false, "Show the summary in a full-screen viewer")
	flags.String("color", "", "When to use colors: auto, always or never")
	flags.Bool("debug", false, "Write debug logs to stderr")

	for _, name := range []string{"config", "dump-config", "interactive", "color", "debug"} {
		v.BindPFlag(name, flags.Lookup(name))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Values from the environment used by the output.
	v.BindEnv("columns", "COLUMNS")
	v.BindEnv("home", "HOME")

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, path string) error {
	logger.Init(logger.Options{
		Enabled: v.GetBool("debug"),
		Output:  cmd.ErrOrStderr(),
		Level:   slog.LevelDebug,
	})

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	if when := v.GetString("color"); when != "" {
		w, err := config.ParseWhen(when)
		if err != nil {
			return fmt.Errorf("invalid value for --color: %w", err)
		}
		cfg.Colors.When = w
	}

	out := cmd.OutOrStdout()

	if v.GetBool("dump-config") {
		return config.Dump(out, cfg)
	}

	env := render.Env{Home: v.GetString("home")}
	if name, ok := cfg.Colors.UseLsColors.Variable(); ok {
		if err := v.BindEnv("lscolors", name); err != nil {
			return fmt.Errorf("cannot read %s: %w", name, err)
		}
		if scheme := v.GetString("lscolors"); scheme != "" {
			env.Colors = style.ParseLsColors(scheme)
		}
	}

	file := outputFile(out)
	colors := display.UseColors(cfg.Colors.When, file)

	if v.GetBool("interactive") {
		return tui.Run(path, cfg, env, colors)
	}

	analysis, err := scanner.Analyze(path, cfg)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	screen := render.Render(analysis, cfg, env)

	opts := display.Options{
		Width:  display.TerminalWidth(v.GetString("columns"), file),
		Colors: colors,
	}

	if err := display.Print(out, screen, opts); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}

	return nil
}

func loadConfig(v *viper.Viper) (*config.Root, error) {
	if path := v.GetString("config"); path != "" {
		logger.Debug("loading configuration", "path", path)
		return config.Load(path)
	}

	return config.LoadDefault()
}

// outputFile returns the file behind w, if any.
func outputFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
