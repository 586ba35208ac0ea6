package main

import (
	"errors"
	"fmt"

	"vfsh/internal/config"
	"vfsh/internal/display"
	"vfsh/internal/logging"
	"vfsh/internal/namespace"
	"vfsh/internal/shell"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is set via -ldflags.
	Version = "dev"
)

// rootFlags holds flags that are not configuration keys.
type rootFlags struct {
	configFile string
	verbose    bool
	batch      bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "vfsh [script]",
		Short: "An in-memory virtual filesystem shell",
		Long: `vfsh keeps a directory tree in memory and lets you explore it with
ls, cd, mkdir, touch, and cat.

When a script is given, its lines are replayed before the session starts.
Configuration is read from $XDG_CONFIG_HOME/vfsh/vfsh.yaml and VFSH_*
environment variables; flags override both.`,
		Version:      Version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			script := ""
			if len(args) == 1 {
				script = args[0]
			}
			return runSession(cmd, flags, script)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/vfsh/vfsh.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	addConfigFlags(cmd.PersistentFlags())

	cmd.Flags().BoolVar(&flags.batch, "batch", false, "replay the script and exit without a session")
	cmd.Flags().String("interactive", config.InteractiveAuto, "terminal surface: auto, always, or never")
	cmd.Flags().String("prompt-suffix", shell.DefaultPromptSuffix, "text printed after the cursor in the prompt")
	cmd.Flags().Bool("color", true, "use colors in the terminal surface")

	cmd.AddCommand(newMountCommand(flags))
	return cmd
}

// addConfigFlags registers flags shared by every command. Their names match
// configuration keys with dashes in place of underscores.
func addConfigFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "warn", "log level: error, warn, info, debug, or trace")
	fs.Bool("strict-paths", false, "fail instead of replacing files that block a directory path")
	fs.Bool("normalize-cursor", false, "store the cursor as a clean absolute path")
	fs.String("env-file", "", "dotenv file with variables for $VAR expansion")
}

// loadConfig reads configuration for cmd and applies the log level.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFilePath: flags.configFile,
		Flags:          cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	if flags.verbose && level < logging.LevelDebug {
		level = logging.LevelDebug
	}
	logger.SetLevel(level)
	logger.Debug("Loaded configuration: %+v", *cfg)
	return cfg, nil
}

// newNamespace creates an empty namespace configured by cfg.
func newNamespace(cfg *config.Config) *namespace.Namespace {
	var opts []namespace.Option
	if cfg.StrictPaths {
		opts = append(opts, namespace.WithConflictPolicy(namespace.ConflictFail))
	}
	if cfg.NormalizeCursor {
		opts = append(opts, namespace.WithNormalizedCursor())
	}
	return namespace.New(opts...)
}

// dispatcherOptions translates cfg into dispatcher options.
func dispatcherOptions(cfg *config.Config) ([]shell.Option, error) {
	opts := []shell.Option{shell.WithPromptSuffix(cfg.PromptSuffix)}
	if cfg.EnvFile != "" {
		vars, err := shell.LoadEnvFile(cfg.EnvFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, shell.WithEnv(vars))
	}
	return opts, nil
}

func runSession(cmd *cobra.Command, flags *rootFlags, script string) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	opts, err := dispatcherOptions(cfg)
	if err != nil {
		return err
	}

	ns := newNamespace(cfg)
	ctx := cmd.Context()

	mode := display.ResolveMode(cfg.Interactive)
	if flags.batch {
		mode = display.ModeLine
	}

	if mode == display.ModeTerminal {
		logger.Info("Starting terminal session")
		transcript := &display.Transcript{}
		d := shell.NewDispatcher(ns, transcript, opts...)
		d.Intro()
		if script != "" {
			if err := d.ReplayFile(ctx, script); err != nil {
				return sessionResult(err)
			}
		}

		styles := display.DefaultStyles()
		if !cfg.Color {
			styles = display.PlainStyles()
		}
		return sessionResult(display.RunTerminal(ctx, d, transcript, styles))
	}

	logger.Info("Starting line session")
	in := cmd.InOrStdin()
	opts = append(opts, shell.WithInputEcho(!display.IsTerminal(in)))
	d := shell.NewDispatcher(ns, display.NewWriter(cmd.OutOrStdout()), opts...)
	d.Intro()
	if script != "" {
		if err := d.ReplayFile(ctx, script); err != nil {
			return sessionResult(err)
		}
	}
	if flags.batch {
		return nil
	}
	return sessionResult(d.Serve(ctx, in))
}

// sessionResult treats the exit command as a clean end of session.
func sessionResult(err error) error {
	if errors.Is(err, shell.ErrExit) {
		logger.Debug("Session ended by exit")
		return nil
	}
	return err
}
