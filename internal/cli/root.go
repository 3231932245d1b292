package cli

import (
	"errors"
	"io"
	"os"

	"hackclock/internal/config"
	"hackclock/internal/platform"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrNotInteractive indicates the terminal view was started without a TTY.
var ErrNotInteractive = errors.New("terminal view needs an interactive terminal")

// App holds what every command needs.
type App struct {
	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// ConfigDir locates the per-user directory for config and state.
	ConfigDir func() (string, error)
	// Lock guards a persisted state location against a second clock.
	Lock func(statePath string) (*platform.InstanceGuard, error)

	viper      *viper.Viper
	configPath string
	cfg        *config.Config
	dir        string
}

// NewApp returns an App wired to the real platform.
func NewApp() *App {
	return &App{
		IsInteractive: func() bool { return false },
		ConfigDir: func() (string, error) {
			return platform.ConfigDir(config.AppName)
		},
		Lock: func(statePath string) (*platform.InstanceGuard, error) {
			return platform.AcquireSingleInstance(config.AppName, statePath)
		},
	}
}

// NewRootCmd creates the top-level "hackclock" command.
func NewRootCmd(app *App) *cobra.Command {
	app.viper = viper.New()

	root := &cobra.Command{
		Use:           "hackclock",
		Short:         "Hackathon countdown with independent phase timers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(app)
		},
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (default: ./config.yaml or <user config dir>/HackClock/config.yaml)")
	flags.String("backend", "", "storage backend: yaml, sqlite, preferences or memory")
	flags.String("state", "", "state file for the yaml and sqlite backends")

	root.AddCommand(
		newGUICmd(app),
		newTUICmd(app),
		newStatusCmd(app),
		newResetCmd(app),
	)
	return root
}

func (app *App) loadConfig(cmd *cobra.Command) error {
	dir, err := app.ConfigDir()
	if err != nil {
		return err
	}
	app.dir = dir

	flags := cmd.Flags()
	if err := app.viper.BindPFlag("storage.backend", flags.Lookup("backend")); err != nil {
		return err
	}
	if err := app.viper.BindPFlag("storage.path", flags.Lookup("state")); err != nil {
		return err
	}

	cfg, err := config.Load(app.viper, app.configPath, dir)
	if err != nil {
		return err
	}
	app.cfg = cfg
	return nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
