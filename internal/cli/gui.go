package cli

import (
	"log"

	"hackclock/internal/config"
	"hackclock/internal/core/countdown"
	"hackclock/internal/ui/board"
	"hackclock/internal/ui/tray"
	"hackclock/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const appID = "io.hackclock.app"

func newGUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the timer window (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(app)
		},
	}
}

func runGUI(app *App) error {
	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))

	sess, err := app.openSession(fyneApp.Preferences())
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Printf("close session: %v", err)
		}
	}()
	log.Printf("main countdown stored in %s", sess.location)

	store := sess.store
	logPersistErrors(store)

	cfg := app.cfg
	boardWindow := board.New(fyneApp, store, boardConfig(cfg))
	boardWindow.Follow(store.Subscribe(16))
	app.watchConfig(func(cfg *config.Config) {
		fyne.Do(func() {
			boardWindow.UpdateConfig(boardConfig(cfg))
		})
	})

	quit := func() {
		store.Close()
		fyneApp.Quit()
	}

	desktopApp, ok := fyneApp.(desktop.App)
	switch {
	case !cfg.Tray:
		boardWindow.Window().SetMaster()
	case !ok:
		log.Printf("system tray unsupported on this platform")
		boardWindow.Window().SetMaster()
	default:
		trayManager := tray.New(desktopApp, tray.Icons{
			Active: resources.MustIcon(resources.IconActive),
			Paused: resources.MustIcon(resources.IconPaused),
		}, tray.Callbacks{
			OnShow:       boardWindow.Show,
			OnToggleMain: store.ToggleMain,
			OnReset:      store.Reset,
			OnQuit:       quit,
		})
		trayManager.Render(store.Snapshot())

		events := store.Subscribe(16)
		go func() {
			for event := range events {
				snapshot := event.Snapshot
				fyne.Do(func() {
					trayManager.Render(snapshot)
				})
			}
		}()

		boardWindow.Window().SetCloseIntercept(boardWindow.Hide)
	}

	boardWindow.Show()
	fyneApp.Run()
	return nil
}

func boardConfig(cfg *config.Config) board.Config {
	return board.Config{
		Fullscreen:   cfg.Window.Fullscreen,
		Size:         fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)),
		ConfirmReset: cfg.ConfirmReset,
	}
}

// watchConfig calls apply with the new settings whenever the config file in
// use changes. Storage settings only take effect on restart.
func (app *App) watchConfig(apply func(*config.Config)) {
	if app.viper.ConfigFileUsed() == "" {
		return
	}
	app.viper.OnConfigChange(func(event fsnotify.Event) {
		cfg, err := config.Decode(app.viper)
		if err != nil {
			log.Printf("reload %s: %v", event.Name, err)
			return
		}
		log.Printf("config reloaded from %s", event.Name)
		apply(cfg)
	})
	app.viper.WatchConfig()
}

func logPersistErrors(store *countdown.Store) {
	store.Observe(func(event countdown.Event) {
		if event.Type == countdown.EventPersistError {
			log.Printf("%v", event.Err)
		}
	})
}
