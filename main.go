// Package main provides the entry point for the Selection Canvas application.
package main

import (
	"os"
	"time"

	"selection-canvas/internal/app"
	"selection-canvas/internal/config"
	"selection-canvas/internal/logging"
	"selection-canvas/internal/version"
	"selection-canvas/ui/mainwindow"
	"selection-canvas/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"github.com/sirupsen/logrus"
)

const appID = "io.github.selectioncanvas"

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr); err != nil {
		logrus.WithError(err).Fatal("setup logging")
	}
	log := logging.Component("main")
	log.WithField("version", version.String()).Info("starting Selection Canvas")

	session := app.NewSession(app.Policy{
		DefaultWidth:         cfg.Canvas.DefaultWidth,
		DefaultHeight:        cfg.Canvas.DefaultHeight,
		CreateOnSurfaceClick: cfg.Canvas.CreateOnSurfaceClick,
	})
	if cfg.Canvas.InitialBox {
		box, err := session.AddBox(cfg.Canvas.InitialX, cfg.Canvas.InitialY)
		if err != nil {
			log.WithError(err).Error("initial selection")
		} else {
			session.SetActive(box)
		}
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.SelectionTheme{})

	win := mainwindow.New(fyneApp, session, prefs.Load(),
		fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	if cfg.HotReload.Enabled {
		reloader := setupHotReload(win)
		if reloader != nil {
			defer reloader.Stop()
		}
	}

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) *app.HotReloader {
	log := logging.Component("hotreload")
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Warn("unable to determine executable path")
		return nil
	}

	log.WithFields(logrus.Fields{
		"path":     reloader.ExecPath(),
		"modified": reloader.StartupTime().Format("15:04:05"),
	}).Info("watching binary")

	reloader.OnNewBinary(func() {
		log.Info("newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(ok bool) {
				if !ok {
					reloader.Stop()
					reloader.ResetBaseline()
					if err := reloader.Start(); err != nil {
						log.WithError(err).Warn("hot reload disabled")
					}
					return
				}
				win.SavePreferences()
				log.Info("restarting")
				if err := reloader.Restart(); err != nil {
					log.WithError(err).Error("restart failed")
				}
			}, win.Window)
	})

	if err := reloader.Start(); err != nil {
		log.WithError(err).Warn("hot reload disabled")
		return nil
	}
	return reloader
}
