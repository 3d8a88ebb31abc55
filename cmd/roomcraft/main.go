// RoomCraft - Room Designer
//
// A cross-platform desktop application for laying out furniture in a room
// with live top, front, side and 3D views.
//
// Build:
//   go build -o roomcraft ./cmd/roomcraft
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/auth"
	"github.com/piwi3910/RoomCraft/internal/cart"
	"github.com/piwi3910/RoomCraft/internal/config"
	"github.com/piwi3910/RoomCraft/internal/logger"
	"github.com/piwi3910/RoomCraft/internal/project"
	"github.com/piwi3910/RoomCraft/internal/projection"
	"github.com/piwi3910/RoomCraft/internal/session"
	"github.com/piwi3910/RoomCraft/internal/store"
	"github.com/piwi3910/RoomCraft/internal/ui"
)

func main() {
	flags, err := config.ParseFlags("roomcraft", os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roomcraft: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer func() { _ = log.Sync() }()

	kv, err := store.Open(context.Background(), cfg.Storage.Path)
	if err != nil {
		log.Warn("template storage unavailable, keeping data in memory",
			zap.String("path", cfg.Storage.Path), zap.Error(err))
		kv = store.NewMemory()
	}
	defer kv.Close()

	repo := project.NewTemplateRepository(kv, log.Named("templates"))
	basket := cart.New(kv)
	sess := session.New(session.Options{
		Templates: repo,
		Cart:      basket,
		Renderer:  projection.NewRenderer(cfg.Designer.ScaleFactor, log.Named("projection")),
		Logger:    log.Named("session"),
	})

	application := app.NewWithID("com.piwi3910.roomcraft")
	window := application.NewWindow("RoomCraft")

	appUI := ui.NewApp(application, window, ui.Options{
		Session:   sess,
		Templates: repo,
		Cart:      basket,
		Gate:      auth.DesktopGate(cfg.Auth.Required, cfg.Auth.User),
		Logger:    log.Named("ui"),
	})
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.SetOnClosed(appUI.Close)
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()

	log.Info("designer started", zap.String("storage", cfg.Storage.Path))
	window.ShowAndRun()
}
