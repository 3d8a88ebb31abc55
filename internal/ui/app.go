package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/auth"
	"github.com/piwi3910/RoomCraft/internal/cart"
	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/project"
	"github.com/piwi3910/RoomCraft/internal/projection"
	"github.com/piwi3910/RoomCraft/internal/session"
	"github.com/piwi3910/RoomCraft/internal/ui/widgets"
)

// Options wires the designer to its collaborators.
type Options struct {
	Session   *session.Session
	Templates *project.TemplateRepository
	Cart      *cart.Cart
	Gate      auth.Gate
	Logger    *zap.Logger
	PrefsPath string
}

// App holds the designer window and the widgets that mirror the session.
type App struct {
	app    fyne.App
	window fyne.Window
	sess   *session.Session
	repo   *project.TemplateRepository
	cart   *cart.Cart
	gate   auth.Gate
	log    *zap.Logger

	theme     *RoomCraftTheme
	prefs     project.Preferences
	prefsPath string

	// UI references for snapshot updates
	sceneView       *widgets.SceneView
	twoDPanel       fyne.CanvasObject
	projections     map[projection.Plane]*widgets.ProjectionCanvas
	dimEntries      [3]*widget.Entry
	colorSwatch     *canvas.Rectangle
	colorLabel      *widget.Label
	placedContainer *fyne.Container
	statusLabel     *widget.Label
	cartLabel       *widget.Label
	lockButton      *ttwidget.Button

	lastRoom    model.RoomSpec
	lastPanel   panelState
	unsubscribe func()
}

func NewApp(application fyne.App, window fyne.Window, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gate == nil {
		opts.Gate = auth.StaticGate(true)
	}
	if opts.PrefsPath == "" {
		opts.PrefsPath = project.DefaultPreferencesPath()
	}

	prefs, err := project.LoadPreferences(opts.PrefsPath)
	if err != nil {
		opts.Logger.Warn("failed to load preferences, using defaults", zap.String("path", opts.PrefsPath), zap.Error(err))
		prefs = project.DefaultPreferences()
	}

	a := &App{
		app:       application,
		window:    window,
		sess:      opts.Session,
		repo:      opts.Templates,
		cart:      opts.Cart,
		gate:      opts.Gate,
		log:       opts.Logger,
		theme:     NewRoomCraftTheme(prefs.Theme),
		prefs:     prefs,
		prefsPath: opts.PrefsPath,
	}
	application.Settings().SetTheme(a.theme)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	if !a.gate.Allowed() {
		a.window.SetMainMenu(fyne.NewMainMenu(
			fyne.NewMenu("File", fyne.NewMenuItem("Quit", func() { a.window.Close() })),
		))
		return
	}

	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = a.recentMenu()

	exportItem := fyne.NewMenuItem("Export", nil)
	exportItem.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("PDF Drawing Set...", func() { a.exportPDF() }),
		fyne.NewMenuItem("DXF Floor Plan...", func() { a.exportDXF() }),
		fyne.NewMenuItem("Placement Schedule (Excel)...", func() { a.exportSchedule() }),
		fyne.NewMenuItem("3D Model (GLB)...", func() { a.exportGLB() }),
	)

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.sess.NewScene()
		}),
		fyne.NewMenuItem("Open Template...", func() {
			a.showLoadTemplateDialog()
		}),
		recent,
		fyne.NewMenuItem("Save Template...", func() {
			a.showSaveTemplateDialog()
		}),
		fyne.NewMenuItem("Remove Template...", func() {
			a.showRemoveTemplateDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Placements...", func() {
			a.importPlacements()
		}),
		exportItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup Templates...", func() {
			a.backupTemplates()
		}),
		fyne.NewMenuItem("Restore Templates...", func() {
			a.restoreTemplates()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Clear Selection", func() {
			a.sess.ClearSelection()
		}),
		fyne.NewMenuItem("Room Color...", func() {
			a.showColorPicker()
		}),
	)

	lock := fyne.NewMenuItem("Lock Furniture", nil)
	lock.Checked = a.sceneView != nil && a.sceneView.Locked
	lock.Action = func() {
		a.toggleLock()
	}

	themeItem := fyne.NewMenuItem("Theme", nil)
	themeItem.ChildMenu = fyne.NewMenu("",
		a.themeMenuItem("System", ThemeSystem),
		a.themeMenuItem("Light", ThemeLight),
		a.themeMenuItem("Dark", ThemeDark),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("3D View", func() { a.setViewMode(project.ViewMode3D) }),
		fyne.NewMenuItem("2D Views", func() { a.setViewMode(project.ViewMode2D) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Camera", func() { a.sess.ResetCamera() }),
		lock,
		fyne.NewMenuItemSeparator(),
		themeItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

func (a *App) recentMenu() *fyne.Menu {
	if len(a.prefs.RecentTemplates) == 0 {
		none := fyne.NewMenuItem("No recent templates", nil)
		none.Disabled = true
		return fyne.NewMenu("", none)
	}
	items := make([]*fyne.MenuItem, 0, len(a.prefs.RecentTemplates))
	for _, name := range a.prefs.RecentTemplates {
		items = append(items, fyne.NewMenuItem(name, func() { a.loadTemplate(name) }))
	}
	return fyne.NewMenu("", items...)
}

func (a *App) themeMenuItem(label, name string) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, func() {
		a.theme.SetName(name)
		a.app.Settings().SetTheme(a.theme)
		a.prefs.Theme = name
		a.savePrefs()
		a.SetupMenus()
	})
	item.Checked = a.theme.Name() == name
	return item
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About RoomCraft",
		"RoomCraft - Room Designer\n\n"+
			"Lay out furniture in a room and see it from above,\n"+
			"the front, the side and in 3D at the same time.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container. When the
// authorization gate denies access only a notice is shown.
func (a *App) Build() fyne.CanvasObject {
	if !a.gate.Allowed() {
		a.log.Warn("designer refused: not signed in")
		return container.NewCenter(widget.NewLabelWithStyle(
			"Sign in required. Set auth.user in the configuration to open the designer.",
			fyne.TextAlignCenter, fyne.TextStyle{Bold: true},
		))
	}

	a.sceneView = widgets.NewSceneView(a.sess)
	a.twoDPanel = a.buildProjectionPanel()

	left := container.NewVScroll(container.NewVBox(
		a.buildRoomPanel(),
		a.buildPalette(),
	))
	right := container.NewVScroll(a.buildPlacedPanel())

	center := container.NewBorder(
		a.buildToolbar(), nil, nil, nil,
		container.NewStack(a.sceneView, a.twoDPanel),
	)

	a.statusLabel = widget.NewLabel("")
	a.cartLabel = widget.NewLabel("")
	status := container.NewHBox(a.statusLabel, layout.NewSpacer(), a.cartLabel)

	split := container.NewHSplit(left, container.NewHSplit(center, right))
	split.Offset = 0.2
	root := container.NewBorder(nil, status, nil, nil, split)

	a.applyViewMode()
	a.refreshCartCount()
	a.lastPanel = panelState{scale: -1} // force the first refresh
	a.unsubscribe = a.sess.Subscribe(a.onSnapshot)
	return root
}

// Close releases the session subscription and stores the preferences.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.savePrefs()
}

func (a *App) buildToolbar() fyne.CanvasObject {
	a.lockButton = newIconButtonWithTooltip(theme.VisibilityIcon(), "Lock furniture (drag orbits the camera)", func() {
		a.toggleLock()
	})
	return container.NewHBox(
		newButtonWithTooltip("3D", "Show the 3D view", func() { a.setViewMode(project.ViewMode3D) }),
		newButtonWithTooltip("2D", "Show the top, front and side views", func() { a.setViewMode(project.ViewMode2D) }),
		widget.NewSeparator(),
		a.lockButton,
		newIconButtonWithTooltip(theme.ViewRestoreIcon(), "Reset camera", func() { a.sess.ResetCamera() }),
		newIconButtonWithTooltip(theme.ZoomInIcon(), "Zoom in", func() { a.sess.ZoomCamera(0.9) }),
		newIconButtonWithTooltip(theme.ZoomOutIcon(), "Zoom out", func() { a.sess.ZoomCamera(1 / 0.9) }),
	)
}

func (a *App) buildProjectionPanel() fyne.CanvasObject {
	a.projections = make(map[projection.Plane]*widgets.ProjectionCanvas)
	var cards []fyne.CanvasObject
	for _, p := range projection.AllPlanes() {
		pc := widgets.NewProjectionCanvas(560, 260)
		a.projections[p] = pc
		cards = append(cards, widget.NewCard(p.Title(), "", container.NewCenter(pc)))
	}
	return container.NewVScroll(container.NewVBox(cards...))
}

func (a *App) toggleLock() {
	a.sceneView.Locked = !a.sceneView.Locked
	if a.sceneView.Locked {
		a.lockButton.SetIcon(theme.VisibilityOffIcon())
		a.lockButton.SetToolTip("Unlock furniture (drag moves items)")
	} else {
		a.lockButton.SetIcon(theme.VisibilityIcon())
		a.lockButton.SetToolTip("Lock furniture (drag orbits the camera)")
	}
	a.SetupMenus()
}

func (a *App) setViewMode(mode string) {
	if a.prefs.ViewMode == mode {
		return
	}
	a.prefs.ViewMode = mode
	a.applyViewMode()
	a.savePrefs()
}

func (a *App) applyViewMode() {
	if a.prefs.ViewMode == project.ViewMode2D {
		a.sess.CancelDrag()
		a.sceneView.Hide()
		a.twoDPanel.Show()
		return
	}
	a.twoDPanel.Hide()
	a.sceneView.Show()
}

// onSnapshot mirrors a session snapshot into every view. Side panels are
// left alone while an item is being dragged.
func (a *App) onSnapshot(snap session.Snapshot) {
	a.sceneView.SetScene(snap.Model, snap.Camera)
	for p, pc := range a.projections {
		pc.SetView(snap.Views.Get(p))
	}

	a.window.SetTitle("RoomCraft - " + snap.ProjectName)
	a.statusLabel.SetText(fmt.Sprintf("%s | %d item(s) placed", snap.ProjectName, snap.Scene.PlacedCount()))

	if snap.Dragging != "" {
		return
	}
	if snap.Scene.Room != a.lastRoom {
		a.lastRoom = snap.Scene.Room
		a.refreshRoomPanel(snap.Scene.Room)
	}
	if st := newPanelState(snap.Scene); st != a.lastPanel {
		a.lastPanel = st
		a.refreshPlacedPanel(snap.Scene)
	}
}

func (a *App) addToCart(t model.FurnitureType) {
	a.sess.AddToCart(context.Background(), t)
	a.refreshCartCount()
}

func (a *App) refreshCartCount() {
	if a.cart == nil {
		a.cartLabel.SetText("Cart unavailable")
		return
	}
	n, err := a.cart.Count(context.Background())
	if err != nil {
		a.log.Error("failed to count cart", zap.Error(err))
		a.cartLabel.SetText("Cart unavailable")
		return
	}
	a.cartLabel.SetText(fmt.Sprintf("Cart: %d item(s)", n))
}

func (a *App) savePrefs() {
	if err := project.SavePreferences(a.prefsPath, a.prefs); err != nil {
		a.log.Warn("failed to save preferences", zap.String("path", a.prefsPath), zap.Error(err))
	}
}
