// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"selection-canvas/internal/app"
	"selection-canvas/internal/logging"
	"selection-canvas/internal/render"
	"selection-canvas/internal/version"
	"selection-canvas/ui/canvas"
	"selection-canvas/ui/panels"
	"selection-canvas/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

const (
	exportMargin = 20
	cascadeStep  = 20
	cascadeSpan  = 10
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	session   *app.Session
	prefs     *prefs.Prefs
	canvas    *canvas.SelectionCanvas
	props     *panels.PropertySheet
	statusBar *widget.Label

	// Menu items that need state tracking
	surfaceClickItem *fyne.MenuItem

	log *logrus.Entry
}

// New creates a new main window. The window size comes from preferences,
// falling back to defaultSize.
func New(fyneApp fyne.App, session *app.Session, p *prefs.Prefs, defaultSize fyne.Size) *MainWindow {
	win := fyneApp.NewWindow("Selection Canvas")

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: session,
		prefs:   p,
		log:     logging.Component("mainwindow"),
	}

	if p.Bool(prefs.KeySurfaceClick, session.Policy().CreateOnSurfaceClick) {
		session.SetCreateOnSurfaceClick(true)
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	mw.Resize(fyne.NewSize(
		float32(p.FloatWithFallback(prefs.KeyWindowWidth, float64(defaultSize.Width))),
		float32(p.FloatWithFallback(prefs.KeyWindowHeight, float64(defaultSize.Height))),
	))
	mw.SetCloseIntercept(func() {
		mw.SavePreferences()
		mw.Close()
	})

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewSelectionCanvas(mw.session)
	mw.statusBar = widget.NewLabel("")

	toolbar := container.NewHBox(
		widget.NewButton("New", mw.onNewSelection),
		widget.NewButton("Clear", mw.onClearAll),
	)

	mw.props = panels.NewPropertySheet(mw.session)

	// Canvas | property sheet
	split := container.NewHSplit(mw.canvas, container.NewVScroll(mw.props.Container()))
	split.SetOffset(0.8)

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)
	mw.SetContent(content)
	mw.updateStatus()
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export PNG...", func() { mw.onExport(render.FormatPNG) }),
		fyne.NewMenuItem("Export SVG...", func() { mw.onExport(render.FormatSVG) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.SavePreferences()
			mw.app.Quit()
		}),
	)

	mw.surfaceClickItem = fyne.NewMenuItem("Create on Surface Click", mw.onToggleSurfaceClick)
	mw.surfaceClickItem.Checked = mw.session.Policy().CreateOnSurfaceClick

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("New Selection", mw.onNewSelection),
		fyne.NewMenuItem("Close Active Selection", mw.onCloseActive),
		fyne.NewMenuItem("Clear All", mw.onClearAll),
		fyne.NewMenuItemSeparator(),
		mw.surfaceClickItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

// setupEventHandlers keeps the status bar current.
func (mw *MainWindow) setupEventHandlers() {
	mw.canvas.OnChange(mw.updateStatus)
}

// SelectionCanvas returns the canvas widget hosting the boxes.
func (mw *MainWindow) SelectionCanvas() *canvas.SelectionCanvas {
	return mw.canvas
}

// StatusText describes the session for the status bar.
func (mw *MainWindow) StatusText() string {
	n := len(mw.session.Boxes())
	var sb strings.Builder
	if n == 1 {
		sb.WriteString("1 selection")
	} else {
		fmt.Fprintf(&sb, "%d selections", n)
	}

	active := mw.session.Active()
	if active == nil {
		sb.WriteString(" | no active selection")
		return sb.String()
	}
	b := active.Bounds()
	fmt.Fprintf(&sb, " | #%d at (%.0f, %.0f) %.0fx%.0f",
		active.Order(), b.X, b.Y, b.Width, b.Height)
	return sb.String()
}

func (mw *MainWindow) updateStatus() {
	mw.statusBar.SetText(mw.StatusText())
}

// nextPosition cascades new boxes down and to the right of the initial
// position.
func (mw *MainWindow) nextPosition() (float64, float64) {
	step := float64(len(mw.session.Boxes())%cascadeSpan) * cascadeStep
	return 150 + step, 150 + step
}

func (mw *MainWindow) onNewSelection() {
	x, y := mw.nextPosition()
	box, err := mw.session.AddBox(x, y)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.session.SetActive(box)
}

func (mw *MainWindow) onCloseActive() {
	active := mw.session.Active()
	if active == nil {
		return
	}
	if err := mw.session.CloseBox(active.Order()); err != nil {
		mw.log.WithError(err).Warn("close active selection")
	}
}

func (mw *MainWindow) onClearAll() {
	mw.session.Clear()
}

func (mw *MainWindow) onToggleSurfaceClick() {
	enabled := !mw.session.Policy().CreateOnSurfaceClick
	mw.session.SetCreateOnSurfaceClick(enabled)
	mw.surfaceClickItem.Checked = enabled
	mw.prefs.SetBool(prefs.KeySurfaceClick, enabled)
	if menu := mw.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

// Export writes the current boxes to w in the given format, sized to fit
// the boxes and no smaller than the canvas.
func (mw *MainWindow) Export(w io.Writer, format render.Format) error {
	r, err := render.ForFormat(format)
	if err != nil {
		return err
	}
	size := mw.canvas.Size()
	scene := render.FitScene(mw.session.Boxes(), int(size.Width), int(size.Height), exportMargin)
	return r.Render(w, scene)
}

func (mw *MainWindow) onExport(format render.Format) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		path := writer.URI().Path()
		mw.prefs.SetString(prefs.KeyLastExport, filepath.Dir(path))
		if err := mw.Export(writer, format); err != nil {
			mw.log.WithError(err).WithField("path", path).Error("export failed")
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.log.WithField("path", path).Info("exported")
	}, mw.Window)
	fd.SetFileName("selections." + string(format))
	if loc := mw.lastExportDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// lastExportDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) lastExportDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastExport)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// SavePreferences stores the window size and writes preferences to disk.
func (mw *MainWindow) SavePreferences() {
	size := mw.Window.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
		mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	}
	mw.SavePreferencesIfChanged()
}

// SavePreferencesIfChanged writes preferences only when a value changed.
func (mw *MainWindow) SavePreferencesIfChanged() {
	if !mw.prefs.Changed() {
		return
	}
	if err := mw.prefs.Save(); err != nil {
		mw.log.WithError(err).Warn("save preferences")
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Selection Canvas",
		fmt.Sprintf("Selection Canvas v%s\n\n"+
			"Numbered, resizable selection boxes.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
