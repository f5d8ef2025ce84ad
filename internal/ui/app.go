// Package ui builds the Glimpse application window and wires the image
// sequencer, slideshow timer and persistent preferences together.
package ui

import (
	"image"
	"log"
	"time"

	"glimpse/internal/collection"
	"glimpse/internal/imgproc"
	"glimpse/internal/sequence"
	"glimpse/internal/settings"
	"glimpse/internal/slideshow"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Img holds the currently displayed image and its metadata.
type Img struct {
	OriginalImage image.Image
	Path          string
	Info          *imgproc.Info
}

// App represents the whole application with all its windows, widgets and
// functions.
type App struct {
	app fyne.App
	UI  UI

	session      *sequence.Session
	scan         *sequence.Scan // in-flight enumeration, nil when idle
	currentRoots []string       // roots behind the current session

	img       Img
	transform imgproc.Transform

	zoomPanArea *ZoomPanArea

	slideshowManager *slideshow.Manager
	prefs            *settings.Store
	collections      *collection.Manager

	stopTicker chan struct{}
}

// UI collects the widgets the App needs to update after construction.
type UI struct {
	MainWin    fyne.Window
	mainModKey fyne.KeyModifier

	toolBar     *widget.Toolbar
	prevAction  *widget.ToolbarAction
	nextAction  *widget.ToolbarAction
	pauseAction *widget.ToolbarAction

	background  *canvas.Rectangle
	statusLabel *widget.Label
	infoText    *widget.RichText
	historyList *widget.List
	split       *container.Split

	tabs            *container.AppTabs
	historyTab      *container.TabItem
	historyMenuItem *fyne.MenuItem
}

// CreateApplication builds and runs the Glimpse window. It blocks until the
// window is closed.
func CreateApplication() {
	prefs, err := settings.Open("")
	if err != nil {
		log.Fatalf("Unable to open settings store: %v", err)
	}
	defer prefs.Close()

	collections, err := collection.NewManager("", func(msg string) { log.Printf("[collections] %s", msg) })
	if err != nil {
		log.Fatalf("Unable to open collections directory: %v", err)
	}

	a := &App{
		app:              app.NewWithID("io.glimpse.viewer"),
		prefs:            prefs,
		collections:      collections,
		slideshowManager: slideshow.NewManager(time.Duration(prefs.TimerInterval()) * time.Second),
		stopTicker:       make(chan struct{}),
		transform:        imgproc.Transform{Grayscale: prefs.Grayscale()},
	}
	a.UI.MainWin = a.app.NewWindow("Glimpse")
	a.UI.MainWin.Resize(fyne.NewSize(950, 650))
	a.UI.MainWin.SetContent(a.buildMainUI())
	a.UI.MainWin.SetOnClosed(func() {
		close(a.stopTicker)
		if a.scan != nil {
			a.scan.Cancel()
		}
	})

	if prefs.AutoAdvance() {
		a.slideshowManager.TogglePlayPause() // start playing
	}
	go a.runAutoAdvance()

	a.openLastCollection()

	a.UI.MainWin.ShowAndRun()
}

// openLastCollection restores the collection used last session, if any.
func (a *App) openLastCollection() {
	name := a.prefs.LastCollection()
	if name == "" {
		return
	}
	c, err := a.collections.Load(name)
	if err != nil {
		log.Printf("Last collection %q unavailable: %v", name, err)
		return
	}
	a.openCollection(c)
}

// openCollection marks the collection used and scans its roots.
func (a *App) openCollection(c *collection.Collection) {
	c.MarkUsed()
	if err := a.collections.Save(c); err != nil {
		log.Printf("Unable to update collection %q: %v", c.Name, err)
	}
	if err := a.prefs.SetLastCollection(c.Name); err != nil {
		log.Printf("Unable to persist last collection: %v", err)
	}
	a.startScan(c.Paths, func(count int) {
		// Keep the stored image count fresh for the startup dialog.
		c.ImageCount = count
		if err := a.collections.Save(c); err != nil {
			log.Printf("Unable to update collection %q: %v", c.Name, err)
		}
	})
}

// runAutoAdvance drives the slideshow countdown from a one-second ticker and
// advances on the Fyne thread when the interval elapses.
func (a *App) runAutoAdvance() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopTicker:
			return
		case <-ticker.C:
			if a.slideshowManager.Tick(time.Second) {
				fyne.Do(func() { a.ShowNextImage() })
			} else if !a.slideshowManager.IsPaused() {
				fyne.Do(func() { a.updateStatusBar() })
			}
		}
	}
}

// togglePlay flips the slideshow state, persists it and refreshes the icon.
func (a *App) togglePlay() {
	a.slideshowManager.TogglePlayPause()
	a.slideshowManager.Reset()
	if err := a.prefs.SetAutoAdvance(!a.slideshowManager.IsPaused()); err != nil {
		log.Printf("Unable to persist auto-advance: %v", err)
	}
	a.refreshPlayIcon()
	a.updateStatusBar()
}
