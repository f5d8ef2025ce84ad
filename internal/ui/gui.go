package ui

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"time"

	"glimpse/internal/settings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

func parseURL(urlStr string) *url.URL {
	link, err := url.Parse(urlStr)
	if err != nil {
		fyne.LogError("Could not parse URL", err)
	}
	return link
}

func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}
	return falseVal
}

func (a *App) buildToolbar() *widget.Toolbar {
	a.UI.prevAction = widget.NewToolbarAction(theme.NavigateBackIcon(), a.ShowPreviousImage)
	a.UI.nextAction = widget.NewToolbarAction(theme.NavigateNextIcon(), a.ShowNextImage)
	a.UI.pauseAction = widget.NewToolbarAction(theme.MediaPlayIcon(), a.togglePlay)
	a.UI.prevAction.Disable()
	a.UI.nextAction.Disable()

	t := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.chooseFolder),
		widget.NewToolbarAction(theme.StorageIcon(), a.showCollectionsDialog),
		widget.NewToolbarSeparator(),
		a.UI.prevAction,
		a.UI.pauseAction,
		a.UI.nextAction,
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomInIcon(), func() { a.zoomPanArea.Zoom(1) }),
		widget.NewToolbarAction(theme.ZoomOutIcon(), func() { a.zoomPanArea.Zoom(-1) }),
		widget.NewToolbarAction(theme.ZoomFitIcon(), a.zoomPanArea.Reset),
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), a.zoomPanArea.ShowFullSize),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.HelpIcon(), a.showShortcuts),
	)
	a.UI.toolBar = t
	return t
}

func (a *App) buildStatusBar() *fyne.Container {
	a.UI.statusLabel = widget.NewLabel("Open a folder or collection to start.")
	return container.NewVBox(
		widget.NewSeparator(),
		container.NewHBox(a.UI.statusLabel, layout.NewSpacer()),
	)
}

func (a *App) buildInfoTab() *container.TabItem {
	a.UI.infoText = widget.NewRichTextFromMarkdown("# Info\n---\nNo image loaded.")
	a.UI.infoText.Wrapping = fyne.TextWrapWord
	return container.NewTabItem("Information", container.NewScroll(a.UI.infoText))
}

func (a *App) buildHistoryTab() *container.TabItem {
	a.UI.historyList = widget.NewList(
		func() int {
			if a.session == nil {
				return 0
			}
			return len(a.session.History())
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("filename.ext")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if a.session == nil {
				return
			}
			hist := a.session.History()
			if id < 0 || id >= len(hist) {
				return
			}
			obj.(*widget.Label).SetText(filepath.Base(hist[id]))
		},
	)
	a.UI.historyList.OnSelected = func(id widget.ListItemID) {
		if a.session != nil && id != a.session.Cursor() {
			a.jumpToHistory(id)
		}
	}
	return container.NewTabItem("History", a.UI.historyList)
}

func (a *App) buildMainMenu() *fyne.MainMenu {
	intervalItem := func(label string, seconds int) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() { a.setTimerInterval(seconds) })
	}
	timerMenu := fyne.NewMenu("",
		intervalItem("30s", 30),
		intervalItem("60s", 60),
		intervalItem("5m", 300),
		intervalItem("10m", 600),
		fyne.NewMenuItem("Custom...", a.promptCustomInterval),
	)
	timerItem := fyne.NewMenuItem("Timer Interval", nil)
	timerItem.ChildMenu = timerMenu

	bgItem := func(label, mode string) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() { a.setBackgroundMode(mode) })
	}
	bgMenu := fyne.NewMenu("",
		bgItem("Black", settings.BackgroundBlack),
		bgItem("Gray", settings.BackgroundGray),
		bgItem("Adaptive Color", settings.BackgroundAdaptive),
	)
	backgroundItem := fyne.NewMenuItem("Background Color", nil)
	backgroundItem.ChildMenu = bgMenu

	a.UI.historyMenuItem = fyne.NewMenuItem("Show History Panel", a.toggleHistoryPanel)
	a.UI.historyMenuItem.Checked = a.prefs.ShowHistoryPanel()

	return fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Open Folder...", a.chooseFolder),
			fyne.NewMenuItem("Collections...", a.showCollectionsDialog),
		),
		fyne.NewMenu("View",
			fyne.NewMenuItem("Next Image", a.ShowNextImage),
			fyne.NewMenuItem("Previous Image", a.ShowPreviousImage),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Flip Horizontal", a.toggleFlipH),
			fyne.NewMenuItem("Flip Vertical", a.toggleFlipV),
			fyne.NewMenuItem("Toggle Grayscale", a.toggleGrayscale),
			backgroundItem,
			fyne.NewMenuItemSeparator(),
			a.UI.historyMenuItem,
		),
		fyne.NewMenu("Slideshow",
			fyne.NewMenuItem("Play/Pause", a.togglePlay),
			timerItem,
		),
		fyne.NewMenu("Help",
			fyne.NewMenuItem("Keyboard Shortcuts", a.showShortcuts),
			fyne.NewMenuItem("About", a.showAbout),
		),
	)
}

func (a *App) buildMainUI() fyne.CanvasObject {
	a.UI.MainWin.SetMaster()
	// set main mod key to super on darwin hosts, else set it to ctrl
	if runtime.GOOS == "darwin" {
		a.UI.mainModKey = fyne.KeyModifierSuper
	} else {
		a.UI.mainModKey = fyne.KeyModifierControl
	}

	toolbar := a.buildToolbar()
	status := a.buildStatusBar()
	a.UI.MainWin.SetMainMenu(a.buildMainMenu())
	a.buildKeyboardShortcuts()

	a.zoomPanArea = NewZoomPanArea(nil, func() {
		a.slideshowManager.Pause(false)
		a.refreshPlayIcon()
	})
	a.UI.background = canvas.NewRectangle(nil)
	a.updateBackground()
	imageArea := container.NewStack(a.UI.background, a.zoomPanArea)

	a.UI.tabs = container.NewAppTabs(a.buildInfoTab())
	a.UI.historyTab = a.buildHistoryTab()
	if a.prefs.ShowHistoryPanel() {
		a.UI.tabs.Append(a.UI.historyTab)
	}

	a.UI.split = container.NewHSplit(imageArea, a.UI.tabs)
	a.UI.split.SetOffset(0.80)

	return container.NewBorder(
		toolbar, // top
		status,  // bottom
		nil,     // left
		nil,     // right
		a.UI.split,
	)
}

// toggleHistoryPanel flips the history panel visibility from the View menu.
func (a *App) toggleHistoryPanel() {
	a.setHistoryPanelVisible(!a.prefs.ShowHistoryPanel())
}

// setHistoryPanelVisible attaches or detaches the history tab and persists
// the choice.
func (a *App) setHistoryPanelVisible(show bool) {
	if err := a.prefs.SetShowHistoryPanel(show); err != nil {
		fyne.LogError("Could not persist history panel visibility", err)
	}
	if show {
		if !a.historyTabAttached() {
			a.UI.tabs.Append(a.UI.historyTab)
			a.refreshHistoryList()
		}
	} else if a.historyTabAttached() {
		a.UI.tabs.Remove(a.UI.historyTab)
	}
	if a.UI.historyMenuItem != nil {
		a.UI.historyMenuItem.Checked = show
		if a.UI.MainWin != nil && a.UI.MainWin.MainMenu() != nil {
			a.UI.MainWin.MainMenu().Refresh()
		}
	}
}

func (a *App) historyTabAttached() bool {
	for _, item := range a.UI.tabs.Items {
		if item == a.UI.historyTab {
			return true
		}
	}
	return false
}

// chooseFolder opens the folder picker and scans the selection.
func (a *App) chooseFolder() {
	a.slideshowManager.Pause(true)
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		defer a.slideshowManager.ResumeAfterOperation()
		if err != nil {
			dialog.ShowError(err, a.UI.MainWin)
			return
		}
		if uri == nil {
			return // cancelled
		}
		a.startScan([]string{uri.Path()}, nil)
	}, a.UI.MainWin)
}

// setTimerInterval stores a new auto-advance interval and restarts the
// countdown.
func (a *App) setTimerInterval(seconds int) {
	if err := a.prefs.SetTimerInterval(seconds); err != nil {
		fyne.LogError("Could not persist timer interval", err)
	}
	a.slideshowManager.SetInterval(time.Duration(seconds) * time.Second)
	a.updateStatusBar()
}

// promptCustomInterval asks for an interval in seconds.
func (a *App) promptCustomInterval() {
	entry := widget.NewEntry()
	entry.SetText(fmt.Sprintf("%d", a.prefs.TimerInterval()))
	dialog.ShowForm("Custom Timer Interval", "Apply", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Seconds", entry)},
		func(confirm bool) {
			if !confirm {
				return
			}
			var seconds int
			if _, err := fmt.Sscanf(entry.Text, "%d", &seconds); err != nil || seconds < 1 {
				dialog.ShowError(fmt.Errorf("invalid interval %q", entry.Text), a.UI.MainWin)
				return
			}
			a.setTimerInterval(seconds)
		}, a.UI.MainWin)
}
