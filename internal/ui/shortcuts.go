// Package ui  Shortcuts for keyboard actions
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

func (a *App) buildKeyboardShortcuts() {
	// ctrl+q to quit application
	a.UI.MainWin.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: a.UI.mainModKey,
	}, func(_ fyne.Shortcut) { a.app.Quit() })

	a.UI.MainWin.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyRight:
			a.ShowNextImage()
		case fyne.KeyLeft:
			a.ShowPreviousImage()
		case fyne.KeyP, fyne.KeySpace:
			a.togglePlay()
		case fyne.KeyH:
			a.toggleFlipH()
		case fyne.KeyV:
			a.toggleFlipV()
		case fyne.KeyG:
			a.toggleGrayscale()
		case fyne.KeyPlus, fyne.KeyEqual:
			a.zoomPanArea.Zoom(1)
		case fyne.KeyMinus:
			a.zoomPanArea.Zoom(-1)
		case fyne.Key0:
			a.zoomPanArea.Reset()
		case fyne.Key1:
			a.zoomPanArea.ShowFullSize()
		case fyne.KeyQ:
			a.app.Quit()
		// close dialogs with esc key
		case fyne.KeyEscape:
			if len(a.UI.MainWin.Canvas().Overlays().List()) > 0 {
				a.UI.MainWin.Canvas().Overlays().Top().Hide()
			}
		}
	})
}

func (a *App) showShortcuts() {
	shortcuts := []string{
		"Arrow Right", "Arrow Left",
		"P or Space",
		"H", "V", "G",
		"+ / -", "0", "1",
		"Ctrl+Q or Q", "Esc",
	}
	descriptions := []string{
		"Next Image", "Previous Image",
		"Play / Pause Slideshow",
		"Flip Horizontal", "Flip Vertical", "Toggle Grayscale",
		"Zoom In / Out", "Fit to Window", "Full Size (1:1)",
		"Quit Application", "Close Dialog",
	}

	win := a.app.NewWindow("Keyboard Shortcuts")
	table := widget.NewTable(
		func() (int, int) { return len(descriptions) + 1, 2 }, // +1 for header row
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			isHeader := id.Row == 0
			if isHeader {
				label.SetText(ternary(id.Col == 0, "Description", "Shortcut"))
			} else if id.Col == 0 {
				label.SetText(descriptions[id.Row-1])
			} else {
				label.SetText(shortcuts[id.Row-1])
			}
			label.TextStyle.Bold = isHeader
		},
	)
	table.SetColumnWidth(0, 250)
	table.SetColumnWidth(1, 250)
	win.SetContent(table)
	win.Resize(fyne.NewSize(520, 420))
	win.Show()
}
