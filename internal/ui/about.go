package ui

import (
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

func (a *App) showAbout() {
	dialog.ShowCustom("About", "Ok", container.NewVBox(
		widget.NewLabel("Glimpse - a random image viewer."),
		widget.NewLabel("Shows every image in your folders once before any repeat."),
		widget.NewHyperlink("Help and more information on GitHub", parseURL("https://github.com/glimpse-viewer/glimpse")),
		widget.NewLabel("v1.0 | License: MIT"),
	), a.UI.MainWin)
}
