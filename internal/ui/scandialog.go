package ui

import (
	"fmt"
	"log"

	"glimpse/internal/sequence"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// startScan launches an asynchronous enumeration of roots, shows a progress
// dialog with a cancel option, and installs a fresh shuffle session when the
// terminal result arrives. onCount, when non-nil, receives the final image
// count of a completed scan.
func (a *App) startScan(roots []string, onCount func(count int)) {
	if a.scan != nil {
		// A newer request supersedes any scan still in flight.
		a.scan.Cancel()
	}

	countLabel := widget.NewLabel("Found: 0 images")
	content := container.NewVBox(
		widget.NewLabel("Scanning for images..."),
		widget.NewProgressBarInfinite(),
		countLabel,
	)

	scan := sequence.Start(sequence.Config{
		Roots:      roots,
		Extensions: sequence.DefaultExtensions,
	})
	a.scan = scan
	a.currentRoots = roots

	d := dialog.NewCustom("Loading", "Cancel", content, a.UI.MainWin)
	d.SetOnClosed(scan.Cancel)
	d.Show()

	go func() {
		progress := scan.Progress()
		for {
			select {
			case n, ok := <-progress:
				if !ok {
					progress = nil
					continue
				}
				fyne.Do(func() { countLabel.SetText(fmt.Sprintf("Found: %d images", n)) })
			case res := <-scan.Done():
				fyne.Do(func() { a.finishScan(d, scan, res, onCount) })
				return
			}
		}
	}()
}

// finishScan consumes the single terminal outcome of a scan on the Fyne
// thread.
func (a *App) finishScan(d dialog.Dialog, scan *sequence.Scan, res sequence.Result, onCount func(int)) {
	if a.scan == scan {
		a.scan = nil
	}
	d.Hide()

	switch res.Status {
	case sequence.StatusCancelled:
		a.UI.statusLabel.SetText("Scan cancelled.")
		return
	case sequence.StatusFailed:
		dialog.ShowError(res.Err, a.UI.MainWin)
		return
	case sequence.StatusPartial:
		for _, w := range res.Warnings {
			log.Printf("Scan warning: %s: %v", w.Path, w.Err)
		}
		dialog.ShowInformation("Partial Scan",
			fmt.Sprintf("%d images found, but %d location(s) could not be read.", len(res.Images), len(res.Warnings)),
			a.UI.MainWin)
	}

	a.session = sequence.NewSession(res.Images, nil)
	a.img = Img{}
	a.zoomPanArea.SetImage(nil)
	a.refreshHistoryList()
	a.refreshNavButtons()

	if a.session.Len() == 0 {
		a.UI.statusLabel.SetText("No images found in the selected folders.")
		a.UI.MainWin.SetTitle("Glimpse")
		a.updateInfoText()
		return
	}

	if onCount != nil {
		onCount(a.session.Len())
	}
	a.slideshowManager.Reset()
	a.ShowNextImage()
}
