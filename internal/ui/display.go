package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"glimpse/internal/imgproc"
	"glimpse/internal/sequence"
	"glimpse/internal/settings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ShowNextImage advances the session: forward through history when the
// cursor is behind the tail, otherwise a fresh shuffled draw.
func (a *App) ShowNextImage() {
	if a.session == nil {
		return
	}
	path, err := a.session.Advance()
	if err != nil {
		if errors.Is(err, sequence.ErrEmptySet) {
			a.UI.statusLabel.SetText("No images found in the selected folders.")
		}
		a.refreshNavButtons()
		return
	}
	a.slideshowManager.Reset()
	a.displayImage(path)
}

// ShowPreviousImage moves the history cursor back one entry.
func (a *App) ShowPreviousImage() {
	if a.session == nil {
		return
	}
	path, err := a.session.Retreat()
	if err != nil {
		a.refreshNavButtons()
		return
	}
	a.slideshowManager.Reset()
	a.displayImage(path)
}

// jumpToHistory displays an arbitrary history entry picked from the panel.
func (a *App) jumpToHistory(i int) {
	if a.session == nil {
		return
	}
	path, err := a.session.Seek(i)
	if err != nil {
		return
	}
	a.slideshowManager.Reset()
	a.displayImage(path)
}

// displayImage loads and decodes path off the event thread, then applies the
// current transform and updates every dependent widget on the Fyne thread.
func (a *App) displayImage(path string) {
	go func() {
		info, decoded, err := imgproc.GetInfo(path)
		if err != nil {
			fyne.Do(func() { a.handleImageDisplayError(path, err) })
			return
		}
		fyne.Do(func() {
			a.img = Img{OriginalImage: decoded, Path: path, Info: info}
			a.applyTransform()
			a.updateBackground()
			a.UI.MainWin.SetTitle(fmt.Sprintf("Glimpse - %s (%dx%d)", filepath.Base(path), info.Width, info.Height))
			a.updateStatusBar()
			a.updateInfoText()
			a.refreshHistoryList()
			a.refreshNavButtons()
		})
	}()
}

// applyTransform renders the cached original through the active transform.
func (a *App) applyTransform() {
	if a.img.OriginalImage == nil {
		return
	}
	a.zoomPanArea.SetImage(imgproc.Apply(a.img.OriginalImage, a.transform))
}

// handleImageDisplayError clears the display and reports the failure.
func (a *App) handleImageDisplayError(path string, err error) {
	log.Printf("Error displaying %s: %v", path, err)
	a.img = Img{Path: path}
	a.zoomPanArea.SetImage(nil)
	a.UI.MainWin.SetTitle(fmt.Sprintf("Glimpse - Error loading %s", filepath.Base(path)))
	a.UI.statusLabel.SetText(fmt.Sprintf("Cannot load %s", filepath.Base(path)))
	a.updateInfoText()
}

// toggleFlipH mirrors the current image horizontally.
func (a *App) toggleFlipH() {
	a.transform.FlipH = !a.transform.FlipH
	a.applyTransform()
}

// toggleFlipV mirrors the current image vertically.
func (a *App) toggleFlipV() {
	a.transform.FlipV = !a.transform.FlipV
	a.applyTransform()
}

// toggleGrayscale flips grayscale rendering and persists the choice.
func (a *App) toggleGrayscale() {
	a.transform.Grayscale = !a.transform.Grayscale
	if err := a.prefs.SetGrayscale(a.transform.Grayscale); err != nil {
		log.Printf("Unable to persist grayscale setting: %v", err)
	}
	a.applyTransform()
}

// setBackgroundMode persists the canvas background mode and repaints.
func (a *App) setBackgroundMode(mode string) {
	if err := a.prefs.SetBackgroundMode(mode); err != nil {
		log.Printf("Unable to persist background mode: %v", err)
	}
	a.updateBackground()
}

// updateBackground repaints the canvas backdrop for the active mode.
func (a *App) updateBackground() {
	if a.UI.background == nil {
		return
	}
	switch a.prefs.BackgroundMode() {
	case settings.BackgroundGray:
		a.UI.background.FillColor = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	case settings.BackgroundAdaptive:
		if a.img.OriginalImage != nil {
			a.UI.background.FillColor = dominantColor(a.img.OriginalImage)
		} else {
			a.UI.background.FillColor = color.Black
		}
	default:
		a.UI.background.FillColor = color.Black
	}
	a.UI.background.Refresh()
}

// dominantColor finds the most frequent color in a downsampled pass over the
// image, used for the adaptive background mode.
func dominantColor(img image.Image) color.Color {
	b := img.Bounds()
	step := b.Dx()
	if b.Dy() < step {
		step = b.Dy()
	}
	step /= 64
	if step < 1 {
		step = 1
	}

	counts := make(map[uint32]int)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, _ := img.At(x, y).RGBA()
			key := (r >> 8 << 16) | (g >> 8 << 8) | (bl >> 8)
			counts[key]++
		}
	}

	var best uint32
	bestCount := 0
	for c, n := range counts {
		if n > bestCount {
			best, bestCount = c, n
		}
	}
	return color.NRGBA{
		R: uint8(best >> 16),
		G: uint8(best >> 8),
		B: uint8(best),
		A: 0xff,
	}
}

// updateStatusBar refreshes the bottom status line.
func (a *App) updateStatusBar() {
	if a.UI.statusLabel == nil {
		return
	}
	if a.session == nil || a.img.Path == "" {
		a.UI.statusLabel.SetText("Open a folder or collection to start.")
		return
	}
	status := fmt.Sprintf("%s  |  %d of %d images", a.img.Path, a.session.Cursor()+1, a.session.Len())
	if a.zoomPanArea != nil {
		status += fmt.Sprintf("  |  Zoom %.0f%%", a.zoomPanArea.CurrentZoom()*100)
	}
	if a.slideshowManager.IsPaused() {
		status += "  |  Paused"
	} else {
		status += fmt.Sprintf("  |  Next in %ds", int(a.slideshowManager.Remaining().Seconds()))
	}
	a.UI.statusLabel.SetText(status)
}

// updateInfoText rebuilds the markdown shown in the info panel.
func (a *App) updateInfoText() {
	if a.UI.infoText == nil {
		return
	}
	if a.img.Path == "" || a.img.Info == nil {
		a.UI.infoText.ParseMarkdown("# Info\n---\nNo image loaded.")
		return
	}
	info := a.img.Info

	exifString := "(not available)"
	if len(info.EXIFData) > 0 {
		keys := make([]string, 0, len(info.EXIFData))
		for k := range info.EXIFData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, "- **%s**: %s\n\n", k, info.EXIFData[k])
		}
		exifString = b.String()
	}

	md := fmt.Sprintf(`## Stats
**File:** %s

**Size:** %d bytes

**Width:** %d px

**Height:** %d px

**Last modified:** %s

---
## EXIF Data
%s
`,
		filepath.Base(a.img.Path),
		info.Size,
		info.Width,
		info.Height,
		info.ModTime.Format("2006-01-02 15:04:05"),
		exifString,
	)
	a.UI.infoText.ParseMarkdown(md)
}

// refreshHistoryList re-renders the history panel and keeps the current
// entry selected.
func (a *App) refreshHistoryList() {
	if a.UI.historyList == nil || a.session == nil {
		return
	}
	a.UI.historyList.Refresh()
	if cursor := a.session.Cursor(); cursor >= 0 {
		a.UI.historyList.Select(cursor)
		a.UI.historyList.ScrollTo(cursor)
	}
}

// refreshNavButtons greys out navigation the session cannot satisfy.
func (a *App) refreshNavButtons() {
	if a.UI.prevAction == nil || a.UI.nextAction == nil {
		return
	}
	if a.session != nil && a.session.CanRetreat() {
		a.UI.prevAction.Enable()
	} else {
		a.UI.prevAction.Disable()
	}
	if a.session != nil && a.session.Len() > 0 {
		a.UI.nextAction.Enable()
	} else {
		a.UI.nextAction.Disable()
	}
	if a.UI.toolBar != nil {
		a.UI.toolBar.Refresh()
	}
}

// refreshPlayIcon swaps the play/pause toolbar icon to match the slideshow
// state.
func (a *App) refreshPlayIcon() {
	if a.UI.pauseAction == nil {
		return
	}
	if a.slideshowManager.IsPaused() {
		a.UI.pauseAction.SetIcon(theme.MediaPlayIcon())
	} else {
		a.UI.pauseAction.SetIcon(theme.MediaPauseIcon())
	}
	if a.UI.toolBar != nil {
		a.UI.toolBar.Refresh()
	}
}
