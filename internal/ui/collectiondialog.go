package ui

import (
	"errors"
	"fmt"
	"strings"

	"glimpse/internal/collection"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showCollectionsDialog lists the saved collections and lets the user open,
// create or delete one.
func (a *App) showCollectionsDialog() {
	all, err := a.collections.All()
	if err != nil {
		dialog.ShowError(err, a.UI.MainWin)
		return
	}

	selected := -1
	list := widget.NewList(
		func() int { return len(all) },
		func() fyne.CanvasObject { return widget.NewLabel("collection name") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(all) {
				return
			}
			c := all[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s (%d folders, %d images)", c.Name, len(c.Paths), c.ImageCount))
		},
	)
	list.OnSelected = func(id widget.ListItemID) { selected = id }

	var d dialog.Dialog

	openBtn := widget.NewButton("Open", func() {
		if selected < 0 || selected >= len(all) {
			return
		}
		c := all[selected]
		d.Hide()
		a.openCollection(c)
	})
	saveBtn := widget.NewButton("Save Current As...", func() {
		if len(a.currentRoots) == 0 {
			dialog.ShowInformation("Collections", "Open a folder first, then save it as a collection.", a.UI.MainWin)
			return
		}
		d.Hide()
		a.promptSaveCollection()
	})
	deleteBtn := widget.NewButton("Delete", func() {
		if selected < 0 || selected >= len(all) {
			return
		}
		c := all[selected]
		dialog.ShowConfirm("Delete Collection",
			fmt.Sprintf("Delete collection %q? The image files themselves are not touched.", c.Name),
			func(confirm bool) {
				if !confirm {
					return
				}
				if err := a.collections.Delete(c.Name); err != nil {
					dialog.ShowError(err, a.UI.MainWin)
					return
				}
				d.Hide()
				a.showCollectionsDialog() // rebuild with the fresh list
			}, a.UI.MainWin)
	})

	content := container.NewBorder(
		nil,
		container.NewHBox(openBtn, saveBtn, deleteBtn),
		nil, nil,
		list,
	)
	d = dialog.NewCustom("Collections", "Close", content, a.UI.MainWin)
	d.Resize(fyne.NewSize(420, 360))
	d.Show()
}

// promptSaveCollection names and stores the roots of the current session as
// a new collection.
func (a *App) promptSaveCollection() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Collection name")
	pathsLabel := widget.NewLabel(strings.Join(a.currentRoots, "\n"))

	dialog.ShowForm("Save Collection", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", entry),
			widget.NewFormItem("Folders", pathsLabel),
		},
		func(confirm bool) {
			if !confirm {
				return
			}
			c, err := a.collections.Create(entry.Text, a.currentRoots)
			if err != nil {
				if errors.Is(err, collection.ErrExists) {
					err = fmt.Errorf("a collection named %q already exists", entry.Text)
				}
				dialog.ShowError(err, a.UI.MainWin)
				return
			}
			if a.session != nil {
				c.ImageCount = a.session.Len()
			}
			c.MarkUsed()
			if err := a.collections.Save(c); err != nil {
				dialog.ShowError(err, a.UI.MainWin)
				return
			}
			if err := a.prefs.SetLastCollection(c.Name); err != nil {
				fyne.LogError("Could not persist last collection", err)
			}
		}, a.UI.MainWin)
}
