package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom        float32 = 0.1
	maxZoom        float32 = 10.0
	zoomScrollStep float32 = 0.1
)

// ZoomPanArea is a custom widget displaying an image with scroll-wheel zoom
// and drag panning.
type ZoomPanArea struct {
	widget.BaseWidget

	img    image.Image
	raster *canvas.Raster

	zoomFactor float32
	panOffset  fyne.Position

	isPanning    bool
	lastMousePos fyne.Position

	// OnInteraction fires when the user zooms or starts panning, so the
	// slideshow can pause while the user is inspecting an image.
	OnInteraction func()
}

// NewZoomPanArea creates the widget. img may be nil.
func NewZoomPanArea(img image.Image, onInteraction func()) *ZoomPanArea {
	z := &ZoomPanArea{
		img:           img,
		zoomFactor:    1.0,
		OnInteraction: onInteraction,
	}
	z.raster = canvas.NewRaster(z.draw)
	z.ExtendBaseWidget(z)
	if img != nil {
		z.Reset()
	}
	return z
}

// SetImage swaps the displayed image and refits it to the view.
func (z *ZoomPanArea) SetImage(img image.Image) {
	z.img = img
	z.Reset()
}

// Reset fits the image to the view and centers it.
func (z *ZoomPanArea) Reset() {
	z.panOffset = fyne.Position{}
	z.zoomFactor = 1.0

	if z.img != nil && z.Size().Width > 0 && z.Size().Height > 0 {
		b := z.img.Bounds()
		imgW, imgH := float32(b.Dx()), float32(b.Dy())
		viewW, viewH := z.Size().Width, z.Size().Height

		z.zoomFactor = viewW / imgW
		if h := viewH / imgH; h < z.zoomFactor {
			z.zoomFactor = h
		}
		z.panOffset.X = (viewW - imgW*z.zoomFactor) / 2
		z.panOffset.Y = (viewH - imgH*z.zoomFactor) / 2
	}
	z.Refresh()
}

// ShowFullSize displays the image at its native 1:1 pixel scale, centered.
func (z *ZoomPanArea) ShowFullSize() {
	if z.img == nil {
		return
	}
	b := z.img.Bounds()
	z.zoomFactor = 1.0
	z.panOffset.X = (z.Size().Width - float32(b.Dx())) / 2
	z.panOffset.Y = (z.Size().Height - float32(b.Dy())) / 2
	z.Refresh()
}

// CurrentZoom returns the active zoom factor.
func (z *ZoomPanArea) CurrentZoom() float32 {
	return z.zoomFactor
}

// Zoom applies one zoom step toward the view center. Positive steps zoom in.
func (z *ZoomPanArea) Zoom(steps int) {
	if steps == 0 {
		return
	}
	factor := float32(1.0)
	for i := 0; i < steps; i++ {
		factor *= 1.0 + zoomScrollStep
	}
	for i := 0; i > steps; i-- {
		factor /= 1.0 + zoomScrollStep
	}
	z.zoomAt(z.Size().Width/2, z.Size().Height/2, factor)
}

// zoomAt multiplies the zoom factor, keeping the view point (x, y) fixed.
func (z *ZoomPanArea) zoomAt(x, y, factor float32) {
	imgX := (x - z.panOffset.X) / z.zoomFactor
	imgY := (y - z.panOffset.Y) / z.zoomFactor

	z.zoomFactor *= factor
	if z.zoomFactor < minZoom {
		z.zoomFactor = minZoom
	}
	if z.zoomFactor > maxZoom {
		z.zoomFactor = maxZoom
	}

	z.panOffset.X = x - imgX*z.zoomFactor
	z.panOffset.Y = y - imgY*z.zoomFactor
	z.Refresh()
}

// draw renders the visible portion of the image into the raster buffer.
func (z *ZoomPanArea) draw(w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if z.img == nil || w <= 0 || h <= 0 {
		return dst
	}

	src := z.img.Bounds()
	inv := 1.0 / z.zoomFactor
	for dy := 0; dy < h; dy++ {
		sy := (float32(dy) - z.panOffset.Y) * inv
		if sy < float32(src.Min.Y) || sy >= float32(src.Max.Y) {
			continue
		}
		for dx := 0; dx < w; dx++ {
			sx := (float32(dx) - z.panOffset.X) * inv
			if sx < float32(src.Min.X) || sx >= float32(src.Max.X) {
				continue
			}
			dst.Set(dx, dy, z.img.At(int(sx), int(sy)))
		}
	}
	return dst
}

// CreateRenderer is a Fyne lifecycle method.
func (z *ZoomPanArea) CreateRenderer() fyne.WidgetRenderer {
	return &zoomPanAreaRenderer{z: z}
}

// Scrolled handles mouse wheel zoom toward the view center.
func (z *ZoomPanArea) Scrolled(ev *fyne.ScrollEvent) {
	if z.OnInteraction != nil {
		z.OnInteraction()
	}
	factor := 1.0 + zoomScrollStep
	if ev.Scrolled.DY < 0 {
		factor = 1.0 / factor
	}
	z.zoomAt(z.Size().Width/2, z.Size().Height/2, factor)
}

// MouseDown starts panning.
func (z *ZoomPanArea) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	if z.OnInteraction != nil {
		z.OnInteraction()
	}
	z.isPanning = true
	z.lastMousePos = ev.Position
}

// MouseUp stops panning.
func (z *ZoomPanArea) MouseUp(_ *desktop.MouseEvent) {
	z.isPanning = false
}

// Dragged pans the image while the primary button is held.
func (z *ZoomPanArea) Dragged(ev *fyne.DragEvent) {
	if !z.isPanning {
		return
	}
	delta := ev.Position.Subtract(z.lastMousePos)
	z.panOffset = z.panOffset.Add(delta)
	z.lastMousePos = ev.Position
	z.Refresh()
}

// DragEnd finalizes panning.
func (z *ZoomPanArea) DragEnd() {
	z.isPanning = false
}

type zoomPanAreaRenderer struct{ z *ZoomPanArea }

func (r *zoomPanAreaRenderer) Layout(size fyne.Size)        { r.z.raster.Resize(size) }
func (r *zoomPanAreaRenderer) MinSize() fyne.Size           { return fyne.NewSize(100, 100) }
func (r *zoomPanAreaRenderer) Refresh()                     { canvas.Refresh(r.z.raster) }
func (r *zoomPanAreaRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.z.raster} }
func (r *zoomPanAreaRenderer) Destroy()                     {}

var _ fyne.Widget = (*ZoomPanArea)(nil)
var _ fyne.Scrollable = (*ZoomPanArea)(nil)
var _ fyne.Draggable = (*ZoomPanArea)(nil)
