// Package imgproc applies display transforms to decoded images and extracts
// file metadata.
package imgproc

import (
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Transform describes the display-time adjustments applied to an image.
type Transform struct {
	FlipH     bool
	FlipV     bool
	Grayscale bool
}

// IsIdentity reports whether the transform leaves the image untouched.
func (t Transform) IsIdentity() bool {
	return !t.FlipH && !t.FlipV && !t.Grayscale
}

// Apply returns the transformed image. The source image is never modified;
// an identity transform returns it unchanged.
func Apply(img image.Image, t Transform) image.Image {
	if img == nil || t.IsIdentity() {
		return img
	}
	out := img
	if t.Grayscale {
		out = imaging.Grayscale(out)
	}
	if t.FlipH {
		out = imaging.FlipH(out)
	}
	if t.FlipV {
		out = imaging.FlipV(out)
	}
	return out
}

// Load decodes the image at path.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Info holds metadata about an image file.
type Info struct {
	Width    int
	Height   int
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// exifFields are the EXIF fields surfaced in the info panel.
var exifFields = []string{
	"DateTime", "Model", "Make", "ExposureTime", "FNumber", "ISOSpeedRatings", "FocalLength",
}

// GetEXIF extracts a few common EXIF fields. Images without EXIF data yield
// a nil map and no error.
func GetEXIF(r io.Reader) map[string]string {
	x, err := exif.Decode(r)
	if err != nil {
		return nil // not all images carry EXIF; not an error
	}
	result := make(map[string]string)
	for _, field := range exifFields {
		tag, err := x.Get(exif.FieldName(field))
		if err == nil && tag != nil {
			result[field] = tag.String()
		}
	}
	return result
}

// GetInfo returns size, dimensions, mod time and EXIF data for path, along
// with the decoded image.
func GetInfo(path string) (*Info, image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image for info: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat image file: %w", err)
	}

	exifData := GetEXIF(f)

	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("failed to seek in image file: %w", err)
	}
	img, err := imaging.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image for info: %w", err)
	}

	bounds := img.Bounds()
	return &Info{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Size:     fi.Size(),
		ModTime:  fi.ModTime(),
		EXIFData: exifData,
	}, img, nil
}
