package imgproc

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage builds a 2x1 image: red on the left, blue on the right.
func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{B: 255, A: 255})
	return img
}

func TestApplyIdentityReturnsSameImage(t *testing.T) {
	img := testImage()
	out := Apply(img, Transform{})
	assert.Equal(t, image.Image(img), out)
	assert.Nil(t, Apply(nil, Transform{FlipH: true}))
}

func TestApplyFlipHorizontal(t *testing.T) {
	out := Apply(testImage(), Transform{FlipH: true})
	r, _, _, _ := out.At(1, 0).RGBA()
	_, _, b, _ := out.At(0, 0).RGBA()
	assert.NotZero(t, r, "red pixel must move to the right")
	assert.NotZero(t, b, "blue pixel must move to the left")
}

func TestApplyFlipVertical(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})

	out := Apply(img, Transform{FlipV: true})
	r, _, _, _ := out.At(0, 1).RGBA()
	_, _, b, _ := out.At(0, 0).RGBA()
	assert.NotZero(t, r)
	assert.NotZero(t, b)
}

func TestApplyGrayscale(t *testing.T) {
	out := Apply(testImage(), Transform{Grayscale: true})
	for x := 0; x < 2; x++ {
		r, g, b, _ := out.At(x, 0).RGBA()
		assert.Equal(t, r, g, "grayscale pixel channels must match")
		assert.Equal(t, g, b, "grayscale pixel channels must match")
	}
}

func TestLoadAndGetInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testImage()))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())

	info, decoded, err := GetInfo(path)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Equal(t, 2, info.Width)
	assert.Equal(t, 1, info.Height)
	assert.Greater(t, info.Size, int64(0))
	assert.Empty(t, info.EXIFData, "PNG without EXIF yields no fields")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Error(t, err)
}
