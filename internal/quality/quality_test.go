package quality

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridoc/internal/domain"
)

// uniformImage returns a WxH image filled with a single gray level.
func uniformImage(w, h int, level uint8) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	return img
}

// noisyImage returns a WxH image of random pixel noise around a mid gray,
// which carries plenty of Laplacian energy.
func noisyImage(w, h int) image.Image {
	rng := rand.New(rand.NewSource(1))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(64 + rng.Intn(128))
	}
	return img
}

func TestCheck_ResolutionFloorPerDocType(t *testing.T) {
	opts := DefaultOptions()

	ok, msg := Check(uniformImage(599, 400, 128), domain.DocTypePassport, opts)
	assert.False(t, ok)
	assert.Equal(t, "resolution too low (599x400)", msg)

	// The same size clears the lower CIN floor (and then fails on blur, which
	// proves the resolution gate itself passed).
	ok, msg = Check(uniformImage(599, 400, 128), domain.DocTypeCIN, opts)
	assert.False(t, ok)
	assert.Contains(t, msg, "blurry")

	ok, _ = Check(uniformImage(499, 300, 128), domain.DocTypeCIN, opts)
	assert.False(t, ok)
}

func TestCheck_BlurGate(t *testing.T) {
	// A flat image has zero Laplacian variance.
	ok, msg := Check(uniformImage(600, 400, 128), domain.DocTypePassport, DefaultOptions())
	assert.False(t, ok)
	assert.Contains(t, msg, "too blurry")
}

func TestCheck_SharpImagePasses(t *testing.T) {
	ok, msg := Check(noisyImage(600, 400), domain.DocTypePassport, DefaultOptions())
	assert.True(t, ok)
	assert.Equal(t, "image quality acceptable", msg)
}

func TestCheck_BrightnessBounds(t *testing.T) {
	// Relax the blur gate so exposure is the deciding check.
	opts := Options{BlurThreshold: 0, MinBrightness: 30, MaxBrightness: 240}

	ok, msg := Check(uniformImage(600, 400, 10), domain.DocTypePassport, opts)
	assert.False(t, ok)
	assert.Equal(t, "image too dark", msg)

	ok, msg = Check(uniformImage(600, 400, 250), domain.DocTypePassport, opts)
	assert.True(t, ok)
	assert.Equal(t, "image bright, but usable", msg)
}

func TestCheck_UnknownDocTypeUsesDefaultFloor(t *testing.T) {
	ok, msg := Check(uniformImage(599, 400, 128), domain.DocType("other"), DefaultOptions())
	assert.False(t, ok)
	assert.Contains(t, msg, "resolution too low")
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.Set(3, 3, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	require.NoError(t, png.Encode(&buf, src))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = Decode([]byte("not an image"))
	assert.Error(t, err)
}
