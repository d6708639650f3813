package transcode

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgresize/internal/domain"
)

func newTranscoder() *Transcoder {
	return New(85, 80)
}

// encodePNG renders a solid-color source image of the given size.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestTranscode_PNGToJPEG(t *testing.T) {
	src := encodePNG(t, 100, 80)

	out, err := newTranscoder().Transcode(src, domain.ResizeSpec{Width: 50, Height: 40, Format: domain.FormatJPEG})
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}

func TestTranscode_JPEGToPNG(t *testing.T) {
	src := encodeJPEG(t, 64, 64)

	out, err := newTranscoder().Transcode(src, domain.ResizeSpec{Width: 32, Height: 16, Format: domain.FormatPNG})
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestTranscode_StretchesToExactBox(t *testing.T) {
	// A 1000x800 source resized to a square must stretch, not crop.
	src := encodePNG(t, 1000, 800)

	out, err := newTranscoder().Transcode(src, domain.ResizeSpec{Width: 200, Height: 200, Format: domain.FormatPNG})
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestTranscode_Upscale(t *testing.T) {
	src := encodePNG(t, 10, 10)

	out, err := newTranscoder().Transcode(src, domain.ResizeSpec{Width: 40, Height: 30, Format: domain.FormatPNG})
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestTranscode_WebPOutput(t *testing.T) {
	src := encodePNG(t, 60, 60)

	out, err := newTranscoder().Transcode(src, domain.ResizeSpec{Width: 30, Height: 30, Format: domain.FormatWebP})
	require.NoError(t, err)

	// WebP rides a RIFF container.
	require.GreaterOrEqual(t, len(out), 12)
	assert.Equal(t, []byte("RIFF"), out[:4])
	assert.Equal(t, []byte("WEBP"), out[8:12])
}

func TestTranscode_CorruptPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"empty", nil},
		{"text", []byte("definitely not an image")},
		{"truncated png", encodePNG(t, 20, 20)[:10]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTranscoder().Transcode(tt.payload, domain.ResizeSpec{Width: 50, Height: 50, Format: domain.FormatPNG})
			assert.ErrorIs(t, err, domain.ErrDecode)
		})
	}
}

func TestTranscode_UnknownFormat(t *testing.T) {
	src := encodePNG(t, 20, 20)

	_, err := newTranscoder().Transcode(src, domain.ResizeSpec{Width: 10, Height: 10, Format: domain.Format("bmp")})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
