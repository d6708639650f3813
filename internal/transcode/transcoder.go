package transcode

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	_ "image/gif" // Register GIF format decoder

	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"imgresize/internal/domain"
)

// Transcoder decodes an image payload, resizes it and re-encodes it in the
// requested output format. It is pure and safe for concurrent use.
type Transcoder struct {
	jpegQuality int
	webpQuality float32
}

func New(jpegQuality int, webpQuality float32) *Transcoder {
	return &Transcoder{
		jpegQuality: jpegQuality,
		webpQuality: webpQuality,
	}
}

// Transcode produces bytes sized exactly to spec.Width x spec.Height.
// Output dimensions are exact and non-aspect-preserving: the source is
// stretched to the requested box, never cropped or letterboxed. Failures
// are terminal; the input bytes are what they are and a retry changes
// nothing.
func (t *Transcoder) Transcode(payload []byte, spec domain.ResizeSpec) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	resized := imaging.Resize(img, spec.Width, spec.Height, imaging.Lanczos)

	var buf bytes.Buffer
	switch spec.Format {
	case domain.FormatJPEG:
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: t.jpegQuality})
	case domain.FormatPNG:
		err = png.Encode(&buf, resized)
	case domain.FormatWebP:
		var opts *encoder.Options
		opts, err = encoder.NewLossyEncoderOptions(encoder.PresetDefault, t.webpQuality)
		if err == nil {
			err = webp.Encode(&buf, resized, opts)
		}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, spec.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrEncode, spec.Format, err)
	}

	return buf.Bytes(), nil
}
