package domain

// Format is an output image format from the closed supported set.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// DefaultFormat is used when the client does not name one.
const DefaultFormat = FormatWebP

// formats maps accepted spellings to the canonical format. The table is the
// whole contract: nothing outside it is ever encoded, regardless of what the
// underlying codecs could produce.
var formats = map[string]Format{
	"jpeg": FormatJPEG,
	"jpg":  FormatJPEG,
	"png":  FormatPNG,
	"webp": FormatWebP,
}

var contentTypes = map[Format]string{
	FormatJPEG: "image/jpeg",
	FormatPNG:  "image/png",
	FormatWebP: "image/webp",
}

var extensions = map[Format]string{
	FormatJPEG: "jpg",
	FormatPNG:  "png",
	FormatWebP: "webp",
}

// ParseFormat resolves a client-supplied format name. The empty string
// resolves to DefaultFormat.
func ParseFormat(name string) (Format, bool) {
	if name == "" {
		return DefaultFormat, true
	}
	f, ok := formats[name]
	return f, ok
}

// ContentType returns the MIME type stored alongside the object.
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Extension returns the storage key extension, without the dot.
func (f Format) Extension() string {
	return extensions[f]
}
