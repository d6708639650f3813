package domain

import "errors"

// Pipeline error taxonomy. Every failure a stage can produce wraps exactly
// one of these sentinels so the handler can map it to a status code with
// errors.Is instead of string matching.
var (
	ErrInvalidContentType = errors.New("invalid content type")
	ErrMissingFile        = errors.New("no file part in multipart body")
	ErrMalformedMultipart = errors.New("malformed multipart body")
	ErrInvalidDimensions  = errors.New("invalid dimensions")
	ErrUnsupportedFormat  = errors.New("unsupported output format")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrDecode             = errors.New("failed to decode image")
	ErrEncode             = errors.New("failed to encode image")
	ErrStorage            = errors.New("storage write failed")
)

// clientErrs are the failures where the request itself is at fault. They are
// never retried and surface as 400.
var clientErrs = []error{
	ErrInvalidContentType,
	ErrMissingFile,
	ErrMalformedMultipart,
	ErrInvalidDimensions,
	ErrUnsupportedFormat,
	ErrPayloadTooLarge,
	ErrDecode,
}

// IsClientError reports whether err belongs to the 400 class.
func IsClientError(err error) bool {
	for _, sentinel := range clientErrs {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
