package domain

import (
	"net/url"
)

// IngestRequest carries the raw inbound HTTP event exactly as the router
// delivered it. Body is the wire payload before any multipart unwrapping;
// when IsBase64 is set the body must be transcoded before the multipart
// decoder sees it.
type IngestRequest struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Body        []byte
	IsBase64    bool
}

// FilePart is a single decoded file part from a multipart body. The filename
// is whatever the client declared and must be sanitized before use.
type FilePart struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ResizeSpec holds validated resize parameters. Instances are produced only
// by the request validator; both dimensions are known to be within bounds
// and the format is a member of the supported set.
type ResizeSpec struct {
	Width  int
	Height int
	Format Format
}

// StoredAsset describes a successfully written object.
type StoredAsset struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	PublicURL   string `json:"url"`
}
