// Package multipart extracts the file part from a raw multipart/form-data
// body. It deliberately works over the complete byte buffer instead of a
// streaming reader so that every failure path is an enumerable error value
// testable without a live HTTP stack.
package multipart

import (
	"bufio"
	"bytes"
	"fmt"
	"mime"
	"net/textproto"
	"strings"

	"imgresize/internal/domain"
)

var (
	headerSep = []byte("\r\n\r\n")
	dashes    = []byte("--")
)

// Boundary extracts the boundary attribute from a Content-Type header.
// The header must declare multipart/form-data and carry a boundary.
func Boundary(contentType string) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidContentType, contentType)
	}
	if !strings.HasPrefix(mediaType, "multipart/form-data") {
		return "", fmt.Errorf("%w: expected multipart/form-data, got %q", domain.ErrInvalidContentType, mediaType)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return "", fmt.Errorf("%w: missing boundary attribute", domain.ErrInvalidContentType)
	}
	return boundary, nil
}

// Decode splits body on the boundary markers and returns the first part
// that declares a non-empty filename. Plain form fields and any additional
// file parts are recognized and skipped.
func Decode(body []byte, boundary string) (*domain.FilePart, error) {
	delim := []byte("--" + boundary)
	closing := []byte("--" + boundary + "--")

	if !bytes.Contains(body, closing) {
		return nil, fmt.Errorf("%w: no closing boundary %q", domain.ErrMalformedMultipart, string(closing))
	}

	rest := body
	i := bytes.Index(rest, delim)
	if i < 0 {
		return nil, fmt.Errorf("%w: no opening boundary %q", domain.ErrMalformedMultipart, string(delim))
	}
	rest = rest[i+len(delim):]

	for {
		if bytes.HasPrefix(rest, dashes) {
			// Closing marker reached without a usable part.
			return nil, domain.ErrMissingFile
		}

		// Skip the line break (and any transport padding) after the marker.
		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			return nil, fmt.Errorf("%w: truncated after boundary", domain.ErrMalformedMultipart)
		}
		rest = rest[nl+1:]

		next := bytes.Index(rest, delim)
		if next < 0 {
			return nil, fmt.Errorf("%w: unterminated part", domain.ErrMalformedMultipart)
		}

		part, err := parsePart(rest[:next])
		if err != nil {
			return nil, err
		}
		if part != nil {
			return part, nil
		}
		rest = rest[next+len(delim):]
	}
}

// parsePart splits one part into headers and payload. It returns (nil, nil)
// for parts without a filename so the caller can keep scanning.
func parsePart(raw []byte) (*domain.FilePart, error) {
	headerEnd, sepLen := bytes.Index(raw, headerSep), len(headerSep)
	if headerEnd < 0 {
		headerEnd, sepLen = bytes.Index(raw, []byte("\n\n")), 2
	}
	if headerEnd < 0 {
		return nil, fmt.Errorf("%w: part without header delimiter", domain.ErrMalformedMultipart)
	}

	// Copy the header block before terminating it; the slice aliases raw and
	// appending in place would clobber the payload bytes.
	hdr := make([]byte, 0, headerEnd+len(headerSep))
	hdr = append(hdr, raw[:headerEnd]...)
	hdr = append(hdr, headerSep...)

	mimeHeader, err := textproto.NewReader(bufio.NewReader(bytes.NewReader(hdr))).ReadMIMEHeader()
	if err != nil {
		return nil, fmt.Errorf("%w: bad part headers: %v", domain.ErrMalformedMultipart, err)
	}

	_, params, err := mime.ParseMediaType(mimeHeader.Get("Content-Disposition"))
	if err != nil {
		return nil, fmt.Errorf("%w: bad Content-Disposition: %v", domain.ErrMalformedMultipart, err)
	}
	filename := params["filename"]
	if filename == "" {
		return nil, nil
	}

	payload := raw[headerEnd+sepLen:]
	// The line break before the next boundary belongs to the boundary, not
	// the payload.
	payload = bytes.TrimSuffix(payload, []byte("\n"))
	payload = bytes.TrimSuffix(payload, []byte("\r"))

	return &domain.FilePart{
		Filename:    filename,
		ContentType: mimeHeader.Get("Content-Type"),
		Payload:     payload,
	}, nil
}
