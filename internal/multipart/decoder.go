package multipart

import (
	"bytes"
	"errors"
	"mime"
	"strings"
)

var (
	// ErrMissingBoundary is returned when the Content-Type has no boundary.
	ErrMissingBoundary = errors.New("multipart boundary is missing")

	// ErrMissingFilename is returned for a part without filename attribute.
	ErrMissingFilename = errors.New("multipart part has no filename")

	// ErrMalformedPart is returned for a part without header/body separator.
	ErrMalformedPart = errors.New("multipart part is malformed")

	// ErrNoParts is returned when the body holds no part at all.
	ErrNoParts = errors.New("multipart body has no parts")

	// ErrBodyTooLarge is returned when the body exceeds the decoder limit.
	ErrBodyTooLarge = errors.New("multipart body is too large")
)

const (
	mediaTypeFormData = "multipart/form-data"
	dispositionHeader = "content-disposition"
)

var (
	crlf      = []byte("\r\n")
	headerEnd = []byte("\r\n\r\n")
)

// Part is one uploaded file.
type Part struct {
	FieldName string
	Filename  string
	Data      []byte
}

// Decoder splits multipart bodies. The zero value has no size limit.
type Decoder struct {
	// MaxBodySize rejects larger bodies with ErrBodyTooLarge when > 0.
	MaxBodySize int
}

// BoundaryFromContentType returns the boundary parameter of a
// multipart/form-data Content-Type header value.
func BoundaryFromContentType(contentType string) ([]byte, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != mediaTypeFormData || params["boundary"] == "" {
		return nil, ErrMissingBoundary
	}

	return []byte(params["boundary"]), nil
}

// Decode returns the file parts of body in wire order.
func (d Decoder) Decode(body, boundary []byte) ([]Part, error) {
	if len(boundary) == 0 {
		return nil, ErrMissingBoundary
	}

	if d.MaxBodySize > 0 && len(body) > d.MaxBodySize {
		return nil, ErrBodyTooLarge
	}

	delimiter := append([]byte("--"), boundary...)

	var parts []Part

	for _, segment := range bytes.Split(body, delimiter) {
		part, ok, err := decodeSegment(segment)
		if err != nil {
			return nil, err
		}

		if ok {
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 {
		return nil, ErrNoParts
	}

	return parts, nil
}

// Decode decodes body with a Decoder without size limit.
func Decode(body, boundary []byte) ([]Part, error) {
	return Decoder{}.Decode(body, boundary)
}

// decodeSegment returns ok=false for framing segments that carry no
// Content-Disposition header.
func decodeSegment(segment []byte) (Part, bool, error) {
	// the line break that ends the delimiter line belongs to the framing
	segment = bytes.TrimPrefix(segment, crlf)

	header, data, found := bytes.Cut(segment, headerEnd)
	if !found {
		if hasDisposition(segment) {
			return Part{}, false, ErrMalformedPart
		}

		return Part{}, false, nil
	}

	if !hasDisposition(header) {
		return Part{}, false, nil
	}

	data = bytes.TrimSuffix(data, crlf)

	for _, line := range strings.Split(string(header), "\r\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), dispositionHeader) {
			continue
		}

		_, params, err := mime.ParseMediaType(strings.TrimSpace(value))
		if err != nil {
			return Part{}, false, ErrMalformedPart
		}

		if params["filename"] == "" {
			return Part{}, false, ErrMissingFilename
		}

		return Part{
			FieldName: params["name"],
			Filename:  params["filename"],
			Data:      data,
		}, true, nil
	}

	// the marker is there but not as a header line of its own
	return Part{}, false, ErrMalformedPart
}

func hasDisposition(b []byte) bool {
	return bytes.Contains(bytes.ToLower(b), []byte(dispositionHeader))
}
