// Package form handles multipart request body encoding for pin operations.
//
// The pinning endpoint accepts one multipart/form-data request carrying
// any number of "file" fields, each named with its destination path and
// an explicit content type. Encoding is deterministic: parts appear in
// the body in the order they are given.
package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/cactusweb/pinata/errors"
)

// FileField is the form field name the service expects for every file part.
const FileField = "file"

// Part is one named file entry in a pin request body.
type Part struct {
	// Name is the destination path the content is published under
	Name string

	// ContentType is the MIME type declared for the part
	ContentType string

	// Content supplies the part bytes
	Content io.Reader
}

// Metadata is the optional pin metadata encoded alongside the file parts.
type Metadata struct {
	// Name is the display name recorded for the pin
	Name string `json:"name,omitempty"`

	// KeyValues is arbitrary key/value metadata recorded for the pin
	KeyValues map[string]string `json:"keyvalues,omitempty"`
}

// Encode builds the multipart body for a pin request.
// It returns the encoded body and the Content-Type header value carrying
// the boundary. Parts are written in input order.
func Encode(parts []Part, meta *Metadata) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, part := range parts {
		if err := encodePart(writer, part); err != nil {
			return nil, "", err
		}
	}

	if meta != nil && (meta.Name != "" || len(meta.KeyValues) > 0) {
		if err := encodeMetadata(writer, meta); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", errors.NewError("encode", err).
			WithMessage("failed to finalize multipart body")
	}

	return body, writer.FormDataContentType(), nil
}

// encodePart writes a single file part with an explicit content type.
// multipart.Writer.CreateFormFile hardcodes application/octet-stream,
// so the part header is built by hand.
func encodePart(writer *multipart.Writer, part Part) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(
		`form-data; name="%s"; filename="%s"`, FileField, escapeQuotes(part.Name),
	))
	header.Set("Content-Type", part.ContentType)

	dst, err := writer.CreatePart(header)
	if err != nil {
		return errors.NewError("encode", err).WithKey(part.Name)
	}

	if _, err := io.Copy(dst, part.Content); err != nil {
		return errors.NewError("encode", err).
			WithKey(part.Name).
			WithMessage("failed to copy part content")
	}

	return nil
}

// encodeMetadata writes the pinataMetadata JSON field.
func encodeMetadata(writer *multipart.Writer, meta *Metadata) error {
	encoded, err := json.Marshal(meta)
	if err != nil {
		return errors.NewError("encode", err).
			WithMessage("failed to encode pin metadata")
	}

	if err := writer.WriteField("pinataMetadata", string(encoded)); err != nil {
		return errors.NewError("encode", err).
			WithMessage("failed to write pin metadata field")
	}

	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// escapeQuotes escapes a filename for use inside a quoted-string header value.
func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
