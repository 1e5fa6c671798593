package pinata

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/cactusweb/pinata/errors"
	"github.com/cactusweb/pinata/internal/form"
	"github.com/cactusweb/pinata/internal/validation"
	"github.com/cactusweb/pinata/pintypes"
)

// pinResponse is the service's JSON success envelope for pin operations.
type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// PinFiles uploads a set of named file parts to the pinning service in a
// single multipart request. Either every part gets pinned or none does:
// atomicity is a property of the one HTTP exchange.
//
// Each part travels as a "file" form field named with the part's
// destination path and carrying its declared content type. Parts with an
// empty content type get one detected from the name's extension. Part
// order in the request body matches input order, so identical inputs
// produce identical requests.
//
// A completed exchange always yields a PinResult regardless of status
// code; use PinResult.OK to decide success. Errors are returned only for
// invalid input and transport failures.
//
// Errors:
//   - ErrInvalidInput: if parts is empty or a content reader is nil
//   - ErrInvalidPartName: if a destination name is empty or unsafe
//   - ErrConnection: if the request cannot be completed
//
// Example:
//
//	result, err := client.PinFiles(ctx, parts, pinata.WithPinName("cactus 1.2.3"))
//	if err != nil {
//	    return err
//	}
//	if !result.OK() {
//	    return fmt.Errorf("pin rejected: %d", result.StatusCode)
//	}
//	fmt.Printf("pinned as %s\n", result.CID)
func (c *Client) PinFiles(
	ctx context.Context,
	parts []pintypes.FilePart,
	opts ...pintypes.PinOption,
) (*pintypes.PinResult, error) {
	if len(parts) == 0 {
		return nil, errors.NewError("pinFiles", errors.ErrInvalidInput).
			WithMessage("at least one file part is required")
	}

	cfg := &pintypes.PinOptionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	formParts := make([]form.Part, 0, len(parts))
	for _, part := range parts {
		if part.Content == nil {
			return nil, errors.NewError("pinFiles", errors.ErrInvalidInput).
				WithKey(part.Name).
				WithMessage("part content cannot be nil")
		}
		if err := validation.ValidatePartName(part.Name); err != nil {
			return nil, err
		}

		contentType := part.ContentType
		if contentType == "" {
			contentType = contentTypeFromExtension(part.Name)
		}
		if err := validation.ValidateContentType(contentType); err != nil {
			return nil, err
		}

		formParts = append(formParts, form.Part{
			Name:        part.Name,
			ContentType: contentType,
			Content:     part.Content,
		})
	}

	var meta *form.Metadata
	if cfg.Name != "" || len(cfg.Metadata) > 0 {
		meta = &form.Metadata{Name: cfg.Name, KeyValues: cfg.Metadata}
	}

	body, contentType, err := form.Encode(formParts, meta)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()

	resp, err := c.do(ctx, http.MethodPost, c.endpoint+"/pinning/pinFileToIPFS", contentType, body.Bytes())
	if err != nil {
		return nil, errors.NewError("pinFiles", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewError("pinFiles", err).
			WithMessage("failed to read response body")
	}

	result := &pintypes.PinResult{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Duration:   time.Since(startTime),
	}

	if resp.StatusCode == http.StatusOK {
		var envelope pinResponse
		// The body is surfaced raw either way; the envelope is best effort.
		if jsonErr := json.Unmarshal(respBody, &envelope); jsonErr == nil {
			result.CID = envelope.IpfsHash
			result.PinSize = envelope.PinSize
			result.Timestamp = envelope.Timestamp
		}
	}

	return result, nil
}

// PinFile pins a single file from the client's filesystem.
// The file is opened for the duration of the request and closed before
// returning. When name is empty, the file's basename is used. The
// content type is sniffed from the content with an extension-based
// fallback.
//
// Errors:
//   - ErrInvalidInput: if the path is empty or points to a directory
//   - ErrInvalidPartName: if the destination name is unsafe
//   - ErrConnection: if the request cannot be completed
//   - Filesystem errors if the file cannot be opened
func (c *Client) PinFile(
	ctx context.Context,
	name, filePath string,
	opts ...pintypes.PinOption,
) (*pintypes.PinResult, error) {
	if filePath == "" {
		return nil, errors.NewError("pinFile", errors.ErrInvalidInput).
			WithMessage("file path cannot be empty")
	}

	info, err := c.fs.Stat(filePath)
	if err != nil {
		return nil, errors.NewError("pinFile", err).WithKey(filePath)
	}
	if info.IsDir() {
		return nil, errors.NewError("pinFile", errors.ErrInvalidInput).
			WithKey(filePath).
			WithMessage("file path points to a directory, not a file")
	}

	file, err := c.fs.Open(filePath)
	if err != nil {
		return nil, errors.NewError("pinFile", err).WithKey(filePath)
	}
	defer file.Close()

	if name == "" {
		name = path.Base(filepath.ToSlash(filePath))
	}

	return c.PinFiles(ctx, []pintypes.FilePart{{
		Name:        name,
		Content:     file,
		ContentType: c.detectContentType(filePath),
	}}, opts...)
}

// TestAuthentication verifies the configured credentials against the
// service without pinning anything. It returns nil when the service
// accepts the key pair and ErrInvalidCredentials when it rejects it.
func (c *Client) TestAuthentication(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, c.endpoint+"/data/testAuthentication", "", nil)
	if err != nil {
		return errors.NewError("testAuthentication", err)
	}
	defer resp.Body.Close()

	if err := errors.FromStatus(resp.StatusCode); err != nil {
		return errors.NewError("testAuthentication", err)
	}
	return nil
}

// Unpin removes an existing pin addressed by its content identifier.
//
// Errors:
//   - ErrInvalidInput: if the CID is empty or malformed
//   - ErrNotFound: if no pin exists for the CID
//   - ErrConnection: if the request cannot be completed
func (c *Client) Unpin(ctx context.Context, cid string) error {
	if err := validation.ValidateCID(cid); err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodDelete, c.endpoint+"/pinning/unpin/"+cid, "", nil)
	if err != nil {
		return errors.NewError("unpin", err).WithKey(cid)
	}
	defer resp.Body.Close()

	if err := errors.FromStatus(resp.StatusCode); err != nil {
		return errors.NewError("unpin", err).WithKey(cid)
	}
	return nil
}

// detectContentType determines the content type using mimetype where
// possible, falling back to extension-based lookup when the path cannot
// be read.
func (c *Client) detectContentType(filePath string) string {
	info, err := c.fs.Stat(filePath)
	if err != nil || info.IsDir() {
		return contentTypeFromExtension(filePath)
	}

	file, err := c.fs.Open(filePath)
	if err != nil {
		return contentTypeFromExtension(filePath)
	}
	defer file.Close()

	// First 512 bytes are enough for content sniffing.
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	if n > 0 {
		if mt := mimetype.Detect(buf[:n]); mt != nil {
			return mt.String()
		}
	}

	return contentTypeFromExtension(filePath)
}

// contentTypeFromExtension detects content type from a file extension.
func contentTypeFromExtension(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}

	return DefaultContentType
}
