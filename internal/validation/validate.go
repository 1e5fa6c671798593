// Package validation provides centralized input validation logic.
// This includes destination name validation, content type validation,
// and CID checks.
//
// All user inputs are validated before being sent to the pinning service
// to catch configuration mistakes before any network traffic happens.
package validation

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/cactusweb/pinata/errors"
)

// maxPartNameLength bounds destination names. The service itself accepts
// longer names; the bound exists to catch obviously broken inputs.
const maxPartNameLength = 1024

// mimePattern matches a type/subtype MIME value with optional parameters.
var mimePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-+.]*\/[a-zA-Z0-9][a-zA-Z0-9\-+.]*(\s*;.*)?$`)

// ValidatePartName validates a destination name for a pinned file.
// This includes preventing path traversal and ensuring valid characters.
func ValidatePartName(name string) error {
	if name == "" {
		return errors.NewError("validatePartName", errors.ErrInvalidPartName).
			WithMessage("destination name cannot be empty")
	}

	if hasPathTraversal(name) {
		return errors.NewError("validatePartName", errors.ErrInvalidPartName).
			WithKey(name).
			WithMessage("destination name cannot contain path traversal sequences")
	}

	if len(name) > maxPartNameLength {
		return errors.NewError("validatePartName", errors.ErrInvalidPartName).
			WithKey(name).
			WithMessage("destination name cannot exceed 1024 characters")
	}

	if hasControlCharacters(name) {
		return errors.NewError("validatePartName", errors.ErrInvalidPartName).
			WithKey(name).
			WithMessage("destination name cannot contain control characters")
	}

	return nil
}

// ValidateContentType validates that a content type is a well-formed MIME type.
func ValidateContentType(contentType string) error {
	if contentType == "" {
		return nil // empty content type is defaulted by the caller
	}

	if !mimePattern.MatchString(contentType) {
		return errors.NewError("validateContentType", errors.ErrInvalidInput).
			WithMessage("content type must be a valid MIME type")
	}

	return nil
}

// ValidateCID validates a content identifier used to address an existing pin.
func ValidateCID(cid string) error {
	if cid == "" {
		return errors.NewError("validateCID", errors.ErrInvalidInput).
			WithMessage("CID cannot be empty")
	}

	for _, char := range cid {
		if unicode.IsSpace(char) || char == '/' {
			return errors.NewError("validateCID", errors.ErrInvalidInput).
				WithKey(cid).
				WithMessage("CID cannot contain path separators or whitespace")
		}
	}

	return nil
}

// hasPathTraversal checks for path traversal attempts in destination names
func hasPathTraversal(name string) bool {
	if strings.Contains(name, "..") {
		return true
	}

	cleaned := filepath.Clean(name)

	if strings.HasPrefix(cleaned, "..") {
		return true
	}

	if strings.HasPrefix(cleaned, "/") {
		return true
	}

	// Windows-style absolute paths
	if len(cleaned) >= 3 && cleaned[1] == ':' && (cleaned[2] == '\\' || cleaned[2] == '/') {
		return true
	}

	return false
}

// hasControlCharacters checks for control characters in the name
func hasControlCharacters(name string) bool {
	for _, char := range name {
		if unicode.IsControl(char) {
			return true
		}
	}
	return false
}
