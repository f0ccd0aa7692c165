package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

var (
	// ImageConstraints covers avatar uploads
	ImageConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/webp": true,
		},
		AllowedExtensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".webp": true,
		},
		MaxSize: 5 << 20, // 5MB
	}

	// CSVConstraints covers territory boundary uploads for bulk geocoding
	CSVConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"text/csv":        true,
			"text/plain":      true,
			"application/csv": true,
		},
		AllowedExtensions: map[string]bool{
			".csv": true,
		},
		MaxSize: 20 << 20, // 20MB
	}
)

// ValidateFile validates an upload against one or more constraint sets.
// The file must match at least one set.
func ValidateFile(header *multipart.FileHeader, constraints ...FileConstraints) error {
	if len(constraints) == 0 {
		return fmt.Errorf("no file constraints provided")
	}

	var lastErr error
	for _, constraint := range constraints {
		err := validateAgainstConstraint(header, constraint)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	return lastErr
}

func validateAgainstConstraint(header *multipart.FileHeader, c FileConstraints) error {
	if header.Size > c.MaxSize {
		return fmt.Errorf("file is too large (max %d bytes)", c.MaxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !c.AllowedExtensions[ext] {
		return fmt.Errorf("file extension %q is not allowed", ext)
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Sniff content type from the first 512 bytes rather than trusting the
	// client-provided header
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}

	contentType := http.DetectContentType(buf[:n])
	base := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !c.AllowedMimeTypes[base] {
		return fmt.Errorf("file type %q is not allowed", base)
	}

	return nil
}
