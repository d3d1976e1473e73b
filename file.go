package renamed

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileUpload describes the document handed to an upload operation.
// Exactly one of Path or Reader must be provided. Filename overrides the
// name derived from Path and is required with Reader, since the API uses
// the extension to pick the multipart Content-Type.
type FileUpload struct {
	Path     string
	Reader   io.Reader
	Filename string

	// Optional validation; when set to >0, files larger than this are rejected.
	MaxBytes int64
}

// File is a convenience constructor for a path-based upload.
func File(path string) FileUpload {
	return FileUpload{Path: path}
}

// FileFromReader is a convenience constructor for a reader-based upload.
func FileFromReader(r io.Reader, filename string) FileUpload {
	return FileUpload{Reader: r, Filename: filename}
}

// filename returns the effective filename.
func (f FileUpload) filename() string {
	if f.Filename != "" {
		return f.Filename
	}
	if f.Path != "" {
		return filepath.Base(f.Path)
	}
	return "upload"
}

// read returns the effective filename and the full file content. Uploads
// are sent as replayable byte bodies so the retry loop can resend them.
func (f FileUpload) read() (string, []byte, error) {
	switch {
	case f.Reader != nil:
		if f.Filename == "" {
			return "", nil, fmt.Errorf("file upload from a reader requires Filename")
		}
		var content []byte
		var err error
		if f.MaxBytes > 0 {
			content, err = io.ReadAll(io.LimitReader(f.Reader, f.MaxBytes+1))
			if err == nil && int64(len(content)) > f.MaxBytes {
				return "", nil, fmt.Errorf("upload %s exceeds max size of %d bytes", f.Filename, f.MaxBytes)
			}
		} else {
			content, err = io.ReadAll(f.Reader)
		}
		if err != nil {
			return "", nil, fmt.Errorf("read upload %s: %w", f.Filename, err)
		}
		if len(content) == 0 {
			return "", nil, fmt.Errorf("upload %s is empty", f.Filename)
		}
		return f.filename(), content, nil

	case f.Path != "":
		// Open first to avoid a TOCTOU race between Stat and Open.
		file, err := os.Open(f.Path)
		if err != nil {
			return "", nil, fmt.Errorf("open file %s: %w", f.Path, err)
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			return "", nil, fmt.Errorf("stat file %s: %w", f.Path, err)
		}
		if info.IsDir() {
			return "", nil, fmt.Errorf("file upload requires a file, got directory: %s", f.Path)
		}
		if info.Size() == 0 {
			return "", nil, fmt.Errorf("file %s is empty", f.Path)
		}
		if f.MaxBytes > 0 && info.Size() > f.MaxBytes {
			return "", nil, fmt.Errorf("file %s exceeds max size of %d bytes", f.Path, f.MaxBytes)
		}

		content, err := io.ReadAll(file)
		if err != nil {
			return "", nil, fmt.Errorf("read file %s: %w", f.Path, err)
		}
		return f.filename(), content, nil

	default:
		return "", nil, fmt.Errorf("file upload requires Path or Reader")
	}
}
