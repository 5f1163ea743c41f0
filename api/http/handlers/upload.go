package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/artem13815/jobboard/pkg/resume"
)

// readUpload reads at most resume.MaxUploadBytes of an uploaded file.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > resume.MaxUploadBytes {
		return nil, resume.ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return readAtMost(f, resume.MaxUploadBytes)
}

func readAtMost(f io.Reader, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, resume.ErrTooLarge
	}
	return b, nil
}
