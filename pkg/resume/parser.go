package resume

import (
	"bytes"
	"path/filepath"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// MaxUploadBytes limits the resume file read into memory.
const MaxUploadBytes = 15 << 20 // 15MB

var pdfMagic = []byte("%PDF-")

// ValidatePDF checks that data is a readable PDF with at least one page.
// Text is not extracted: the analysis service does that.
func ValidatePDF(filename string, data []byte) error {
	if len(data) == 0 {
		return ErrFileRequired
	}
	if len(data) > MaxUploadBytes {
		return ErrTooLarge
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && ext != ".pdf" {
		return ErrNotPDF
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return ErrNotPDF
	}
	pages, err := PageCount(data)
	if err != nil || pages == 0 {
		return ErrNotPDF
	}
	return nil
}

// PageCount opens the PDF and returns its number of pages.
func PageCount(data []byte) (n int, err error) {
	// ledongthuc/pdf panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, ErrNotPDF
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}
