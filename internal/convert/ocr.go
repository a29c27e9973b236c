// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gen2brain/go-fitz"

	"github.com/omriariav/pdf-to-md/pkg/types"
)

// ocrDPI is the render resolution for pages sent to tesseract.
const ocrDPI = 300

// lookPath is the exec.LookPath implementation used to probe for tesseract.
// Tests may replace it to simulate a missing binary.
var lookPath = exec.LookPath

// OCRConverter renders pages through MuPDF as HTML and converts them to
// Markdown. Pages without a text layer are rendered to PNG and passed
// through the tesseract binary when it is on PATH; without tesseract such
// pages stay empty. Heavier and slower than the text backend.
type OCRConverter struct{}

// NewOCRConverter returns the OCR-capable converter.
func NewOCRConverter() *OCRConverter {
	return &OCRConverter{}
}

// Name returns the config identifier for this backend.
func (o *OCRConverter) Name() string {
	return string(types.MethodOCR)
}

// Convert reads the PDF at pdfPath and renders it as Markdown with one
// section per page. The title comes from PDF metadata when present.
func (o *OCRConverter) Convert(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filepath.Base(pdfPath), err)
	}
	defer doc.Close()

	base := filepath.Base(pdfPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	title := stem
	if t := strings.TrimSpace(doc.Metadata()["title"]); t != "" {
		title = t
	}

	var b strings.Builder
	b.WriteString(documentHeader(title, base))

	converter := md.NewConverter("", true, nil)
	warnedNoOCR := false

	for i := 0; i < doc.NumPage(); i++ {
		html, err := doc.HTML(i, false)
		if err != nil {
			return "", fmt.Errorf("rendering page %d of %s: %w", i+1, base, err)
		}

		body, err := converter.ConvertString(html)
		if err != nil {
			return "", fmt.Errorf("converting page %d of %s: %w", i+1, base, err)
		}
		body = strings.TrimSpace(stripInlineImages(body))

		if body == "" {
			switch {
			case ocrAvailable():
				body, err = ocrPage(doc, i)
				if err != nil {
					return "", fmt.Errorf("OCR on page %d of %s: %w", i+1, base, err)
				}
			case !warnedNoOCR:
				slog.Warn("tesseract not on PATH, scanned pages will be empty", "file", base)
				warnedNoOCR = true
			}
		}

		if body == "" {
			continue
		}
		fmt.Fprintf(&b, "\n## Page %d\n\n%s\n", i+1, body)
	}

	return b.String(), nil
}

// ocrAvailable reports whether the tesseract binary is on PATH.
func ocrAvailable() bool {
	_, err := lookPath("tesseract")
	return err == nil
}

// ocrPage renders one page to PNG and runs tesseract over it.
func ocrPage(doc *fitz.Document, page int) (string, error) {
	png, err := doc.ImagePNG(page, ocrDPI)
	if err != nil {
		return "", fmt.Errorf("rendering PNG: %w", err)
	}

	tmp, err := os.CreateTemp("", "pdf-to-md-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp image: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp image: %w", err)
	}

	out, err := exec.Command("tesseract", tmpPath, "stdout").Output()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
