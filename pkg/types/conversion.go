// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionMethod identifies the PDF conversion backend.
type ConversionMethod string

const (
	// MethodText extracts the embedded text layer without OCR. Fast and
	// pure Go.
	MethodText ConversionMethod = "text"

	// MethodOCR renders pages through MuPDF and falls back to Tesseract OCR
	// for pages without a text layer. Higher fidelity, higher cost.
	MethodOCR ConversionMethod = "ocr"
)

// Methods lists the valid conversion methods in documentation order.
func Methods() []ConversionMethod {
	return []ConversionMethod{MethodText, MethodOCR}
}

// ConversionStatus indicates the outcome of converting a single file.
type ConversionStatus string

const (
	StatusConverted ConversionStatus = "converted"
	StatusSkipped   ConversionStatus = "skipped"
	StatusFailed    ConversionStatus = "failed"
)
