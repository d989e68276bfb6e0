package usecase

import (
	"strings"

	"github.com/scanlens/backend/internal/domain"
)

// Barcode length bounds cover EAN-8 through GTIN-14. No checksum validation:
// the scanner already length-gates its decodes, and manual entry follows the
// same trust model.
const (
	minBarcodeLength = 8
	maxBarcodeLength = 14
)

// ValidateBarcode normalizes raw scan/input text into a canonical numeric
// barcode. On success the trimmed digit string is returned unchanged — no
// leading-zero stripping. Pure and deterministic.
func ValidateBarcode(input string) (string, error) {
	trimmed := strings.TrimSpace(input)

	if trimmed == "" {
		return "", domain.ErrEmptyBarcode
	}
	if len(trimmed) < minBarcodeLength || len(trimmed) > maxBarcodeLength {
		return "", domain.ErrBarcodeLength
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return "", domain.ErrBarcodeNonDigit
		}
	}

	return trimmed, nil
}
