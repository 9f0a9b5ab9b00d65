// Package payload implements the large-payload transport convention:
// text bodies above a fixed threshold are base64-encoded so oversized
// script and document contents survive the controller boundary without
// truncation or escaping damage.
package payload

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"
)

// Threshold is the character count above which payloads are encoded.
const Threshold = 10000

// EncodeIfLarge returns the payload to transmit and whether it was
// encoded. Text at or below the threshold passes through unchanged.
func EncodeIfLarge(text string) (string, bool) {
	if utf8.RuneCountInString(text) <= Threshold {
		return text, false
	}
	return base64.StdEncoding.EncodeToString([]byte(text)), true
}

// Decode reverses EncodeIfLarge. A non-encoded payload is returned
// unchanged.
func Decode(text string, isEncoded bool) (string, error) {
	if !isEncoded {
		return text, nil
	}
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return "", fmt.Errorf("decoding payload: %w", err)
	}
	return string(raw), nil
}
