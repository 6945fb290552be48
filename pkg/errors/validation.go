package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds labels and employee IDs accepted from clients.
const maxLabelLength = 256

// ValidateLabel validates a vote label (the name a participant voted for).
// Labels are free text, so only empty, oversized and control-character
// input is rejected.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidInput, "label cannot be empty")
	}
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidateEmployeeID validates the voter identifier submitted with a vote.
func ValidateEmployeeID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return New(ErrCodeInvalidVoter, "employee id cannot be empty")
	}
	if len(id) > maxLabelLength {
		return New(ErrCodeInvalidVoter, "employee id too long (max %d characters)", maxLabelLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidVoter, "employee id contains invalid characters")
		}
	}
	return nil
}
