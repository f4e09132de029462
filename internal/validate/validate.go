// Package validate provides pure input validation for user-entered
// budget fields. Expected validation failures are values, not errors:
// each function returns a Result instead of panicking or returning an
// error type.
package validate

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxAmount is the largest accepted transaction or budget amount.
const MaxAmount = 999999.99

// MaxDescriptionLength bounds free-text transaction descriptions.
const MaxDescriptionLength = 100

// Category name length bounds, applied after trimming.
const (
	MinCategoryNameLength = 2
	MaxCategoryNameLength = 30
)

// Result is the outcome of validating a single input field.
type Result struct {
	Error string
	Valid bool
}

func ok() Result {
	return Result{Valid: true}
}

func fail(msg string) Result {
	return Result{Valid: false, Error: msg}
}

// Amount validates a user-entered amount string. It must parse as a
// positive number no greater than MaxAmount with at most two digits
// after the decimal point.
func Amount(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fail("Amount is required")
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fail("Please enter a valid number")
	}

	// ParseFloat also accepts "NaN", "Inf", and hexadecimal floats,
	// none of which are a user-entered amount. NaN in particular would
	// slip past the range checks below.
	if math.IsNaN(value) || math.IsInf(value, 0) || strings.ContainsAny(trimmed, "xX") {
		return fail("Please enter a valid number")
	}

	if value <= 0 {
		return fail("Amount must be greater than 0")
	}

	if value > MaxAmount {
		return fail("Amount is too large")
	}

	if _, frac, found := strings.Cut(trimmed, "."); found && len(frac) > 2 {
		return fail("Amount can have at most 2 decimal places")
	}

	return ok()
}

// CategoryName validates a category name after trimming surrounding
// whitespace.
func CategoryName(name string) Result {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return fail("Category name is required")
	}

	// Lengths are counted in characters, not bytes, so multibyte
	// names are measured the way the user sees them.
	length := utf8.RuneCountInString(trimmed)
	if length < MinCategoryNameLength {
		return fail("Category name must be at least 2 characters")
	}

	if length > MaxCategoryNameLength {
		return fail("Category name must be less than 30 characters")
	}

	return ok()
}

// Description validates a transaction description. Empty is fine; the
// store substitutes a default label at display time.
func Description(text string) Result {
	if utf8.RuneCountInString(text) > MaxDescriptionLength {
		return fail("Description must be less than 100 characters")
	}
	return ok()
}
