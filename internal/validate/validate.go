// Package validate holds the pure field validators for user-supplied values.
// Every check is deterministic, does no I/O, and rejects on first failure
// with a 422 validation error.
package validate

import (
	"regexp"
	"strings"
	"unicode"

	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
)

// reservedWords are names that may not be used as usernames or list/item
// names regardless of their shape.
var reservedWords = map[string]struct{}{
	"http":  {},
	"https": {},
	"ftp":   {},
	"www":   {},
	"jerk":  {},
	"abuse": {},
	"damn":  {},
	"admin": {},
	"root":  {},
}

// emailPattern matches the conventional local@domain shape.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsReserved reports whether the given word is in the reserved-words set.
// The check is case-insensitive.
func IsReserved(word string) bool {
	_, ok := reservedWords[strings.ToLower(word)]
	return ok
}

// Username checks the shape of a username: at least 3 characters, no leading
// whitespace, digit, or punctuation, no embedded whitespace or punctuation,
// and not a reserved word.
func Username(username string) error {
	if len(username) < 3 {
		return apperrors.ValidationFailed("username must be at least 3 characters long")
	}

	first := []rune(username)[0]
	if unicode.IsSpace(first) || unicode.IsDigit(first) || unicode.IsPunct(first) || unicode.IsSymbol(first) {
		return apperrors.ValidationFailed("username must start with a letter")
	}

	for _, r := range username {
		if unicode.IsSpace(r) {
			return apperrors.ValidationFailed("username must not contain spaces")
		}
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return apperrors.ValidationFailed("username must not contain punctuation characters")
		}
	}

	if IsReserved(username) {
		return apperrors.ValidationFailed("username not allowed, please choose another")
	}

	return nil
}

// Password checks the shape of a password: at least 6 characters, no leading
// whitespace, and not made up entirely of digits or whitespace.
func Password(password string) error {
	if len(password) < 6 {
		return apperrors.ValidationFailed("password must be at least 6 characters long")
	}

	if unicode.IsSpace([]rune(password)[0]) {
		return apperrors.ValidationFailed("password must not start with a space")
	}

	allDigits, allSpace := true, true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
		}
		if !unicode.IsSpace(r) {
			allSpace = false
		}
	}
	if allDigits {
		return apperrors.ValidationFailed("password must not be entirely numeric")
	}
	if allSpace {
		return apperrors.ValidationFailed("password must not be entirely whitespace")
	}

	return nil
}

// PasswordsMatch checks that a password and its confirmation are equal.
func PasswordsMatch(password, confirm string) error {
	if password != confirm {
		return apperrors.PasswordsDoNotMatch()
	}
	return nil
}

// Email checks that the address has the conventional local@domain shape.
// Callers normalize with domain.NormalizeEmail before uniqueness checks.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.ValidationFailed("a valid email address is required")
	}
	return nil
}

// Name checks the shape of a shopping list or shopping item name: at least
// 3 characters, no leading digit or punctuation, words separated by single
// spaces only, and not a reserved word. The label names the entity kind in
// error messages ("shopping list", "shopping item").
func Name(label, name string) error {
	if len(name) < 3 {
		return apperrors.ValidationFailed(label + " name must be at least 3 characters long")
	}

	first := []rune(name)[0]
	if unicode.IsSpace(first) || unicode.IsDigit(first) || unicode.IsPunct(first) || unicode.IsSymbol(first) {
		return apperrors.ValidationFailed(label + " name must start with a letter")
	}

	prevSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if r != ' ' || prevSpace {
				return apperrors.ValidationFailed(label + " name words must be separated by single spaces")
			}
			prevSpace = true
			continue
		}
		prevSpace = false
	}
	if prevSpace {
		return apperrors.ValidationFailed(label + " name must not end with a space")
	}

	if IsReserved(name) {
		return apperrors.ValidationFailed(label + " name not allowed, please choose another")
	}

	return nil
}
