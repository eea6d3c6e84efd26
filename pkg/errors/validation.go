package errors

import (
	"regexp"
	"slices"
	"strings"
)

// cypherIdentifierRegex matches property and label names that can be
// interpolated into a Cypher query without quoting.
var cypherIdentifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier validates a graph property or label name before it is
// spliced into a query string. Cypher does not allow parameters in those
// positions, so the name must be checked instead.
func ValidateIdentifier(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "identifier too long (max 64 characters)")
	}
	if !cypherIdentifierRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid identifier: %q", name)
	}
	return nil
}

// ValidateFormat checks that format is one of the supported output formats.
func ValidateFormat(format string, valid []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(valid, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (valid: %s)", format, strings.Join(valid, ", "))
	}
	return nil
}
