package snippet

import (
	"fmt"
	"strings"
)

// Dialect identifies a Markdown snippet layout.
type Dialect string

const (
	// DialectStandard places the permalink above a fenced code block.
	DialectStandard Dialect = "standard"
	// DialectHacknote places the permalink inside the fence info string.
	DialectHacknote Dialect = "hacknote"

	unsupportedDialectTemplateConstant = "unsupported markdown dialect %q (expected %s or %s)"
)

// UnsupportedDialectError indicates an unknown dialect name.
type UnsupportedDialectError struct {
	Value string
}

// Error describes the unsupported dialect.
func (dialectError UnsupportedDialectError) Error() string {
	return fmt.Sprintf(unsupportedDialectTemplateConstant, dialectError.Value, DialectStandard, DialectHacknote)
}

// ParseDialect converts a case-insensitive dialect name. Empty input selects the standard dialect.
func ParseDialect(value string) (Dialect, error) {
	normalizedValue := Dialect(strings.ToLower(strings.TrimSpace(value)))
	switch normalizedValue {
	case "", DialectStandard:
		return DialectStandard, nil
	case DialectHacknote:
		return DialectHacknote, nil
	default:
		return "", UnsupportedDialectError{Value: value}
	}
}
