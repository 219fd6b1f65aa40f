package validation

import "fmt"

// MaxNameLength caps graph and layout names so they stay usable as
// filenames and database keys.
const MaxNameLength = 128

// IsValidIdentifierChar checks if a character is valid for identifiers
// (alphanumeric, hyphen, or underscore).
//
// This function is used to validate graph names, layout names, and
// other user-provided identifiers in FlowCanvas. It enforces a
// consistent naming convention across the application.
func IsValidIdentifierChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_'
}

// Name validates a user-provided identifier such as a graph or layout
// name. Names become filenames and database keys, so the charset is
// restricted to characters that are safe in both.
func Name(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%s name too long: %d characters (max %d)", kind, len(name), MaxNameLength)
	}
	for _, ch := range name {
		if !IsValidIdentifierChar(ch) {
			return fmt.Errorf("invalid %s name %q: character %q not allowed", kind, name, ch)
		}
	}
	return nil
}
