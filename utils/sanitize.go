package utils

import (
	"regexp"
	"strings"
)

var invalidNameChars = regexp.MustCompile(`[^a-z0-9_]`)

// IsValidProjectName checks whether the name is already a usable module
// name: lowercase, starting with a letter, containing only letters, digits
// and underscores.
func IsValidProjectName(name string) bool {
	matched, _ := regexp.MatchString(`^[a-z][a-z0-9_]*$`, name)
	return matched
}

// FormatProjectName coerces arbitrary input into a valid module name. The
// generated main source file is named after the project, so the name has to
// be importable by the compiler.
func FormatProjectName(name string) string {
	formatted := strings.ToLower(strings.TrimSpace(name))
	formatted = invalidNameChars.ReplaceAllString(formatted, "_")
	formatted = strings.Trim(formatted, "_")

	if len(formatted) > 0 && strings.IndexAny(formatted[0:1], "0123456789") == 0 {
		formatted = "game_" + formatted
	}

	if formatted == "" {
		formatted = "my_firefly_game"
	}

	return formatted
}
