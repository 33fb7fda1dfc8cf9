package generator

import (
	"strconv"
	"strings"
	"unicode"
)

// ExportedIdentifier converts an arbitrary Notion property or option
// name into an exported Go identifier. Words are split on any
// non-alphanumeric rune and title cased; a leading digit gets an "F"
// prefix since Go identifiers cannot start with one.
func ExportedIdentifier(name string) string {
	var builder strings.Builder
	upperNext := true

	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if upperNext {
				builder.WriteRune(unicode.ToUpper(r))
				upperNext = false
			} else {
				builder.WriteRune(r)
			}
		case r == '+':
			builder.WriteString("Plus")
			upperNext = true
		case r == '-' && builder.Len() == 0:
			builder.WriteString("Minus")
			upperNext = true
		default:
			upperNext = true
		}
	}

	identifier := builder.String()
	if identifier == "" {
		return ""
	}

	if unicode.IsDigit(rune(identifier[0])) {
		identifier = "F" + identifier
	}

	return identifier
}

// FileName converts a database title into a snake case file stem.
func FileName(title string) string {
	var builder strings.Builder
	pendingUnderscore := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingUnderscore && builder.Len() > 0 {
				builder.WriteByte('_')
			}
			pendingUnderscore = false
			builder.WriteRune(r)
		} else {
			pendingUnderscore = true
		}
	}

	stem := builder.String()
	if stem == "" {
		return "untitled"
	}

	if unicode.IsDigit(rune(stem[0])) {
		stem = "f" + stem
	}

	return stem
}

// uniqueIdentifiers resolves collisions after sanitization by
// suffixing a counter, keeping the first occurrence untouched.
type uniqueIdentifiers struct {
	seen map[string]int
}

func newUniqueIdentifiers() *uniqueIdentifiers {
	return &uniqueIdentifiers{seen: make(map[string]int)}
}

func (u *uniqueIdentifiers) claim(identifier string) string {
	count := u.seen[identifier]
	u.seen[identifier] = count + 1
	if count == 0 {
		return identifier
	}
	return identifier + strconv.Itoa(count+1)
}
