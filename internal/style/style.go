// Package style validates user supplied CSS tokens before they reach a
// style attribute.
package style

import (
	"strings"

	"github.com/aymerick/douceur/parser"
)

// Declaration returns "property:value" when value parses as exactly one
// harmless declaration for property.
func Declaration(property, value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.ContainsAny(value, ";{}<>\"'\\$") {
		return "", false
	}
	lower := strings.ToLower(value)
	if strings.Contains(lower, "url(") || strings.Contains(lower, "expression(") {
		return "", false
	}
	// douceur 只在遇到 ";" 时才填充 Value
	decls, err := parser.ParseDeclarations(property + ": " + value + ";")
	if err != nil || len(decls) != 1 {
		return "", false
	}
	d := decls[0]
	if !strings.EqualFold(d.Property, property) || d.Value == "" {
		return "", false
	}
	return property + ":" + d.Value, true
}

// Color validates a colour token.
func Color(value string) (string, bool) {
	return Declaration("color", value)
}

// FontSize validates a font-size token. Bare numbers are taken as
// pixels.
func FontSize(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value != "" && strings.Trim(value, "0123456789.") == "" {
		value += "px"
	}
	return Declaration("font-size", value)
}
