package application

import (
	"fmt"
	"regexp"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_.]+)\}`)

// renderPlaceholders substitutes {field} tokens with the record's field
// values. Unknown fields are left as-is so a misconfigured template is
// visible in the delivered text instead of silently blanked.
func renderPlaceholders(text string, data map[string]any) string {
	if text == "" || len(data) == 0 {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		field := match[1 : len(match)-1]
		value, ok := data[field]
		if !ok || value == nil {
			return match
		}
		if s, ok := value.(string); ok {
			return s
		}
		return fmt.Sprint(value)
	})
}
