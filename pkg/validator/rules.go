package validator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: "is required"},
	}
}

// MaxLen counts runes.
func MaxLen(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= n },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", n)},
	}
}

func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool { return re.MatchString(value) },
		Error: ValidationError{Field: field, Message: "must be " + description},
	}
}

// JSON passes for empty input.
func JSON(field string, raw []byte) Rule {
	return Rule{
		Check: func() bool { return len(raw) == 0 || json.Valid(raw) },
		Error: ValidationError{Field: field, Message: "must be valid JSON"},
	}
}
