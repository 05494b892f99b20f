package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  return strings.ToLower(strings.TrimSpace(input))
}

// ParseDisplayString trims without lowercasing, for user-visible fields
// like names and task titles.
func ParseDisplayString(input string) string {
  return strings.TrimSpace(input)
}
