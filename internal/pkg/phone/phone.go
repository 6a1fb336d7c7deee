package phone

import "strings"

// Normalize strips every non-digit rune, so "+351 912-345-678" and
// "351912345678" yield the same key.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// Mask hides all but the last three digits of a key for logging.
func Mask(key string) string {
	if len(key) <= 3 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-3) + key[len(key)-3:]
}
