package utils

import (
	"strconv"
	"strings"
)

// ToTitleCase lowercases the input and capitalizes the first letter of each
// word, the way customer names are displayed on the form.
func ToTitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func ToUint(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	return uint(n), err
}

func StrPtr(s string) *string {
	return &s
}
