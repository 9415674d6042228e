package aggregate

import "strings"

// prefixOrder ranks the common zsh escape prefixes so related key
// sequences sort next to each other instead of lexically. Unlisted
// prefixes rank after all listed ones.
var prefixOrder = map[string]int{
	"^":    0,
	"^[":   1,
	"^[^":  2,
	"M-":   3,
	"M-^":  4,
	"^X":   5,
	"^X^":  6,
	"^[[":  7,
	"^[O":  8,
	"^[[3": 9,
}

const unrankedPrefix = 999

// Prefix splits a raw key literal into its escape prefix and final
// character. Backslashes are stripped first so "\M-x" yields the "M-"
// prefix, matching how the prefixes read in a listing.
func Prefix(rawKey string) (prefix, char string) {
	s := strings.ReplaceAll(rawKey, `\`, "")
	runes := []rune(s)
	if len(runes) == 0 {
		return "", ""
	}
	return string(runes[:len(runes)-1]), string(runes[len(runes)-1])
}

// PrefixRank returns the sort weight of a raw key literal's prefix.
func PrefixRank(rawKey string) int {
	prefix, _ := Prefix(rawKey)
	if rank, ok := prefixOrder[prefix]; ok {
		return rank
	}
	return unrankedPrefix
}

// prefixDisplay is the group header used when grouping by prefix.
func prefixDisplay(rawKey string) string {
	prefix, _ := Prefix(rawKey)
	if prefix == "" {
		return "(none)"
	}
	return prefix
}
