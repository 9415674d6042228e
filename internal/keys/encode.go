package keys

import (
	"strconv"
	"strings"
)

// EncodeToken re-encodes one decoded display token back into bindkey's
// escaped notation. It is the inverse of the spellings Decode produces
// and exists so documentation and tests can show both forms; re-encoding
// never loses the control value a token represents.
func EncodeToken(token string) (string, bool) {
	switch token {
	case "Esc":
		return "^[", true
	case "Enter":
		return `\r`, true
	case "Tab":
		return `\t`, true
	case "Newline":
		return `\n`, true
	case "Space":
		return " ", true
	}

	if rest, ok := strings.CutPrefix(token, "Alt-"); ok {
		inner, ok := EncodeToken(rest)
		if !ok {
			return "", false
		}
		return `\M-` + inner, true
	}

	if rest, ok := strings.CutPrefix(token, "Ctrl-"); ok {
		if rest == "Space" {
			return "^ ", true
		}
		if len([]rune(rest)) != 1 {
			return "", false
		}
		return "^" + rest, true
	}

	// Bracketed placeholder for a non-printable byte.
	if strings.HasPrefix(token, "<0x") && strings.HasSuffix(token, ">") {
		v, err := strconv.ParseUint(token[3:len(token)-1], 16, 8)
		if err != nil {
			return "", false
		}
		return `\x` + strconv.FormatUint(v, 16), true
	}

	// A literal run encodes as itself.
	return token, true
}
