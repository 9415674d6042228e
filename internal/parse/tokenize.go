package parse

import (
	"strings"

	apperrors "zbind/internal/errors"
)

// Directive is the tokenized form of one bindkey listing line, before
// any key-notation decoding.
type Directive struct {
	Keymap     string // -M argument; empty when the line names no keymap
	IsMacro    bool   // -s flag: the target is a literal string, not a widget
	KeyLiteral string // raw inner text of the quoted key literal
	Target     string // bare widget name, or raw inner text of the quoted macro
}

// Tokenize splits one listing line into its syntactic parts.
//
// Blank lines and lines that do not start with the bindkey directive are
// skipped, not errors: listings fed from files may carry preambles or
// comments. Returns ok=false for skipped lines. Malformed directive lines
// (unknown flags, unbalanced quoting, missing fields) fail with a
// ParseError carrying the given line number and raw text.
func Tokenize(line string, lineNo int) (Directive, bool, error) {
	var d Directive

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return d, false, nil
	}

	word, rest := nextWord(trimmed)
	if word != "bindkey" {
		return d, false, nil
	}

	// Flags precede the key literal.
	for {
		rest = strings.TrimLeft(rest, " \t")
		if !strings.HasPrefix(rest, "-") {
			break
		}
		var flag string
		flag, rest = nextWord(rest)
		switch flag {
		case "-M":
			rest = strings.TrimLeft(rest, " \t")
			if rest == "" || strings.HasPrefix(rest, "\"") {
				return d, false, apperrors.NewParseError("-M flag missing keymap name", lineNo, line, apperrors.MalformedLine, nil)
			}
			d.Keymap, rest = nextWord(rest)
		case "-s":
			d.IsMacro = true
		default:
			return d, false, apperrors.NewParseError("unrecognized flag", lineNo, line, apperrors.UnknownFlag, apperrors.Newf("%s", flag))
		}
	}

	keyLiteral, rest, err := quotedLiteral(rest, line, lineNo)
	if err != nil {
		return d, false, err
	}
	d.KeyLiteral = keyLiteral

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return d, false, apperrors.NewParseError("missing binding target", lineNo, line, apperrors.MalformedLine, nil)
	}

	if d.IsMacro {
		macro, tail, err := quotedLiteral(rest, line, lineNo)
		if err != nil {
			return d, false, err
		}
		if strings.TrimSpace(tail) != "" {
			return d, false, apperrors.NewParseError("unexpected text after macro literal", lineNo, line, apperrors.MalformedLine, nil)
		}
		d.Target = macro
		return d, true, nil
	}

	if strings.HasPrefix(rest, "\"") {
		return d, false, apperrors.NewParseError("quoted target without -s flag", lineNo, line, apperrors.MalformedLine, nil)
	}
	if strings.ContainsAny(rest, " \t") {
		return d, false, apperrors.NewParseError("unexpected text after widget name", lineNo, line, apperrors.MalformedLine, nil)
	}
	d.Target = rest
	return d, true, nil
}

// nextWord splits off the first space-delimited word.
func nextWord(s string) (word, rest string) {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// quotedLiteral extracts the raw inner text of a double-quoted literal.
// An escaped quote inside the literal does not terminate it; the inner
// text is returned with its escapes intact for the key decoder.
func quotedLiteral(s, line string, lineNo int) (inner, rest string, err error) {
	if !strings.HasPrefix(s, "\"") {
		return "", "", apperrors.NewParseError("expected quoted literal", lineNo, line, apperrors.MalformedLine, nil)
	}
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++ // the escaped character cannot terminate the literal
		case '"':
			return string(runes[1:i]), string(runes[i+1:]), nil
		}
	}
	return "", "", apperrors.NewParseError("unbalanced quote", lineNo, line, apperrors.UnbalancedQuote, nil)
}
