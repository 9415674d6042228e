package keys

import (
	"fmt"
	"strings"
	"unicode"

	apperrors "zbind/internal/errors"
)

// state identifies where the scan is inside an escape form.
type state int

const (
	stateLiteral  state = iota // copying characters through
	stateCaret                 // saw '^'
	stateAfterEsc              // saw '^[' or '\e'; next keystroke is Alt-modified
	stateEscaped               // saw '\'
	stateMeta                  // saw '\M', expecting '-'
	stateHex                   // inside '\x' hex digits
	stateOctal                 // inside octal digits
)

// Decode converts an escaped key-sequence literal into its normalized
// display string. It is total over the input: every character either
// contributes to a token or triggers an EscapeError; nothing is dropped.
func Decode(literal string) (string, error) {
	d := &decoder{input: []rune(literal)}
	if err := d.scan(); err != nil {
		return "", err
	}
	d.flushRun()
	return strings.Join(d.tokens, " "), nil
}

type decoder struct {
	input    []rune
	pos      int
	state    state
	alt      int // pending meta prefixes for the next keystroke
	escStart int // position of the '\' that opened the current escape
	num      int // accumulator for numeric escapes
	digits   int
	run      []rune // current literal run
	tokens   []string
}

func (d *decoder) scan() error {
	for d.pos < len(d.input) {
		r := d.input[d.pos]

		switch d.state {
		case stateLiteral:
			switch r {
			case '^':
				d.state = stateCaret
				d.pos++
			case '\\':
				d.state = stateEscaped
				d.escStart = d.pos
				d.pos++
			default:
				d.literal(r)
				d.pos++
			}

		case stateCaret:
			if r == '[' {
				d.state = stateAfterEsc
			} else {
				d.emit("Ctrl-" + controlChar(r))
				d.state = stateLiteral
			}
			d.pos++

		case stateAfterEsc:
			// The escape prefix modifies the keystroke starting here.
			// Do not consume r; rescan it as the start of a keystroke.
			// Prefixes stack: each one wraps the keystroke in another Alt-.
			d.alt++
			d.state = stateLiteral

		case stateEscaped:
			switch {
			case r == 'M':
				d.state = stateMeta
				d.pos++
			case r == 'e' || r == 'E':
				d.state = stateAfterEsc
				d.pos++
			case r == 'n':
				d.emit("Newline")
				d.state = stateLiteral
				d.pos++
			case r == 'r':
				d.emit("Enter")
				d.state = stateLiteral
				d.pos++
			case r == 't':
				d.emit("Tab")
				d.state = stateLiteral
				d.pos++
			case r == 'a':
				d.emitByte(0x07)
				d.state = stateLiteral
				d.pos++
			case r == 'b':
				d.emitByte(0x08)
				d.state = stateLiteral
				d.pos++
			case r == 'f':
				d.emitByte(0x0c)
				d.state = stateLiteral
				d.pos++
			case r == 'v':
				d.emitByte(0x0b)
				d.state = stateLiteral
				d.pos++
			case r == '"' || r == '\\' || r == '\'':
				d.literal(r)
				d.state = stateLiteral
				d.pos++
			case r == 'x' || r == 'X':
				d.state = stateHex
				d.num, d.digits = 0, 0
				d.pos++
			case r >= '0' && r <= '7':
				d.state = stateOctal
				d.num, d.digits = int(r-'0'), 1
				d.pos++
			default:
				return d.escapeError(d.pos + 1)
			}

		case stateMeta:
			if r != '-' {
				return d.escapeError(d.pos + 1)
			}
			d.alt++
			d.state = stateLiteral
			d.pos++

		case stateHex:
			if v, ok := hexDigit(r); ok && d.digits < 2 {
				d.num = d.num<<4 | v
				d.digits++
				d.pos++
				continue
			}
			if d.digits == 0 {
				return d.escapeError(d.pos + 1)
			}
			d.emitByte(byte(d.num))
			d.state = stateLiteral // rescan r

		case stateOctal:
			if r >= '0' && r <= '7' && d.digits < 3 {
				d.num = d.num<<3 | int(r-'0')
				d.digits++
				d.pos++
				continue
			}
			d.emitByte(byte(d.num))
			d.state = stateLiteral // rescan r
		}
	}

	// Finalize whatever state the input ended in.
	switch d.state {
	case stateLiteral:
	case stateCaret:
		// A trailing bare caret is not an escape; copy it through.
		d.literal('^')
	case stateAfterEsc:
		d.emit("Esc")
	case stateEscaped, stateMeta:
		return d.escapeError(len(d.input))
	case stateHex:
		if d.digits == 0 {
			return d.escapeError(len(d.input))
		}
		d.emitByte(byte(d.num))
	case stateOctal:
		d.emitByte(byte(d.num))
	}
	if d.alt > 0 {
		// A meta prefix with no keystroke after it ("\M-" at end of input).
		return d.escapeError(len(d.input))
	}
	return nil
}

// literal handles one plain keystroke character.
func (d *decoder) literal(r rune) {
	if d.alt > 0 || r == ' ' {
		d.emit(displayChar(r))
		return
	}
	d.run = append(d.run, r)
}

// emitByte handles a character produced by a numeric or named escape.
func (d *decoder) emitByte(b byte) {
	if b >= 0x21 && b < 0x7f {
		d.literal(rune(b))
		return
	}
	if b == ' ' {
		d.emit("Space")
		return
	}
	d.emit(fmt.Sprintf("<0x%02x>", b))
}

// emit appends a token, applying any pending meta modifiers.
func (d *decoder) emit(token string) {
	d.flushRun()
	for ; d.alt > 0; d.alt-- {
		token = "Alt-" + token
	}
	d.tokens = append(d.tokens, token)
}

func (d *decoder) flushRun() {
	if len(d.run) > 0 {
		d.tokens = append(d.tokens, string(d.run))
		d.run = nil
	}
}

func (d *decoder) escapeError(end int) error {
	start := d.escStart
	if start > end {
		start = end
	}
	return apperrors.NewEscapeError("unrecognized escape", string(d.input[start:end]), nil)
}

// controlChar renders the character part of a Ctrl- token. Control
// sequences are case-insensitive, so letters normalize to upper case.
func controlChar(r rune) string {
	if unicode.IsLetter(r) {
		return string(unicode.ToUpper(r))
	}
	if r == ' ' {
		return "Space"
	}
	return string(r)
}

// displayChar renders a single meta-modified or standalone character.
// Case is preserved; Alt-a and Alt-A are distinct keystrokes.
func displayChar(r rune) string {
	if r == ' ' {
		return "Space"
	}
	return string(r)
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}
