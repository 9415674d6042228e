// Package keys decodes zsh's escaped key-sequence notation into a
// normalized human-readable form.
//
// The input is the inner text of a bindkey listing's quoted key literal,
// exactly as zsh prints it: caret control sequences ("^A"), escape/meta
// prefixes ("^[x", "\M-x", "\e"), named escapes ("\r", "\t", "\n"), and
// numeric octal or hex escapes ("\177", "\x7f").
//
// The decoded form is a space-joined sequence of tokens. Fixed spellings:
//
//	^A       Ctrl-A        (control letters are case-normalized)
//	^[x      Alt-x         (meta preserves the character's case)
//	^[^X     Alt-Ctrl-X
//	^[^[x    Alt-Alt-x     (escape prefixes stack)
//	^[       Esc           (only when nothing follows)
//	\r       Enter
//	\t       Tab
//	\n       Newline
//	" "      Space
//	\177     <0x7f>        (non-printable bytes never appear raw)
//
// Runs of plain printable characters are copied through verbatim as a
// single token.
package keys
