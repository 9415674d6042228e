package types

// TargetKind discriminates what a key sequence is bound to.
type TargetKind int

const (
	// Command targets name a ZLE widget (e.g. "beginning-of-line").
	Command TargetKind = iota
	// Macro targets replay a literal string into the line editor.
	Macro
)

// String returns the display name for the target kind.
func (k TargetKind) String() string {
	if k == Macro {
		return "macro"
	}
	return "command"
}

// Target is the right-hand side of a binding: either a widget name or,
// for macro bindings, the decoded literal the shell would replay.
// Callers must switch on Kind; the two variants share nothing but Text.
type Target struct {
	Kind TargetKind `json:"kind"`
	Text string     `json:"text"`
}

// DefaultKeymap is the name used when a listing line carries no -M flag.
// It matches zsh's name for the default (emacs/viins-backed) keymap.
const DefaultKeymap = "main"

// Binding is one decoded key binding from a bindkey listing.
// It is immutable once built; the aggregator only reorders bindings.
type Binding struct {
	Keymap string `json:"keymap"` // never empty, falls back to DefaultKeymap
	Key    string `json:"key"`    // decoded display form, e.g. "Ctrl-X Ctrl-E"
	Target Target `json:"target"`
	RawKey string `json:"raw_key"` // original escaped literal, for tie-breaks and messages
}

// TargetText returns the display string the aggregator compares bindings by:
// the widget name for command bindings, the decoded literal for macros.
func (b Binding) TargetText() string {
	return b.Target.Text
}

// Row is one display row handed to the renderer. Header is non-empty only
// on the first row of a group when grouping is enabled.
type Row struct {
	Header  string
	Binding Binding
}
