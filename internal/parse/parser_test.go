package parse_test

import (
	"strings"
	"testing"

	"zbind/internal/errors"
	"zbind/internal/parse"
	"zbind/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandBinding(t *testing.T) {
	res := parse.New().Parse([]string{`bindkey "^A" beginning-of-line`})
	require.Empty(t, res.Errors)
	require.Len(t, res.Bindings, 1)

	b := res.Bindings[0]
	assert.Equal(t, types.DefaultKeymap, b.Keymap)
	assert.Equal(t, "Ctrl-A", b.Key)
	assert.Equal(t, types.Command, b.Target.Kind)
	assert.Equal(t, "beginning-of-line", b.Target.Text)
	assert.Equal(t, "^A", b.RawKey)
}

func TestParseKeymapFlag(t *testing.T) {
	res := parse.New().Parse([]string{`bindkey -M viins "^[[1;5A" history-search-backward`})
	require.Empty(t, res.Errors)
	require.Len(t, res.Bindings, 1)

	b := res.Bindings[0]
	assert.Equal(t, "viins", b.Keymap)
	assert.Equal(t, "Alt-[ 1;5A", b.Key)
	assert.Equal(t, types.Command, b.Target.Kind)
	assert.Equal(t, "history-search-backward", b.Target.Text)
	assert.Equal(t, "^[[1;5A", b.RawKey)
}

func TestParseMacroBinding(t *testing.T) {
	res := parse.New().Parse([]string{`bindkey -s "^X^E" "^[aegedit\r"`})
	require.Empty(t, res.Errors)
	require.Len(t, res.Bindings, 1)

	b := res.Bindings[0]
	assert.Equal(t, "Ctrl-X Ctrl-E", b.Key)
	assert.Equal(t, types.Macro, b.Target.Kind)
	assert.Equal(t, "Alt-a egedit Enter", b.Target.Text)
}

func TestParseSkipsPreamble(t *testing.T) {
	lines := []string{
		"",
		"# keybindings as of today",
		"typeset -g __dumped=1",
		`bindkey "^B" backward-char`,
	}
	res := parse.New().Parse(lines)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Bindings, 1)
	assert.Equal(t, "backward-char", res.Bindings[0].Target.Text)
}

func TestParseEscapedQuoteInsideLiteral(t *testing.T) {
	res := parse.New().Parse([]string{`bindkey "\"" self-insert`})
	require.Empty(t, res.Errors)
	require.Len(t, res.Bindings, 1)
	assert.Equal(t, `"`, res.Bindings[0].Key)
	assert.Equal(t, `\"`, res.Bindings[0].RawKey)
}

func TestParseMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind errors.ErrorKind
	}{
		{"missing closing quote", `bindkey "^A beginning-of-line`, errors.UnbalancedQuote},
		{"unknown flag", `bindkey -R "^A"-"^C" self-insert`, errors.UnknownFlag},
		{"missing target", `bindkey "^A"`, errors.MalformedLine},
		{"missing keymap name", `bindkey -M "^A" widget`, errors.MalformedLine},
		{"quoted target without -s", `bindkey "^A" "text"`, errors.MalformedLine},
		{"trailing junk after macro", `bindkey -s "^A" "text" extra`, errors.MalformedLine},
		{"no quoted key", `bindkey ^A widget`, errors.MalformedLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse.New().Parse([]string{tt.line})
			assert.Empty(t, res.Bindings)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.kind, res.Errors[0].Kind())
			assert.Equal(t, 1, res.Errors[0].Line())
			assert.Equal(t, tt.line, res.Errors[0].Raw())
		})
	}
}

func TestParseCollectsErrorsWithoutAborting(t *testing.T) {
	lines := []string{
		`bindkey "^A" beginning-of-line`,
		`bindkey "^B backward-char`, // missing closing quote
		`bindkey "^E" end-of-line`,
	}
	res := parse.New().Parse(lines)

	// Both valid lines survive, in input order.
	require.Len(t, res.Bindings, 2)
	assert.Equal(t, "beginning-of-line", res.Bindings[0].Target.Text)
	assert.Equal(t, "end-of-line", res.Bindings[1].Target.Text)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Line())
	assert.True(t, errors.IsMalformedLine(res.Errors[0]))
}

func TestParseUnknownEscapeIsPerLine(t *testing.T) {
	lines := []string{
		`bindkey "\q" widget-one`,
		`bindkey "^C" widget-two`,
	}
	res := parse.New().Parse(lines)

	require.Len(t, res.Bindings, 1)
	assert.Equal(t, "widget-two", res.Bindings[0].Target.Text)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Line())
	assert.True(t, errors.IsUnknownEscape(res.Errors[0]))
}

func TestParseMacroEscapeError(t *testing.T) {
	res := parse.New().Parse([]string{`bindkey -s "^A" "\q"`})
	assert.Empty(t, res.Bindings)
	require.Len(t, res.Errors, 1)
	assert.True(t, errors.IsUnknownEscape(res.Errors[0]))
}

func TestParseDuplicatesPreserved(t *testing.T) {
	// The same key may be bound in several keymaps; the parser never
	// deduplicates.
	lines := []string{
		`bindkey "^A" beginning-of-line`,
		`bindkey -M vicmd "^A" beginning-of-line`,
		`bindkey "^A" beginning-of-line`,
	}
	res := parse.New().Parse(lines)
	assert.Empty(t, res.Errors)
	assert.Len(t, res.Bindings, 3)
}

func TestParseReader(t *testing.T) {
	input := strings.Join([]string{
		`bindkey "^A" beginning-of-line`,
		`bad "^B" nope`,
		`bindkey "^E" end-of-line`,
	}, "\n")

	res, err := parse.New().ParseReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, res.Bindings, 2)
	assert.Empty(t, res.Errors) // non-bindkey lines are skipped, not errors
}

func TestParseIgnoredWidgets(t *testing.T) {
	p, err := parse.NewWithIgnored([]string{"bracketed-paste", "*-argument"})
	require.NoError(t, err)

	lines := []string{
		`bindkey "^[[200~" bracketed-paste`,
		`bindkey "^[1" digit-argument`,
		`bindkey "^[-" neg-argument`,
		`bindkey "^A" beginning-of-line`,
		`bindkey -s "^X" "bracketed-paste"`, // macros are never ignore-filtered
	}
	res := p.Parse(lines)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Bindings, 2)
	assert.Equal(t, "beginning-of-line", res.Bindings[0].Target.Text)
	assert.Equal(t, types.Macro, res.Bindings[1].Target.Kind)
}

func TestParseInvalidIgnorePattern(t *testing.T) {
	_, err := parse.NewWithIgnored([]string{"[unclosed"})
	assert.Error(t, err)
}
