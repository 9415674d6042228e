package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeListing(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listing.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

// runCommand executes the root command against a listing file and
// captures stdout. An empty config path keeps the run hermetic.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "no-config.yaml")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRunFromFile(t *testing.T) {
	listing := writeListing(t,
		`bindkey "^A" beginning-of-line`,
		`bindkey "^E" end-of-line`,
	)

	out, err := runCommand(t, "--file", listing, "--plain")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	// Default sort is by widget name.
	assert.Contains(t, lines[0], "beginning-of-line")
	assert.Contains(t, lines[1], "end-of-line")
	assert.Contains(t, lines[0], "Ctrl-A")
}

func TestRunStyledDefault(t *testing.T) {
	listing := writeListing(t,
		`bindkey "^A" beginning-of-line`,
		`bindkey -s "^X^E" "^[aegedit\r"`,
	)

	out, err := runCommand(t, "--file", listing)
	require.NoError(t, err)

	// Without --plain the bindings render as a bordered table.
	assert.Contains(t, out, "KEYMAP")
	assert.Contains(t, out, "Ctrl-A")
	assert.Contains(t, out, "beginning-of-line")
	assert.Contains(t, out, "macro")
	assert.Contains(t, out, "Alt-a egedit Enter")
}

func TestRunSortByKey(t *testing.T) {
	listing := writeListing(t,
		`bindkey "^E" end-of-line`,
		`bindkey "^[b" backward-word`,
	)

	out, err := runCommand(t, "--file", listing, "--plain", "-i")
	require.NoError(t, err)

	// Alt-b sorts before Ctrl-E when ordering by key.
	assert.Less(t, strings.Index(out, "Alt-b"), strings.Index(out, "Ctrl-E"))
}

func TestRunGroupByKeymap(t *testing.T) {
	listing := writeListing(t,
		`bindkey -M vicmd "^A" beginning-of-line`,
		`bindkey "^A" beginning-of-line`,
	)

	out, err := runCommand(t, "--file", listing, "--plain", "--group", "keymap")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "main", lines[0])
	assert.Equal(t, "vicmd", lines[2])
}

func TestRunIgnoresNoiseWidgets(t *testing.T) {
	listing := writeListing(t,
		`bindkey "^[[200~" bracketed-paste`,
		`bindkey "^A" beginning-of-line`,
	)

	out, err := runCommand(t, "--file", listing, "--plain")
	require.NoError(t, err)
	assert.NotContains(t, out, "bracketed-paste")

	out, err = runCommand(t, "--file", listing, "--plain", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "bracketed-paste")
}

func TestRunReportsPartialFailures(t *testing.T) {
	listing := writeListing(t,
		`bindkey "^A" beginning-of-line`,
		`bindkey "^B backward-char`, // unbalanced quote
	)

	out, err := runCommand(t, "--file", listing, "--plain")
	require.NoError(t, err, "partial failure must still print the valid subset")
	assert.Contains(t, out, "beginning-of-line")
	assert.NotContains(t, out, "backward-char")
}

func TestRunFailsWhenNothingParses(t *testing.T) {
	listing := writeListing(t, `bindkey "^A beginning-of-line`)

	_, err := runCommand(t, "--file", listing, "--plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bindings parsed")
}

func TestRunRejectsInvalidMode(t *testing.T) {
	listing := writeListing(t, `bindkey "^A" beginning-of-line`)

	_, err := runCommand(t, "--file", listing, "--sort", "frequency")
	require.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	out, err := runCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "zbind")
}
