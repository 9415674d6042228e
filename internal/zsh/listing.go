// Package zsh obtains key-binding listings by running the user's shell.
package zsh

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"zbind/internal/config"
	apperrors "zbind/internal/errors"
	"zbind/internal/log"
)

// Listing runs the configured zsh command and returns the raw listing
// lines. An interactive login shell is used so the user's own bindkey
// calls from .zshrc are reflected.
func Listing(cfg *config.Config) ([]string, error) {
	return run(cfg.Zsh.Command, cfg.Zsh.Args)
}

// ListingKeymap returns the listing for one named keymap by swapping the
// trailing bindkey invocation for a -M form.
func ListingKeymap(cfg *config.Config, keymap string) ([]string, error) {
	if strings.ContainsAny(keymap, " \t'\"\\$") {
		return nil, apperrors.Newf("invalid keymap name %q", keymap)
	}
	args := make([]string, len(cfg.Zsh.Args))
	copy(args, cfg.Zsh.Args)
	if len(args) == 0 {
		return nil, apperrors.New("zsh command has no arguments configured")
	}
	args[len(args)-1] = fmt.Sprintf("bindkey -M %s -L", keymap)
	return run(cfg.Zsh.Command, args)
}

func run(command string, args []string) ([]string, error) {
	log.Debugf("running %s %s", command, strings.Join(args, " "))

	cmd := exec.Command(command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, apperrors.Wrapf(err, "running %s: %s", command, msg)
		}
		return nil, apperrors.Wrapf(err, "running %s", command)
	}

	return strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n"), nil
}
