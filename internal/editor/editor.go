// Package editor launches the user's editor on a file.
package editor

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// Command builds the process that edits path. Editor strings may carry
// flags ("code --wait"), so they run through a shell wrapper.
func Command(editor, path string) *exec.Cmd {
	if strings.ContainsAny(editor, " \t") {
		cmd := exec.Command("sh", "-c", "$EDITORCMD \"$FILEPATH\"")
		cmd.Env = append(os.Environ(), "EDITORCMD="+editor, "FILEPATH="+path)
		return cmd
	}
	return exec.Command(editor, path)
}

// Open edits path in the preferred editor attached to the terminal and
// reports whether the file content changed.
func Open(path string) (changed bool, err error) {
	before, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	ed, err := PreferredEditor()
	if err != nil {
		return false, err
	}
	cmd := Command(ed, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return false, err
	}
	after, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(before, after), nil
}
