package actions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ShellHandler runs the "command" parameter of a shell binding on press
type ShellHandler struct{}

func (h *ShellHandler) IsSupported() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin" || runtime.GOOS == "linux"
}

func (h *ShellHandler) Execute(inv Invocation) (string, error) {
	if !inv.Pressed {
		return "", nil
	}
	cmd, err := commandFor(inv.Params, false)
	if err != nil {
		return "", err
	}
	stdout, err := run(cmd)
	if err != nil {
		return stdout, fmt.Errorf("shell: %w", err)
	}
	return stdout, nil
}

// Validate parses the command without running it. PowerShell has no
// parse-only mode, so Windows commands are only checked for being present.
func (h *ShellHandler) Validate(params map[string]json.RawMessage) error {
	cmd, err := commandFor(params, true)
	if err != nil || cmd == nil {
		return err
	}
	if _, err := run(cmd); err != nil {
		return fmt.Errorf("syntax: %w", err)
	}
	return nil
}

// commandFor builds the platform shell invocation of the "command"
// parameter. With checkOnly it returns a parse-only invocation, or nil where
// the shell has none.
func commandFor(params map[string]json.RawMessage, checkOnly bool) (*exec.Cmd, error) {
	code, err := paramString(params, "command")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("empty command")
	}

	switch runtime.GOOS {
	case "windows":
		if checkOnly {
			return nil, nil
		}
		return exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", code), nil
	case "darwin", "linux":
		shell := "/bin/bash"
		if _, err := exec.LookPath("zsh"); err == nil && runtime.GOOS == "darwin" {
			shell = "/bin/zsh"
		}
		if checkOnly {
			return exec.Command(shell, "-n", "-c", code), nil
		}
		return exec.Command(shell, "-c", code), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// run executes cmd and returns its trimmed stdout. A failure carries stderr
// when the command wrote any.
func run(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err == nil {
		return out, nil
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return out, errors.New(msg)
	}
	return out, err
}
