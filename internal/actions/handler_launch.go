package actions

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// LaunchHandler opens an application or URL with the platform opener.
// Key is the parameter holding the target ("app" or "url").
type LaunchHandler struct {
	Key string
}

func (h *LaunchHandler) IsSupported() bool {
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
		return true
	default:
		return false
	}
}

func (h *LaunchHandler) Execute(inv Invocation) (string, error) {
	if !inv.Pressed {
		return "", nil
	}
	if err := h.Validate(inv.Params); err != nil {
		return "", err
	}
	target, _ := inv.String(h.Key)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		if h.Key == "app" {
			cmd = exec.Command("open", "-a", target)
		} else {
			cmd = exec.Command("open", target)
		}
	case "linux":
		if h.Key == "app" {
			cmd = exec.Command(target)
		} else {
			cmd = exec.Command("xdg-open", target)
		}
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", target)
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to open %s: %w", target, err)
	}
	// The opener is detached; reap it in the background
	go cmd.Wait()
	return fmt.Sprintf("Opened %s", target), nil
}

func (h *LaunchHandler) Validate(params map[string]json.RawMessage) error {
	target, err := paramString(params, h.Key)
	if err != nil {
		return err
	}
	if target == "" {
		return fmt.Errorf("empty %s", h.Key)
	}
	if h.Key == "url" {
		u, err := url.Parse(target)
		if err != nil || u.Scheme == "" {
			return fmt.Errorf("invalid url: %s", target)
		}
	}
	return nil
}
