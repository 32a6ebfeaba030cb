// Package startup registers the editor to open at login.
package startup

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	appID    = "io.k2controller.editor"
	appName  = "K2 Controller"
	fileStem = "k2-controller"
)

// launcher is one platform's login-item mechanism
type launcher interface {
	enable(execPath string) error
	disable() error
	enabled() bool
}

func forPlatform(goos string) (launcher, error) {
	switch goos {
	case "darwin":
		return launchAgent{path: userPath("Library", "LaunchAgents", appID+".plist")}, nil
	case "linux":
		return autostartEntry{path: autostartPath()}, nil
	case "windows":
		return runKey{}, nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Enable registers the application to launch at login
func Enable() error {
	l, err := forPlatform(runtime.GOOS)
	if err != nil {
		return err
	}
	execPath, err := os.Executable()
	if err != nil {
		return err
	}
	return l.enable(execPath)
}

// Disable removes the application from login items
func Disable() error {
	l, err := forPlatform(runtime.GOOS)
	if err != nil {
		return err
	}
	return l.disable()
}

// IsEnabled checks if the application is registered for login
func IsEnabled() bool {
	l, err := forPlatform(runtime.GOOS)
	if err != nil {
		return false
	}
	return l.enabled()
}

// ============ FILE-BASED LAUNCHERS ============

// launchAgent is a macOS LaunchAgents plist
type launchAgent struct{ path string }

func (l launchAgent) enable(execPath string) error { return writeFile(l.path, plist(execPath)) }
func (l launchAgent) disable() error               { return removeFile(l.path) }
func (l launchAgent) enabled() bool                { return exists(l.path) }

// autostartEntry is an XDG autostart desktop entry
type autostartEntry struct{ path string }

func (a autostartEntry) enable(execPath string) error { return writeFile(a.path, desktopEntry(execPath)) }
func (a autostartEntry) disable() error               { return removeFile(a.path) }
func (a autostartEntry) enabled() bool                { return exists(a.path) }

func plist(execPath string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
        <string>%s</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
</dict>
</plist>
`, appID, execPath)
}

func desktopEntry(execPath string) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec="%s"
Hidden=false
NoDisplay=false
X-GNOME-Autostart-enabled=true
`, appName, execPath)
}

func userPath(elem ...string) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(append([]string{home}, elem...)...)
}

func autostartPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = userPath(".config")
	}
	return filepath.Join(configHome, "autostart", fileStem+".desktop")
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func removeFile(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil // Already disabled
	}
	return err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ============ WINDOWS ============

const runKeyPath = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// runKey is the per-user Run registry key, edited through reg.exe
type runKey struct{}

func (runKey) enable(execPath string) error {
	return exec.Command("reg", "add", runKeyPath, "/v", appName, "/t", "REG_SZ", "/d", execPath, "/f").Run()
}

func (runKey) disable() error {
	output, err := exec.Command("reg", "delete", runKeyPath, "/v", appName, "/f").CombinedOutput()
	// A missing value means it is already disabled
	if err != nil && !strings.Contains(string(output), "unable to find") {
		return err
	}
	return nil
}

func (runKey) enabled() bool {
	return exec.Command("reg", "query", runKeyPath, "/v", appName).Run() == nil
}
