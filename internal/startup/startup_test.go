package startup

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutostartEntry(t *testing.T) {
	a := autostartEntry{path: filepath.Join(t.TempDir(), "autostart", "k2-controller.desktop")}
	assert.False(t, a.enabled())

	require.NoError(t, a.enable("/opt/k2/k2-controller"))
	assert.True(t, a.enabled())

	require.NoError(t, a.disable())
	assert.False(t, a.enabled())
	require.NoError(t, a.disable(), "disabling twice is fine")
}

func TestLaunchAgent(t *testing.T) {
	l := launchAgent{path: filepath.Join(t.TempDir(), "LaunchAgents", appID+".plist")}
	require.NoError(t, l.enable("/Applications/K2.app/Contents/MacOS/k2"))
	assert.True(t, l.enabled())
	require.NoError(t, l.disable())
	assert.False(t, l.enabled())
}

func TestTemplates(t *testing.T) {
	assert.Contains(t, plist("/bin/k2"), "<string>/bin/k2</string>")
	assert.Contains(t, plist("/bin/k2"), appID)
	assert.Contains(t, desktopEntry("/bin/k 2"), `Exec="/bin/k 2"`)
}

func TestAutostartPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "autostart", "k2-controller.desktop"), autostartPath())
}

func TestForPlatform(t *testing.T) {
	for _, goos := range []string{"darwin", "linux", "windows"} {
		_, err := forPlatform(goos)
		assert.NoError(t, err, goos)
	}
	_, err := forPlatform("plan9")
	assert.Error(t, err)
}
