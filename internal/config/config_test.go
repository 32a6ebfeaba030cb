package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Default", doc.Profile)
	assert.Zero(t, doc.Mappings.Len())
	assert.False(t, doc.Dirty())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k2", "config.json")
	doc := NewDocument()
	doc.Mappings.Set(mapping.Coordinates{Partition: mapping.NoteOn, Key: 36}, mapping.NewEntry(actions.ActionTypeHotkey))
	doc.MarkDirty()

	require.NoError(t, Save(path, doc))
	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, back.ID)
	assert.True(t, doc.Mappings.Equal(&back.Mappings))
	assert.False(t, back.Dirty(), "dirty is not persisted")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDecodeFillsPartitions(t *testing.T) {
	doc, err := Decode([]byte(`{"profile":"Live","mappings":{"note_on":{"36":{"name":"Mute","action":"mute"}}}}`))
	require.NoError(t, err)
	assert.Equal(t, "Live", doc.Profile)
	assert.NotNil(t, doc.Mappings.CCAbsolute)
	assert.NotNil(t, doc.Mappings.CCRelative)
	assert.Equal(t, "Mute", doc.Mappings.NoteOn[36].Name)
}

func TestCloneKeepsDirtyAndIsDeep(t *testing.T) {
	doc := NewDocument()
	doc.MarkDirty()
	cp := doc.Clone()
	assert.True(t, cp.Dirty())

	cp.Mappings.Set(mapping.Coordinates{Partition: mapping.NoteOn, Key: 1}, mapping.NewEntry(actions.ActionTypeMute))
	assert.Zero(t, doc.Mappings.Len())
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("K2_SERVER_URL", "http://localhost:9000")
	t.Setenv("K2_REQUEST_TIMEOUT", "3s")
	t.Setenv("K2_CONFIG_PATH", "/tmp/k2.json")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", s.ServerURL)
	assert.Equal(t, 3*time.Second, s.RequestTimeout)
	assert.Equal(t, "/tmp/k2.json", s.DocumentPath)
	assert.Equal(t, "127.0.0.1:8765", s.ListenAddr)
	assert.Equal(t, "k2", s.DeviceType)
}

func TestLoadSettingsInvalid(t *testing.T) {
	t.Setenv("K2_REQUEST_TIMEOUT", "soon")
	_, err := LoadSettings()
	assert.ErrorContains(t, err, "parse env:")
}
