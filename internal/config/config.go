package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
)

// DeviceConfig holds the MIDI ports of the controller
type DeviceConfig struct {
	Name    string `json:"name"`     // User-friendly name
	InPort  string `json:"in_port"`  // MIDI input port name
	OutPort string `json:"out_port"` // MIDI output port name
	Channel int    `json:"channel"`  // 1-16, the controller's MIDI channel
}

// Document is the configuration document shared with the config server:
// the active profile's bindings plus device settings
type Document struct {
	ID       string        `json:"id"`
	Profile  string        `json:"profile"`
	Device   DeviceConfig  `json:"device"`
	Mappings mapping.Table `json:"mappings"`

	// dirty is true while the document diverges from the last successfully
	// persisted copy. It is never serialized.
	dirty bool
}

// NewDocument creates an empty document with a generated ID
func NewDocument() *Document {
	return &Document{
		ID:      uuid.New().String(),
		Profile: "Default",
		Device: DeviceConfig{
			Name:    "Xone:K2",
			Channel: 15,
		},
		Mappings: mapping.NewTable(),
	}
}

// Dirty reports whether there are unpersisted changes
func (d *Document) Dirty() bool {
	return d.dirty
}

// MarkDirty flags the document as diverged from the persisted copy
func (d *Document) MarkDirty() {
	d.dirty = true
}

// ClearDirty flags the document as consistent with the persisted copy
func (d *Document) ClearDirty() {
	d.dirty = false
}

// Clone returns a deep copy, including the dirty flag
func (d *Document) Clone() *Document {
	out := *d
	out.Mappings = d.Mappings.Clone()
	return &out
}

// Decode parses a document, filling in defaults for missing fields
func Decode(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	doc.normalize()
	return doc, nil
}

// Encode serializes a document for storage or transport
func Encode(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func (d *Document) normalize() {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Profile == "" {
		d.Profile = "Default"
	}
	// Ensure partitions are not nil
	if d.Mappings.NoteOn == nil {
		d.Mappings.NoteOn = map[int]mapping.Entry{}
	}
	if d.Mappings.CCAbsolute == nil {
		d.Mappings.CCAbsolute = map[int]mapping.Entry{}
	}
	if d.Mappings.CCRelative == nil {
		d.Mappings.CCRelative = map[int]mapping.Entry{}
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "k2-controller"), nil
}

// DocumentPath returns the default path of the document file
func DocumentPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the document from disk, returning a default one if not found
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, err
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Save writes the document to disk. The file is replaced atomically so a
// failed write never leaves a truncated document behind.
func Save(path string, doc *Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := Encode(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
