// Package store provides the persistence collaborators of the engine: a
// local file and the config server's REST API.
package store

import (
	"context"
	"sync"

	"github.com/j0KZ/K2-controller-design-sub000/internal/config"
)

// Store fetches and persists the configuration document
type Store interface {
	Load(ctx context.Context) (*config.Document, error)
	Save(ctx context.Context, doc *config.Document) error
}

// File persists the document to a JSON file on disk
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a store backed by the file at path
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file the store writes to
func (f *File) Path() string {
	return f.path
}

func (f *File) Load(ctx context.Context) (*config.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return config.Load(f.path)
}

func (f *File) Save(ctx context.Context, doc *config.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return config.Save(f.path, doc)
}
