package petrifile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jt05610/statespace"
)

var ErrUnsupported = errors.New("unsupported net file")

// Registry picks a Service by file extension and finds net files in its
// search directories.
type Registry struct {
	SearchDirs []string
	services   map[string]Service
}

func NewRegistry(dirs ...string) *Registry {
	if dirs == nil {
		dirs = []string{"."}
	}
	return &Registry{
		SearchDirs: dirs,
		services:   make(map[string]Service),
	}
}

// WithService registers srv for each extension, given with or without the
// leading dot.
func (r *Registry) WithService(srv Service, exts ...string) *Registry {
	for _, ext := range exts {
		r.services[strings.TrimPrefix(strings.ToLower(ext), ".")] = srv
	}
	return r
}

func (r *Registry) WithSearchDirs(dirs ...string) *Registry {
	r.SearchDirs = append(r.SearchDirs, dirs...)
	return r
}

// Service returns the service for f. Files without an extension are read as
// YAML.
func (r *Registry) Service(f string) (Service, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(f)), ".")
	if ext == "" {
		ext = "yaml"
	}
	srv, ok := r.services[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
	return srv, nil
}

func (r *Registry) find(f string) (string, error) {
	if filepath.IsAbs(f) {
		return f, nil
	}
	for _, dir := range r.SearchDirs {
		p := filepath.Join(dir, f)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("%s: %w", f, os.ErrNotExist)
}

// Build loads the net in f, searching each directory in turn.
func (r *Registry) Build(ctx context.Context, f string) (*petri.Net, error) {
	srv, err := r.Service(f)
	if err != nil {
		return nil, err
	}
	p, err := r.find(f)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	return srv.Load(ctx, file)
}

// Write saves n to the path f using the service for its extension.
func (r *Registry) Write(ctx context.Context, f string, n *petri.Net) error {
	srv, err := r.Service(f)
	if err != nil {
		return err
	}
	file, err := os.Create(f)
	if err != nil {
		return err
	}
	if err := srv.Save(ctx, file, n); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
