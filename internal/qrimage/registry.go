package qrimage

import (
	"fmt"
	"path/filepath"
)

// Registry holds writers by name and resolves them by name or file extension.
type Registry struct {
	writers map[string]Writer
	order   []string
	def     string
}

// NewRegistry registers writers in order; the first becomes the default.
func NewRegistry(writers ...Writer) *Registry {
	r := &Registry{writers: make(map[string]Writer)}
	for _, w := range writers {
		r.Add(w)
	}
	return r
}

// DefaultRegistry holds a single PNG writer.
func DefaultRegistry() *Registry {
	return NewRegistry(NewPngWriter())
}

// Add registers w, replacing any writer with the same name.
func (r *Registry) Add(w Writer) {
	name := w.Name()
	if _, ok := r.writers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.writers[name] = w
	if r.def == "" {
		r.def = name
	}
}

// SetDefault makes the named writer the default.
func (r *Registry) SetDefault(name string) error {
	if _, ok := r.writers[name]; !ok {
		return invalidf("invalid writer %q", name)
	}
	r.def = name
	return nil
}

// Default returns the default writer.
func (r *Registry) Default() (Writer, error) {
	w, ok := r.writers[r.def]
	if !ok {
		return nil, invalidf("no default writer registered")
	}
	return w, nil
}

// ByName returns the writer registered as name.
func (r *Registry) ByName(name string) (Writer, error) {
	w, ok := r.writers[name]
	if !ok {
		return nil, invalidf("invalid writer %q", name)
	}
	return w, nil
}

// ByExtension returns the first writer, in registration order, that supports
// ext.
func (r *Registry) ByExtension(ext string) (Writer, error) {
	for _, name := range r.order {
		if w := r.writers[name]; SupportsExtension(w, ext) {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: missing writer for extension %q", ErrUnsupportedExtension, ext)
}

// ByPath resolves a writer from the extension of path.
func (r *Registry) ByPath(path string) (Writer, error) {
	return r.ByExtension(filepath.Ext(path))
}

// Writers lists the registered writers in registration order.
func (r *Registry) Writers() []Writer {
	out := make([]Writer, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.writers[name])
	}
	return out
}
