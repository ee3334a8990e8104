package mailer

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// TemplateStore loads and caches templates from a filesystem.
type TemplateStore struct {
	fs    fs.FS
	cache map[string]*Template
	mu    sync.RWMutex
}

// NewTemplateStore creates a store reading templates from filesystem.
// Use os.DirFS(folder) for a template folder on disk.
func NewTemplateStore(filesystem fs.FS) *TemplateStore {
	return &TemplateStore{
		fs:    filesystem,
		cache: make(map[string]*Template),
	}
}

// Load returns the template stored under name.
// Successfully parsed templates are cached; failures are not, so a fixed
// file is picked up by the next call.
func (s *TemplateStore) Load(name string) (*Template, error) {
	s.mu.RLock()
	if cached, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := s.cache[name]; ok {
		return cached, nil
	}

	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %s: invalid path", ErrTemplateNotFound, name)
	}

	content, err := fs.ReadFile(s.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	tmpl, err := ParseTemplate(name, content)
	if err != nil {
		return nil, err
	}

	s.cache[name] = tmpl
	return tmpl, nil
}
