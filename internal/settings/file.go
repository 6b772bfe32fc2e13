package settings

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const settingsFile = "settings.json"

// DefaultFilePath is settings.json under the user config directory.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "yamatools", settingsFile), nil
}

type fileDoc struct {
	Defaults map[string]json.RawMessage `json:"defaults"`
	Values   map[string]json.RawMessage `json:"values"`
}

// FileStore keeps settings in a single JSON document. The file itself lives
// in the user's config directory, so every value is user scoped.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func fileKey(namespace, key string) string {
	return namespace + "." + key
}

func (s *FileStore) Register(_ context.Context, def Definition) error {
	raw, err := encode(def.Default)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Defaults[fileKey(def.Namespace, def.Key)] = json.RawMessage(raw)
	return s.save(doc)
}

func (s *FileStore) Get(_ context.Context, namespace, key string) (any, bool, error) {
	s.mu.Lock()
	doc, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	k := fileKey(namespace, key)
	raw, ok := doc.Values[k]
	if !ok {
		raw, ok = doc.Defaults[k]
	}
	if !ok {
		return nil, false, nil
	}
	v, err := decode(string(raw))
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *FileStore) Set(_ context.Context, namespace, key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Values[fileKey(namespace, key)] = json.RawMessage(raw)
	return s.save(doc)
}

// Reset drops every stored value in namespace, keeping the defaults.
func (s *FileStore) Reset(_ context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	prefix := namespace + "."
	for k := range doc.Values {
		if strings.HasPrefix(k, prefix) {
			delete(doc.Values, k)
		}
	}
	return s.save(doc)
}

func (s *FileStore) load() (fileDoc, error) {
	doc := fileDoc{Defaults: map[string]json.RawMessage{}, Values: map[string]json.RawMessage{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, err
	}
	if doc.Defaults == nil {
		doc.Defaults = map[string]json.RawMessage{}
	}
	if doc.Values == nil {
		doc.Values = map[string]json.RawMessage{}
	}
	return doc, nil
}

func (s *FileStore) save(doc fileDoc) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
