package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Store abstracts profile persistence. The transformer itself only ever
// reads, the write side exists for profile management tooling.
type Store interface {
	List() ([]string, error)
	Load(name string) (*Theme, error)
	Save(t *Theme) error
	SetActive(name string) error
	ActiveName() (string, error)
}

// themeFile is the on-disk YAML shape of a profile.
type themeFile struct {
	Name     string                    `yaml:"name"`
	Settings map[string]any            `yaml:"settings"`
	JSON     map[string]map[string]any `yaml:"json_templates,omitempty"`
}

const activeMarker = ".active"

// FileStore keeps one YAML file per profile in a directory, with a marker
// file recording the active profile name.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Dir, name+".yaml")
}

func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to read themes directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads a stored profile. Values under unknown keys (left behind by
// older schema versions) are dropped, invalid values fail the load.
func (s *FileStore) Load(name string) (*Theme, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("unable to read theme %q: %w", name, err)
	}
	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("unable to parse theme %q: %w", name, err)
	}

	t := New(name)
	for key, v := range tf.Settings {
		if _, known := LookupOption(key); !known {
			continue
		}
		if err := t.Set(key, v); err != nil {
			return nil, err
		}
	}
	for comp, specs := range tf.JSON {
		for specName, tmpl := range specs {
			t.SetOverride(comp, specName, tmpl)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Save persists a profile as a whole, but only after full validation
// passes: no partial state ever reaches disk.
func (s *FileStore) Save(t *Theme) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("unable to create themes directory: %w", err)
	}
	tf := themeFile{
		Name:     t.Name,
		Settings: t.values,
		JSON:     t.overrides,
	}
	if len(tf.JSON) == 0 {
		tf.JSON = nil
	}
	data, err := yaml.Marshal(&tf)
	if err != nil {
		return fmt.Errorf("unable to marshal theme %q: %w", t.Name, err)
	}
	if err := os.WriteFile(s.path(t.Name), data, 0644); err != nil {
		return fmt.Errorf("unable to write theme %q: %w", t.Name, err)
	}
	t.state = StateSaved
	return nil
}

func (s *FileStore) SetActive(name string) error {
	if _, err := os.Stat(s.path(name)); err != nil {
		return fmt.Errorf("theme %q does not exist: %w", name, err)
	}
	return os.WriteFile(filepath.Join(s.Dir, activeMarker), []byte(name), 0644)
}

func (s *FileStore) ActiveName() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, activeMarker))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Resolve loads the profile selected by explicit name, active marker or
// configured name, in that order, falling back to built-in defaults. An
// explicit name must exist, the softer sources tolerate a missing profile
// file. The transform itself is stateless with respect to profile storage:
// the resolved snapshot is passed down explicitly.
func Resolve(s Store, explicit, configured string) (*Theme, error) {
	name := explicit
	if len(name) == 0 && s != nil {
		n, err := s.ActiveName()
		if err != nil {
			return nil, err
		}
		name = n
	}
	if len(name) == 0 {
		name = configured
	}
	if len(name) == 0 || s == nil {
		return New("default"), nil
	}
	t, err := s.Load(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && len(explicit) == 0 {
			return New(name), nil
		}
		return nil, err
	}
	return t, nil
}
