package content

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk team list.
type Manifest struct {
	Section string     `yaml:"section"`
	Items   []MenuItem `yaml:"items"`
}

// LoadManifest reads a YAML manifest. Relative image paths are resolved
// against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range m.Items {
		m.Items[i].Image = resolveImage(dir, m.Items[i].Image)
	}
	return m, nil
}

// ParseManifest decodes manifest YAML. A missing section falls back to
// DefaultSection.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Section == "" {
		m.Section = DefaultSection
	}
	return &m, nil
}

// ItemsOrDefault returns the manifest items or the placeholder list.
func (m *Manifest) ItemsOrDefault() []MenuItem {
	if m == nil {
		return DefaultItems()
	}
	return ItemsOrDefault(m.Items)
}

func resolveImage(dir, ref string) string {
	if ref == "" || filepath.IsAbs(ref) {
		return ref
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return ref
	}
	return filepath.Join(dir, ref)
}
