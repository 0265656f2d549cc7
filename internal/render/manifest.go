// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	"go.yaml.in/yaml/v3"
)

// manifestFile lives in the LaTeX output directory next to the documents
// it describes.
const manifestFile = "render-manifest.yaml"

// Manifest records the digest of every document that was typeset
// successfully, keyed by document file name.
type Manifest struct {
	Documents map[string]ManifestEntry `yaml:"documents"`
}

// ManifestEntry is one successfully typeset document.
type ManifestEntry struct {
	BLAKE3     string    `yaml:"blake3"`
	RenderedAt time.Time `yaml:"rendered_at"`
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// LoadManifest reads the manifest in dir. A missing file yields an empty
// manifest.
func LoadManifest(dir string) (*Manifest, error) {
	m := &Manifest{Documents: map[string]ManifestEntry{}}

	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading render manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing render manifest: %w", err)
	}
	if m.Documents == nil {
		m.Documents = map[string]ManifestEntry{}
	}
	return m, nil
}

// Unchanged reports whether name was last typeset from a document with
// the given digest.
func (m *Manifest) Unchanged(name, digest string) bool {
	e, ok := m.Documents[name]
	return ok && e.BLAKE3 == digest
}

// Record stores the digest for name.
func (m *Manifest) Record(name, digest string, at time.Time) {
	m.Documents[name] = ManifestEntry{BLAKE3: digest, RenderedAt: at.UTC()}
}

// Save writes the manifest to dir, replacing the previous file in one
// rename.
func (m *Manifest) Save(dir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding render manifest: %w", err)
	}
	tmp, err := os.CreateTemp(dir, manifestFile+".*")
	if err != nil {
		return fmt.Errorf("writing render manifest: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing render manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing render manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, manifestFile)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing render manifest: %w", err)
	}
	return nil
}
