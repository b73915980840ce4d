// Package manifest parses the optional YAML manifest that overrides the
// built-in package and extension lists.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dstudies/nbenv/internal/sentinel"
)

// ErrEmptyPackageName is returned by Validate for a package entry without a name.
const ErrEmptyPackageName = sentinel.Error("package name must not be empty")

// ErrDuplicatePackage is returned by Validate when a package name appears twice.
const ErrDuplicatePackage = sentinel.Error("duplicate package name")

// ErrEmptyExtensionID is returned by Validate for an empty extension identifier.
const ErrEmptyExtensionID = sentinel.Error("extension identifier must not be empty")

// ErrDuplicateExtension is returned by Validate when an extension identifier appears twice.
const ErrDuplicateExtension = sentinel.Error("duplicate extension identifier")

// Package is one entry of the ordered install list. Version, when set,
// is a pip version constraint including its operator (e.g. ">=1.26").
type Package struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
}

// Spec returns the pip requirement string for the package.
func (p Package) Spec() string {
	return p.Name + p.Version
}

// Kernel holds the Jupyter kernel registration identity.
type Kernel struct {
	Name        string `yaml:"name,omitempty"`
	DisplayName string `yaml:"display_name,omitempty"`
}

// Manifest is the on-disk YAML document. All fields are optional; zero
// values mean "use the built-in default".
type Manifest struct {
	EnvDir     string    `yaml:"env_dir,omitempty"`
	Kernel     Kernel    `yaml:"kernel,omitempty"`
	Packages   []Package `yaml:"packages,omitempty"`
	Extensions []string  `yaml:"extensions,omitempty"`
}

// Load reads and validates a manifest file. Unknown YAML fields are
// rejected so typos (e.g. "extentions") fail loudly instead of silently
// falling back to defaults.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is user-supplied by design (CLI flag)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest bytes and validates the result.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty document: everything defaults.
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks list entries for empty names and duplicates. Order is
// preserved and meaningful (install order), so duplicates are an error
// rather than being collapsed.
func (m *Manifest) Validate() error {
	seenPkg := make(map[string]struct{}, len(m.Packages))
	for i, p := range m.Packages {
		if p.Name == "" {
			return fmt.Errorf("packages[%d]: %w", i, ErrEmptyPackageName)
		}
		if _, dup := seenPkg[p.Name]; dup {
			return fmt.Errorf("packages[%d] %q: %w", i, p.Name, ErrDuplicatePackage)
		}
		seenPkg[p.Name] = struct{}{}
	}

	seenExt := make(map[string]struct{}, len(m.Extensions))
	for i, id := range m.Extensions {
		if id == "" {
			return fmt.Errorf("extensions[%d]: %w", i, ErrEmptyExtensionID)
		}
		if _, dup := seenExt[id]; dup {
			return fmt.Errorf("extensions[%d] %q: %w", i, id, ErrDuplicateExtension)
		}
		seenExt[id] = struct{}{}
	}
	return nil
}
