package nbenv

import (
	"github.com/dstudies/nbenv/internal/engine"
	"github.com/dstudies/nbenv/internal/manifest"
)

// Manifest is an optional YAML document overriding the built-in
// environment directory, kernel identity, package list, and extension
// list. All fields are optional; absent fields keep their defaults.
//
//	env_dir: ds101_env
//	kernel:
//	  name: ds101
//	  display_name: Python (Digital Studies 101)
//	packages:
//	  - name: ipykernel
//	  - name: numpy
//	    version: ">=1.26"
//	extensions:
//	  - ms-python.python
type Manifest = manifest.Manifest

// LoadManifest reads and validates a manifest file. Unknown fields and
// duplicate list entries are rejected.
func LoadManifest(path string) (*Manifest, error) {
	return manifest.Load(path)
}

// ManifestOptions converts the bootstrap-relevant manifest fields into
// options for NewBootstrapper. Absent fields produce no option, so
// defaults and earlier options stand.
func ManifestOptions(m *Manifest) []Option {
	var opts []Option
	if m == nil {
		return opts
	}
	if m.EnvDir != "" {
		opts = append(opts, WithEnvDir(m.EnvDir))
	}
	if m.Kernel.Name != "" || m.Kernel.DisplayName != "" {
		k := m.Kernel
		opts = append(opts, func(c *engine.Config) {
			if k.Name != "" {
				c.KernelName = k.Name
			}
			if k.DisplayName != "" {
				c.KernelDisplayName = k.DisplayName
			}
		})
	}
	if m.Packages != nil {
		opts = append(opts, WithPackages(m.Packages...))
	}
	return opts
}

// ManifestExtensionOptions converts the extension-relevant manifest fields
// into options for NewExtensionInstaller.
func ManifestExtensionOptions(m *Manifest) []ExtensionOption {
	var opts []ExtensionOption
	if m == nil {
		return opts
	}
	if m.Extensions != nil {
		opts = append(opts, WithExtensions(m.Extensions...))
	}
	return opts
}
