package nbenv

import (
	"context"
	"fmt"

	"github.com/dstudies/nbenv/internal/engine"
)

// NewBootstrapper returns a Bootstrapper configured with the course
// defaults, adjusted by the given options. The returned value is single
// use.
func NewBootstrapper(opts ...Option) Bootstrapper {
	cfg := engine.Config{
		EnvDir:            DefaultEnvDirName,
		WorkspaceDir:      ".",
		PythonCandidates:  DefaultPythonCandidates(),
		Packages:          DefaultPackages(),
		KernelName:        DefaultKernelName,
		KernelDisplayName: DefaultKernelDisplayName,
		CommandTimeout:    DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	eng, err := engine.NewBootstrap(cfg)
	if err != nil {
		// Options validate their arguments, so an invalid config here is a
		// bug in this package rather than a caller mistake.
		panic(fmt.Sprintf("nbenv: invalid bootstrap configuration: %v", err))
	}
	return &bootstrapper{eng: eng}
}

// NewExtensionInstaller returns an ExtensionInstaller configured with the
// course extension list, adjusted by the given options. The returned value
// is single use.
func NewExtensionInstaller(opts ...ExtensionOption) ExtensionInstaller {
	cfg := engine.ExtensionConfig{
		Extensions:     DefaultExtensions(),
		CommandTimeout: DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	eng, err := engine.NewExtensionInstall(cfg)
	if err != nil {
		panic(fmt.Sprintf("nbenv: invalid extension configuration: %v", err))
	}
	return &extensionInstaller{eng: eng}
}

type bootstrapper struct {
	eng *engine.Bootstrap
}

func (b *bootstrapper) Run(ctx context.Context) (*Report, error) {
	return b.eng.Run(ctx)
}

type extensionInstaller struct {
	eng *engine.ExtensionInstall
}

func (e *extensionInstaller) Run(ctx context.Context) (*ExtensionReport, error) {
	return e.eng.Run(ctx)
}
