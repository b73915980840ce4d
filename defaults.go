package nbenv

import "time"

// Defaults for the course environment. Every value can be overridden with
// the corresponding Option.
const (
	// DefaultEnvDirName is the virtual environment directory created in
	// the workspace when no explicit directory is configured.
	DefaultEnvDirName = "ds101_env"

	// DefaultKernelName is the Jupyter kernelspec name registered for the
	// environment.
	DefaultKernelName = "ds101"

	// DefaultKernelDisplayName is the human-readable kernel name shown in
	// notebook frontends.
	DefaultKernelDisplayName = "Python (Digital Studies 101)"

	// DefaultCommandTimeout bounds each individual external command (venv
	// creation, a single pip install, kernel registration, one extension
	// install). Large wheels such as torch can take a while on slow links.
	DefaultCommandTimeout = 10 * time.Minute
)

// DefaultPythonCandidates returns the interpreter names probed, in order,
// when no explicit interpreter is configured.
func DefaultPythonCandidates() []string {
	return []string{"python3", "python"}
}

// DefaultPackages returns the course package list in install order. The
// notebook toolchain comes first so a partially failed run still yields a
// usable kernel.
func DefaultPackages() []Package {
	return []Package{
		{Name: "ipykernel"},
		{Name: "jupyterlab"},
		{Name: "jupyter"},
		{Name: "ipywidgets"},
		{Name: "notebook"},
		{Name: "pandas"},
		{Name: "numpy"},
		{Name: "matplotlib"},
		{Name: "seaborn"},
		{Name: "plotly"},
		{Name: "mapclassify"},
		{Name: "tqdm"},
		{Name: "praw"},
		{Name: "nltk"},
		{Name: "spacy"},
		{Name: "geoparser"},
		{Name: "transformers"},
		{Name: "torch"},
		{Name: "scipy"},
		{Name: "scikit-learn"},
		{Name: "cryptography"},
		{Name: "requests"},
	}
}

// DefaultExtensions returns the editor extension identifiers installed for
// the course, in install order.
func DefaultExtensions() []string {
	return []string{
		"ms-python.python",
		"ms-python.pylint",
		"ms-toolsai.jupyter",
		"ms-toolsai.jupyter-keymap",
		"ms-toolsai.jupyter-renderers",
		"mechatroner.rainbow-csv",
		"GrapeCity.gc-excelviewer",
		"ms-vscode.vscode-json",
		"redhat.vscode-yaml",
		"yzhang.markdown-all-in-one",
		"shd101wyy.markdown-preview-enhanced",
		"ms-vscode.vscode-typescript-next",
		"ms-vscode-remote.vscode-remote-extensionpack",
		"streetsidesoftware.code-spell-checker",
	}
}
