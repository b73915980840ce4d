package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/dstudies/nbenv/internal/runner"
)

// nltkDownloadProgram downloads the NLTK data packages the course lessons
// use. SSL verification is relaxed the same way the NLTK documentation
// recommends for machines with incomplete certificate stores.
const nltkDownloadProgram = `
import nltk
import ssl

try:
    _create_unverified_https_context = ssl._create_unverified_context
except AttributeError:
    pass
else:
    ssl._create_default_https_context = _create_unverified_https_context

for package in ["punkt", "vader_lexicon"]:
    nltk.download(package, quiet=True)
`

// resource is one post-install download performed with the environment's
// interpreter. All resources are best-effort: a failure is recorded and
// the remaining resources still run.
type resource struct {
	name    string
	args    []string
	timeout time.Duration // zero means the engine's command timeout
}

// resourceDownloadTimeout is the default bound for large resource
// downloads (spaCy models, the GeoNames database is around a gigabyte).
const resourceDownloadTimeout = 30 * time.Minute

// resources returns the NLP resource setup list in execution order.
func resources() []resource {
	return []resource{
		{name: "nltk-data", args: []string{"-c", nltkDownloadProgram}},
		{name: "spacy-en_core_web_sm", args: []string{"-m", "spacy", "download", "en_core_web_sm"}, timeout: resourceDownloadTimeout},
		{name: "spacy-en_core_web_md", args: []string{"-m", "spacy", "download", "en_core_web_md"}, timeout: resourceDownloadTimeout},
		{name: "geonames", args: []string{"-m", "geoparser", "download", "geonames"}, timeout: resourceDownloadTimeout},
	}
}

// setupResources downloads NLP data into the environment: NLTK corpora,
// spaCy models, and the geoparser GeoNames database. Per-resource
// failures are recorded and skipped past; only context cancellation
// stops the loop.
func (b *Bootstrap) setupResources(ctx context.Context, report *Report, venvPython, logDir string) error {
	log := Logger()
	for _, rsc := range resources() {
		if ctx.Err() != nil {
			return fmt.Errorf("setup resources: %w", ctx.Err())
		}

		timeout := rsc.timeout
		if timeout == 0 {
			timeout = b.cfg.CommandTimeout
		}
		res, err := b.run.Run(ctx, runner.Spec{
			Name:    "resource-" + rsc.name,
			Path:    venvPython,
			Args:    rsc.args,
			Timeout: timeout,
			LogDir:  logDir,
		})
		report.Resources = append(report.Resources, ItemResult{
			Name:     rsc.name,
			Err:      err,
			Output:   res.Output,
			Duration: res.Duration,
		})
		if err != nil {
			log.Warn("resource setup failed; it can be installed later",
				"resource", rsc.name, "error", err)
			continue
		}
		log.Info("resource ready", "resource", rsc.name, "duration", res.Duration)
	}
	return nil
}
