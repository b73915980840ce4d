package pytool_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dstudies/nbenv/internal/pytool"
	"github.com/dstudies/nbenv/internal/runner"
)

// fakeRunner returns a canned result for every command.
type fakeRunner struct {
	output string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, _ runner.Spec) (runner.Result, error) {
	return runner.Result{Output: f.output, Duration: time.Millisecond}, f.err
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in      string
		want    pytool.Version
		wantErr bool
	}{
		"full":              {in: "3.12.1", want: pytool.Version{Major: 3, Minor: 12, Patch: 1}},
		"major minor":       {in: "3.8", want: pytool.Version{Major: 3, Minor: 8}},
		"trailing newline":  {in: "3.11.4\n", want: pytool.Version{Major: 3, Minor: 11, Patch: 4}},
		"empty":             {in: "", wantErr: true},
		"single component":  {in: "3", wantErr: true},
		"too many parts":    {in: "3.8.1.2", wantErr: true},
		"non numeric":       {in: "3.x.1", wantErr: true},
		"negative":          {in: "3.-1.0", wantErr: true},
		"interpreter error": {in: "Traceback (most recent call last)", wantErr: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := pytool.ParseVersion(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseVersion(%q) error = nil, want error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestVersion_AtLeast(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		v          pytool.Version
		maj, min   int
		wantResult bool
	}{
		"equal":              {v: pytool.Version{Major: 3, Minor: 8}, maj: 3, min: 8, wantResult: true},
		"newer minor":        {v: pytool.Version{Major: 3, Minor: 12}, maj: 3, min: 8, wantResult: true},
		"older minor":        {v: pytool.Version{Major: 3, Minor: 7}, maj: 3, min: 8, wantResult: false},
		"newer major":        {v: pytool.Version{Major: 4, Minor: 0}, maj: 3, min: 8, wantResult: true},
		"older major":        {v: pytool.Version{Major: 2, Minor: 7}, maj: 3, min: 8, wantResult: false},
		"patch is irrelevant": {v: pytool.Version{Major: 3, Minor: 8, Patch: 19}, maj: 3, min: 8, wantResult: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := tc.v.AtLeast(tc.maj, tc.min); got != tc.wantResult {
				t.Errorf("%v.AtLeast(%d, %d) = %v, want %v", tc.v, tc.maj, tc.min, got, tc.wantResult)
			}
		})
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()

	t.Run("parses probe output", func(t *testing.T) {
		t.Parallel()

		v, err := pytool.Probe(context.Background(), &fakeRunner{output: "3.11.9\n"}, "/usr/bin/python3")
		if err != nil {
			t.Fatalf("Probe() error: %v", err)
		}
		want := pytool.Version{Major: 3, Minor: 11, Patch: 9}
		if v != want {
			t.Errorf("Probe() = %v, want %v", v, want)
		}
	})

	t.Run("propagates command failure", func(t *testing.T) {
		t.Parallel()

		probeErr := errors.New("exec format error")
		_, err := pytool.Probe(context.Background(), &fakeRunner{err: probeErr}, "/usr/bin/python3")
		if !errors.Is(err, probeErr) {
			t.Errorf("Probe() error = %v, want wrapped %v", err, probeErr)
		}
	})

	t.Run("rejects garbage output", func(t *testing.T) {
		t.Parallel()

		_, err := pytool.Probe(context.Background(), &fakeRunner{output: "Python 3.11.9"}, "/usr/bin/python3")
		if err == nil {
			t.Error("Probe() error = nil, want parse error")
		}
	})
}

func TestFind(t *testing.T) {
	t.Parallel()

	t.Run("no candidates resolve", func(t *testing.T) {
		t.Parallel()

		_, err := pytool.Find("definitely-not-a-real-binary-name-1", "definitely-not-a-real-binary-name-2")
		if !errors.Is(err, pytool.ErrNotFound) {
			t.Errorf("Find() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("empty candidates skipped", func(t *testing.T) {
		t.Parallel()

		_, err := pytool.Find("", "")
		if !errors.Is(err, pytool.ErrNotFound) {
			t.Errorf("Find() error = %v, want ErrNotFound", err)
		}
	})
}

func TestVenvPythonFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		goos string
		want string
	}{
		"linux":   {goos: "linux", want: filepath.Join("env", "bin", "python")},
		"darwin":  {goos: "darwin", want: filepath.Join("env", "bin", "python")},
		"windows": {goos: "windows", want: filepath.Join("env", "Scripts", "python.exe")},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := pytool.VenvPythonFor(tc.goos, "env"); got != tc.want {
				t.Errorf("venvPythonFor(%q) = %q, want %q", tc.goos, got, tc.want)
			}
		})
	}
}
