package infernal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// Runner invokes cmsearch as a subprocess. Configure it with the With*
// builders; the zero Runner has no covariance model and cannot search.
type Runner struct {
	cmPath string
	evalue float64
	cpu    int
}

// NewRunner returns a runner with the default reporting threshold
// (E-value 1e-5) and one worker per available CPU.
func NewRunner() *Runner {
	return &Runner{evalue: 1e-5, cpu: runtime.NumCPU()}
}

// WithCM sets the covariance model file.
func (r *Runner) WithCM(path string) *Runner {
	r.cmPath = path
	return r
}

// WithEValue sets the E-value reporting threshold.
func (r *Runner) WithEValue(e float64) *Runner {
	r.evalue = e
	return r
}

// WithCPU sets the number of worker CPUs passed to cmsearch.
func (r *Runner) WithCPU(n int) *Runner {
	r.cpu = n
	return r
}

// Search runs cmsearch over a FASTA file and parses its tabular output.
// The alignment output stream is suppressed; hits come back without
// aligned rows.
func (r *Runner) Search(ctx context.Context, fastaPath string) ([]Hit, error) {
	if r.cmPath == "" {
		return nil, errors.New("no covariance model specified")
	}
	if _, err := os.Stat(fastaPath); err != nil {
		return nil, fmt.Errorf("fasta file: %w", err)
	}

	cmd := exec.CommandContext(ctx, "cmsearch",
		"--tblout", "/dev/stdout",
		"-o", "/dev/null",
		"--cpu", strconv.Itoa(r.cpu),
		"-E", strconv.FormatFloat(r.evalue, 'g', -1, 64),
		r.cmPath,
		fastaPath,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, errors.New("cmsearch not found; install Infernal from http://eddylab.org/infernal/")
		}
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("cmsearch failed: %s", bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, fmt.Errorf("cmsearch failed: %w", err)
	}

	hits, _, err := ParseTblout(&stdout)
	return hits, err
}
