package batch

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/suvorovrain/ferari-mobgen/pkg/mobgen"
)

var WriteError = errors.New("error writing map artifact")

// writeBufSize keeps the encoder off the syscall path; the million-mob
// artifacts run to tens of megabytes.
const writeBufSize = 1 << 20

// Result records the outcome of one requested scale.
type Result struct {
	Scale   int
	Path    string
	Bytes   int64
	Elapsed time.Duration
	Err     error
}

// Runner writes one map variant artifact per requested scale.
type Runner struct {
	Gen    *mobgen.Generator
	OutDir string
	Quiet  bool      // suppress progress bars
	Stdout io.Writer // completion notices; defaults to os.Stdout
}

// ArtifactName returns the output filename for a scale.
func ArtifactName(scale int) string {
	return "demo_map_" + strconv.Itoa(scale) + ".json"
}

// Run generates and writes every scale in the given order. A failed scale
// does not stop the ones after it; callers inspect the results for partial
// failure.
func (r *Runner) Run(base mobgen.Document, scales []int) []Result {
	results := make([]Result, 0, len(scales))

	for _, n := range scales {
		res := r.runScale(base, n)
		if res.Err != nil {
			log.Printf("[BATCH] scale %d failed: %v", n, res.Err)
		} else {
			fmt.Fprintf(r.stdout(), "%s created\n", filepath.Base(res.Path))
			log.Printf("[BATCH] wrote %s: %s mobs, %s in %v",
				res.Path,
				humanize.Comma(int64(n)),
				humanize.Bytes(uint64(res.Bytes)),
				res.Elapsed.Round(time.Millisecond))
		}

		results = append(results, res)
	}

	return results
}

func (r *Runner) runScale(base mobgen.Document, n int) Result {
	res := Result{Scale: n, Path: filepath.Join(r.OutDir, ArtifactName(n))}
	start := time.Now()

	bar := r.newBar(n)
	if bar != nil {
		r.Gen.Progress = func(done int) { _ = bar.Set(done) }
		defer func() {
			r.Gen.Progress = nil
			_ = bar.Finish()
		}()
	}

	mobs, err := r.Gen.GenerateMobs(base, n)
	if err != nil {
		res.Err = fmt.Errorf("generate %d mobs: %w", n, err)
		return res
	}

	res.Bytes, res.Err = writeVariant(res.Path, base.Variant(mobs))
	res.Elapsed = time.Since(start)

	return res
}

// writeVariant streams the variant document to path as indented JSON through
// a buffered writer, so peak memory stays bounded by the in-memory mobs table
// rather than a second full serialized copy.
func writeVariant(path string, variant map[string]any) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", WriteError, err)
	}

	buf := bufio.NewWriterSize(file, writeBufSize)
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")

	if err := enc.Encode(variant); err != nil {
		file.Close()
		return 0, fmt.Errorf("%w: encode %s: %w", WriteError, path, err)
	}

	if err := buf.Flush(); err != nil {
		file.Close()
		return 0, fmt.Errorf("%w: flush %s: %w", WriteError, path, err)
	}

	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("%w: close %s: %w", WriteError, path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: stat %s: %w", WriteError, path, err)
	}

	return info.Size(), nil
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}
