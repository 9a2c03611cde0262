// Package compiler turns a JobRequest into the ffmpeg argument vector and the
// output path the run will produce.
//
// Compile is pure: it does not look at the filesystem or start processes, and
// equal requests always yield identical results. Existence of the input and
// collisions of the output are the caller's business.
package compiler

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/lolhop/ffmpeg-tools/internal/errs"
	"github.com/lolhop/ffmpeg-tools/internal/media"
)

const (
	// InputFlag precedes the input path, always the first argument.
	InputFlag = "-i"
	// OverwriteFlag precedes the output path, always the last two arguments.
	OverwriteFlag = "-y"
)

// CompiledJob is the result of compiling a JobRequest.
type CompiledJob struct {
	Operation  string   `json:"operation" yaml:"operation"`
	InputPath  string   `json:"input" yaml:"input"`
	OutputPath string   `json:"output" yaml:"output"`
	Argv       []string `json:"argv" yaml:"argv"`
}

// OverwritesInput reports whether the run would write over its own input.
// Compile does not reject this; see processor.Runner.
func (j CompiledJob) OverwritesInput() bool {
	return filepath.Clean(j.OutputPath) == filepath.Clean(j.InputPath)
}

// Compile validates req and builds its argument vector and output path.
func Compile(req JobRequest) (CompiledJob, error) {
	if req.InputPath == "" {
		return CompiledJob{}, errs.Invalid("empty input path")
	}
	if req.Op == nil {
		return CompiledJob{}, errs.Invalid("no operation given")
	}
	if req.Kind == media.Undetermined {
		return CompiledJob{}, errs.Unsupported("%s of a file with undetermined media kind", req.Op.Name())
	}
	if err := req.Op.validate(req.Kind); err != nil {
		return CompiledJob{}, err
	}

	var (
		p   plan
		err error
	)
	switch op := req.Op.(type) {
	case Rescale:
		p, err = compileRescale(req.Kind, op)
	case *Rescale:
		p, err = compileRescale(req.Kind, *op)
	case ChangeSpeed:
		p, err = compileSpeed(req.Kind, op)
	case *ChangeSpeed:
		p, err = compileSpeed(req.Kind, *op)
	case Convert:
		p, err = compileConvert(req.Kind, op)
	case *Convert:
		p, err = compileConvert(req.Kind, *op)
	case Compress:
		p, err = compileCompress(req.Kind, op)
	case *Compress:
		p, err = compileCompress(req.Kind, *op)
	default:
		return CompiledJob{}, errs.Unsupported("operation %T", req.Op)
	}
	if err != nil {
		return CompiledJob{}, err
	}

	out := outputPath(req.InputPath, p.suffix, p.ext)
	argv := make([]string, 0, len(p.args)+4)
	argv = append(argv, InputFlag, req.InputPath)
	argv = append(argv, p.args...)
	argv = append(argv, OverwriteFlag, out)

	return CompiledJob{
		Operation:  req.Op.Name(),
		InputPath:  req.InputPath,
		OutputPath: out,
		Argv:       argv,
	}, nil
}

// plan is what an operation contributes: the arguments between input and
// output, the filename suffix tokens and, for Convert, a new extension.
type plan struct {
	args   []string
	suffix []string
	ext    string
}

// outputPath puts base.suffix.ext next to the input. An empty ext keeps the
// input's extension as written.
func outputPath(input string, suffix []string, ext string) string {
	dir := filepath.Dir(input)
	name := filepath.Base(input)
	origExt := filepath.Ext(name)
	base := strings.TrimSuffix(name, origExt)

	if ext == "" {
		ext = origExt
	} else {
		ext = "." + ext
	}

	parts := append([]string{base}, suffix...)
	return filepath.Join(dir, strings.Join(parts, ".")+ext)
}

// formatFloat prints the shortest decimal that round-trips: 2, 0.5, 1.25.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func inRange[T constraints.Ordered](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

func checkRange[T constraints.Ordered](name string, v, lo, hi T) error {
	if !inRange(v, lo, hi) {
		return errs.Invalid("%s %v out of range [%v, %v]", name, v, lo, hi)
	}
	return nil
}

func checkFactor(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.Invalid("%s is not a number", name)
	}
	return checkRange(name, v, MinSpeed, MaxSpeed)
}

func unsupported(op Operation, kind media.Kind) error {
	return errs.Unsupported("%s is not available for %s files", op.Name(), kind)
}

// Summary renders a compiled job as a one-line description.
func (j CompiledJob) Summary() string {
	return fmt.Sprintf("%s: %s -> %s", j.Operation, filepath.Base(j.InputPath), filepath.Base(j.OutputPath))
}
