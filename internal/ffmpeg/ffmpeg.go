package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/lolhop/ffmpeg-tools/internal/errs"
)

// DefaultBinary is looked up on PATH when no location is configured.
const DefaultBinary = "ffmpeg"

// Processor runs the transcoding binary and probes inputs.
type Processor struct {
	binary string
	log    *zap.Logger
	probe  func(path string) (string, error)
}

// NewProcessor creates a processor for the binary at path. An empty path
// selects DefaultBinary.
func NewProcessor(binary string, log *zap.Logger) *Processor {
	if binary == "" {
		binary = DefaultBinary
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		binary: binary,
		log:    log,
		probe: func(path string) (string, error) {
			return ffmpeg.Probe(path)
		},
	}
}

// Binary returns the configured executable.
func (p *Processor) Binary() string {
	return p.binary
}

// Run starts the binary with argv exactly as given and waits for it. Stderr
// is read line by line while the process runs; every line is logged at debug
// level and kept for the error returned on a non-zero exit.
//
// There is no retry, and a partially written output is left in place.
func (p *Processor) Run(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, p.binary, argv...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errors.Wrap(err, "attach stderr")
	}

	p.log.Debug("starting process", zap.String("command", CommandLine(p.binary, argv)))
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(errs.ErrProcessLaunch, "start %s: %v", p.binary, err)
	}

	var captured bytes.Buffer
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		captured.WriteString(line)
		captured.WriteByte('\n')
		p.log.Debug("process output", zap.String("line", line))
	}
	if err := scanner.Err(); err != nil {
		p.log.Warn("stderr capture stopped", zap.Error(err))
		_, _ = io.Copy(io.Discard, stderr)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &errs.ExecError{
				Binary:   p.binary,
				ExitCode: exitErr.ExitCode(),
				Stderr:   captured.String(),
			}
		}
		return errors.Wrapf(err, "wait for %s", p.binary)
	}
	return nil
}

// scanLines splits on \n and on the bare \r ffmpeg uses to redraw its
// progress line.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// CommandLine renders binary and argv as a shell-pasteable line.
func CommandLine(binary string, argv []string) string {
	parts := make([]string, 0, len(argv)+1)
	for _, a := range append([]string{binary}, argv...) {
		if a == "" || strings.ContainsAny(a, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
