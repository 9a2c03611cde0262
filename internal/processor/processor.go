package processor

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lolhop/ffmpeg-tools/internal/compiler"
	"github.com/lolhop/ffmpeg-tools/internal/config"
	"github.com/lolhop/ffmpeg-tools/internal/errs"
	"github.com/lolhop/ffmpeg-tools/internal/ffmpeg"
	"github.com/lolhop/ffmpeg-tools/internal/media"
	"github.com/lolhop/ffmpeg-tools/internal/notify"
)

// Executor is the part of ffmpeg.Processor the runner depends on.
type Executor interface {
	Run(ctx context.Context, argv []string) error
	GetMetadata(path string) (*ffmpeg.Metadata, error)
}

// Runner validates a submission, compiles it and runs the transcoder once.
type Runner struct {
	settings config.Settings
	exec     Executor
	notifier notify.Notifier
	log      *zap.Logger
}

// NewRunner creates a runner. A nil notifier discards events.
func NewRunner(settings config.Settings, exec Executor, notifier notify.Notifier, log *zap.Logger) *Runner {
	if notifier == nil {
		notifier = notify.Multi{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		settings: settings,
		exec:     exec,
		notifier: notifier,
		log:      log,
	}
}

// Result is a finished job.
type Result struct {
	JobID   string
	Job     compiler.CompiledJob
	Elapsed time.Duration
}

// Prepare checks the input, fills in probed values and compiles. It never
// starts the transcoder, so it also backs dry runs.
//
// Compile itself accepts an output equal to the input; Prepare refuses it,
// and refuses an existing output when NoClobber is set.
func (r *Runner) Prepare(inputPath string, op compiler.Operation) (compiler.CompiledJob, error) {
	input, kind, err := media.CheckInput(inputPath)
	if err != nil {
		return compiler.CompiledJob{}, err
	}

	op = r.withSampleRate(input, kind, op)

	job, err := compiler.Compile(compiler.JobRequest{InputPath: input, Kind: kind, Op: op})
	if err != nil {
		return compiler.CompiledJob{}, err
	}

	if job.OverwritesInput() {
		return compiler.CompiledJob{}, errs.Invalid("output %s would overwrite the input", job.OutputPath)
	}
	if r.settings.NoClobber {
		if _, err := os.Stat(job.OutputPath); err == nil {
			return compiler.CompiledJob{}, errs.Invalid("output %s already exists", job.OutputPath)
		}
	}
	return job, nil
}

// withSampleRate resolves the sample rate a pitch-keeping video speed change
// resamples around: probed from the input when enabled, else the configured
// fallback.
func (r *Runner) withSampleRate(input string, kind media.Kind, op compiler.Operation) compiler.Operation {
	var speed compiler.ChangeSpeed
	switch o := op.(type) {
	case compiler.ChangeSpeed:
		speed = o
	case *compiler.ChangeSpeed:
		speed = *o
	default:
		return op
	}
	if kind != media.Video || !speed.MaintainPitch || speed.SampleRate != 0 {
		return op
	}

	speed.SampleRate = r.settings.SampleRate
	if r.settings.Probe {
		meta, err := r.exec.GetMetadata(input)
		switch {
		case err != nil:
			r.log.Warn("probe failed, using configured sample rate",
				zap.String("input", input), zap.Int("sample_rate", speed.SampleRate), zap.Error(err))
		case meta.SampleRate > 0:
			speed.SampleRate = meta.SampleRate
		}
	}
	return speed
}

// Run executes a prepared job and notifies the outcome.
func (r *Runner) Run(ctx context.Context, job compiler.CompiledJob) (Result, error) {
	res := Result{JobID: uuid.NewString(), Job: job}
	log := r.log.With(zap.String("job", res.JobID), zap.String("operation", job.Operation))

	log.Info("transcoding", zap.String("input", job.InputPath), zap.String("output", job.OutputPath))
	log.Debug("command", zap.String("line", ffmpeg.CommandLine(r.settings.FFmpegPath, job.Argv)))

	start := time.Now()
	err := r.exec.Run(ctx, job.Argv)
	res.Elapsed = time.Since(start)
	if err != nil {
		err = errors.WithMessagef(err, "%s %s", job.Operation, job.InputPath)
	}

	r.notifier.Notify(notify.Event{
		JobID:      res.JobID,
		Operation:  job.Operation,
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
		Elapsed:    res.Elapsed,
		Err:        err,
	})
	return res, err
}

// Process prepares and runs one job.
func (r *Runner) Process(ctx context.Context, inputPath string, op compiler.Operation) (Result, error) {
	job, err := r.Prepare(inputPath, op)
	if err != nil {
		return Result{}, err
	}
	return r.Run(ctx, job)
}
