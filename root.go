package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lolhop/ffmpeg-tools/internal/compiler"
	"github.com/lolhop/ffmpeg-tools/internal/config"
	"github.com/lolhop/ffmpeg-tools/internal/errs"
	"github.com/lolhop/ffmpeg-tools/internal/ffmpeg"
	"github.com/lolhop/ffmpeg-tools/internal/logging"
	"github.com/lolhop/ffmpeg-tools/internal/media"
	"github.com/lolhop/ffmpeg-tools/internal/notify"
	"github.com/lolhop/ffmpeg-tools/internal/processor"
)

// cliContext carries what the subcommands share once the root has loaded
// settings.
type cliContext struct {
	viper    *viper.Viper
	cfgFile  string
	settings config.Settings
	log      *zap.Logger
	closeLog func()
}

func newRootCommand() *cobra.Command {
	ctx := &cliContext{viper: viper.New(), log: zap.NewNop(), closeLog: func() {}}

	rootCmd := &cobra.Command{
		Use:   "ffmpeg-tools",
		Short: "Turn media options into a single ffmpeg run",
		Long: fmt.Sprintf(`ffmpeg-tools rescales, speeds up, converts and compresses media files by
compiling the chosen options into one ffmpeg invocation. The output is written
next to the input with the applied options encoded in its name.

When no input is given, the first existing file of a matching kind listed in
$%s is used.

Examples:
  # Scale a video to 1280 pixels wide, keeping the aspect ratio
  ffmpeg-tools rescale -i clip.mp4 --width 1280

  # Play audio twice as fast
  ffmpeg-tools speed -i talk.mp3 --speed 2

  # Show what would run without running it
  ffmpeg-tools convert -i clip.mp4 --format mkv --codec libx264 --max-quality --dry-run`,
			media.RecentEnv),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.closeLog()
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errs.Invalid("%v", err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ctx.cfgFile, "config", "", "config file (default is $HOME/.ffmpeg-tools/config.yaml)")
	flags.String("ffmpeg", ffmpeg.DefaultBinary, "path to the ffmpeg binary")
	flags.BoolP("verbose", "v", false, "enable debug logging, including ffmpeg's own output")
	flags.String("log-file", "", "also write JSON logs to this file")
	flags.Bool("no-clobber", false, "refuse to overwrite an existing output file")
	flags.Bool("probe", true, "probe the input with ffprobe for its audio sample rate")

	_ = ctx.viper.BindPFlag("ffmpeg_path", flags.Lookup("ffmpeg"))
	_ = ctx.viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = ctx.viper.BindPFlag("log_file", flags.Lookup("log-file"))
	_ = ctx.viper.BindPFlag("no_clobber", flags.Lookup("no-clobber"))
	_ = ctx.viper.BindPFlag("probe", flags.Lookup("probe"))

	rootCmd.AddCommand(newRescaleCommand(ctx))
	rootCmd.AddCommand(newSpeedCommand(ctx))
	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newCompressCommand(ctx))
	rootCmd.AddCommand(newPresetsCommand())

	return rootCmd
}

func (c *cliContext) load(cmd *cobra.Command) error {
	settings, err := config.Load(c.viper, c.cfgFile)
	if err != nil {
		return err
	}
	c.settings = settings

	log, closer, err := logging.New(logging.Options{
		Verbose: settings.Verbose,
		File:    settings.LogFile,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	c.log = log
	c.closeLog = closer

	c.log.Debug("settings loaded",
		zap.String("ffmpeg", settings.FFmpegPath),
		zap.Int("sample_rate", settings.SampleRate),
		zap.Bool("no_clobber", settings.NoClobber))
	return nil
}

func (c *cliContext) runner(out io.Writer) *processor.Runner {
	notifier := notify.Multi{notify.Console{W: out}}
	if c.settings.Verbose || c.settings.LogFile != "" {
		notifier = append(notifier, notify.Log{Logger: c.log})
	}
	return processor.NewRunner(
		c.settings,
		ffmpeg.NewProcessor(c.settings.FFmpegPath, c.log),
		notifier,
		c.log,
	)
}

// jobFlags are shared by every job command.
type jobFlags struct {
	input        string
	dryRun       bool
	outputFormat string
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input media file")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the compiled command instead of running it")
	cmd.Flags().StringVar(&f.outputFormat, "output-format", "text", "dry-run output: text, json or yaml")
}

// resolveInput takes --input, then the first positional argument, then the
// most recent matching file from the environment.
func (f *jobFlags) resolveInput(args []string, kinds ...media.Kind) (string, error) {
	if f.input != "" {
		return f.input, nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	if p, ok := media.Candidate(media.RecentFromEnv(), kinds...); ok {
		return p, nil
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return "", errs.Invalid("no input given and no recent %s file found", strings.Join(names, " or "))
}

func (c *cliContext) execute(cmd *cobra.Command, f *jobFlags, input string, op compiler.Operation) error {
	r := c.runner(cmd.OutOrStdout())

	if f.dryRun {
		job, err := r.Prepare(input, op)
		if err != nil {
			return err
		}
		return writeJob(cmd.OutOrStdout(), f.outputFormat, c.settings.FFmpegPath, job)
	}

	_, err := r.Process(cmd.Context(), input, op)
	return err
}
