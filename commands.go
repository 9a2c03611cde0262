package main

import (
	"github.com/spf13/cobra"

	"github.com/lolhop/ffmpeg-tools/internal/compiler"
	"github.com/lolhop/ffmpeg-tools/internal/media"
)

func newRescaleCommand(ctx *cliContext) *cobra.Command {
	var (
		jf         jobFlags
		op         compiler.Rescale
		filter     string
		preset     string
		quality    int
		keepAspect bool
	)

	cmd := &cobra.Command{
		Use:   "rescale [input]",
		Short: "Change the resolution of a video or resize an image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := jf.resolveInput(args, media.Video, media.Image)
			if err != nil {
				return err
			}
			if op.Filter, err = compiler.ParseScaleFilter(filter); err != nil {
				return err
			}
			if op.Preset, err = compiler.ParsePreset(preset); err != nil {
				return err
			}
			// An explicit height means an explicit size unless the user also
			// asked to keep the aspect ratio.
			op.MaintainAspect = keepAspect
			if cmd.Flags().Changed("height") && !cmd.Flags().Changed("keep-aspect") {
				op.MaintainAspect = false
			}
			if cmd.Flags().Changed("quality") {
				op.Quality = compiler.Int(quality)
			}
			return ctx.execute(cmd, &jf, input, op)
		},
	}

	jf.register(cmd)
	cmd.Flags().IntVarP(&op.Width, "width", "W", 0, "target width in pixels")
	cmd.Flags().IntVarP(&op.Height, "height", "H", 0, "target height in pixels")
	cmd.Flags().BoolVar(&keepAspect, "keep-aspect", true, "derive the height from the width")
	cmd.Flags().StringVar(&filter, "filter", string(compiler.Bicubic), "scaling filter: bicubic, bilinear, nearest-neighbor or lanczos")
	cmd.Flags().StringVar(&preset, "preset", string(compiler.DefaultPreset), "video encoding preset")
	cmd.Flags().BoolVar(&op.PreserveAudio, "keep-audio", false, "copy the audio stream without re-encoding")
	cmd.Flags().IntVar(&quality, "quality", 0, "image quality, 1 (best) to 31")
	_ = cmd.MarkFlagRequired("width")

	return cmd
}

func newSpeedCommand(ctx *cliContext) *cobra.Command {
	var (
		jf jobFlags
		op compiler.ChangeSpeed
	)

	cmd := &cobra.Command{
		Use:   "speed [input]",
		Short: "Speed up or slow down a video or audio file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := jf.resolveInput(args, media.Video, media.Audio)
			if err != nil {
				return err
			}
			return ctx.execute(cmd, &jf, input, op)
		},
	}

	jf.register(cmd)
	cmd.Flags().Float64VarP(&op.Speed, "speed", "s", 1, "playback speed factor")
	cmd.Flags().Float64Var(&op.AudioSpeed, "audio-speed", 0, "separate audio speed factor for videos (default: same as --speed)")
	cmd.Flags().BoolVar(&op.MaintainPitch, "keep-pitch", false, "resample audio so its pitch follows the speed")
	cmd.Flags().IntVar(&op.SampleRate, "sample-rate", 0, "audio sample rate used with --keep-pitch (default: probed or configured)")
	_ = cmd.MarkFlagRequired("speed")

	return cmd
}

func newConvertCommand(ctx *cliContext) *cobra.Command {
	var (
		jf      jobFlags
		op      compiler.Convert
		quality int
	)

	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Convert a file to another format of the same media kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := jf.resolveInput(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("quality") {
				op.Quality = compiler.Int(quality)
			}
			return ctx.execute(cmd, &jf, input, op)
		},
	}

	jf.register(cmd)
	cmd.Flags().StringVarP(&op.Format, "format", "f", "", "target format extension, e.g. mkv, flac, webp")
	cmd.Flags().StringVar(&op.Codec, "codec", compiler.DefaultVideoCodec, "video codec")
	cmd.Flags().IntVar(&quality, "quality", 0, "video CRF or image quality")
	cmd.Flags().BoolVar(&op.MaxQuality, "max-quality", false, "lossless video or audio, best image quality")
	cmd.Flags().IntVar(&op.BitrateKbps, "bitrate", 0, "audio bitrate in kbps")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

func newCompressCommand(ctx *cliContext) *cobra.Command {
	var (
		jf      jobFlags
		preset  string
		quality int
	)

	cmd := &cobra.Command{
		Use:   "compress [input]",
		Short: "Reduce the size of a file, keeping its format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := jf.resolveInput(args)
			if err != nil {
				return err
			}
			var op compiler.Compress
			if op.Preset, err = compiler.ParseQualityPreset(preset); err != nil {
				return err
			}
			if cmd.Flags().Changed("quality") {
				op.Quality = compiler.Int(quality)
			}
			return ctx.execute(cmd, &jf, input, op)
		},
	}

	jf.register(cmd)
	cmd.Flags().StringVar(&preset, "preset", string(compiler.Medium), "quality preset: lossless, high, medium, low or very-low")
	cmd.Flags().IntVar(&quality, "quality", 0, "direct quality value, overrides --preset")

	return cmd
}
