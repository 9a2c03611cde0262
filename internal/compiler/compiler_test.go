package compiler

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolhop/ffmpeg-tools/internal/errs"
	"github.com/lolhop/ffmpeg-tools/internal/media"
)

func compile(t *testing.T, input string, op Operation) CompiledJob {
	t.Helper()
	job, err := Compile(JobRequest{InputPath: input, Kind: media.Detect(input), Op: op})
	require.NoError(t, err)
	return job
}

// argsBetween returns the operation arguments between the input and the
// trailing overwrite flag.
func argsBetween(t *testing.T, job CompiledJob) []string {
	t.Helper()
	require.GreaterOrEqual(t, len(job.Argv), 4)
	return job.Argv[2 : len(job.Argv)-2]
}

func TestArgvFraming(t *testing.T) {
	ops := map[string]Operation{
		"/media/clip.mp4":   Rescale{Width: 1280, MaintainAspect: true},
		"/media/song.mp3":   ChangeSpeed{Speed: 1.5},
		"/media/photo.png":  Convert{Format: "webp", Quality: Int(4)},
		"/media/movie.mkv":  Compress{Preset: High},
		"/media/voice.flac": Compress{},
	}

	for input, op := range ops {
		t.Run(filepath.Base(input), func(t *testing.T) {
			job := compile(t, input, op)
			n := len(job.Argv)
			assert.Equal(t, []string{"-i", input}, job.Argv[:2])
			assert.Equal(t, []string{"-y", job.OutputPath}, job.Argv[n-2:])
			assert.Equal(t, filepath.Dir(input), filepath.Dir(job.OutputPath))
			assert.NotEqual(t, input, job.OutputPath)

			again := compile(t, input, op)
			assert.Equal(t, job, again)
		})
	}
}

func TestRescaleVideoMaintainAspect(t *testing.T) {
	job := compile(t, "/v/clip.mp4", Rescale{Width: 1920, MaintainAspect: true, Filter: Bicubic})

	assert.Equal(t, []string{"-vf", "scale=1920:-2:flags=bicubic", "-preset", "medium"}, argsBetween(t, job))
	assert.Equal(t, "/v/clip.1920p.mp4", job.OutputPath)
}

func TestRescaleImageExplicit(t *testing.T) {
	for _, f := range ScaleFilters() {
		t.Run(string(f), func(t *testing.T) {
			job := compile(t, "/img/photo.jpg", Rescale{Width: 800, Height: 600, Filter: f})
			assert.Equal(t, []string{"-vf", "scale=800:600:flags=" + scaleFlags[f]}, argsBetween(t, job))
			assert.Equal(t, "/img/photo.800x600.jpg", job.OutputPath)
		})
	}
}

func TestRescaleVariants(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		op     Rescale
		args   []string
		output string
	}{
		{
			name:   "image keeps aspect without forcing even height",
			input:  "/img/photo.png",
			op:     Rescale{Width: 640, MaintainAspect: true, Filter: Lanczos},
			args:   []string{"-vf", "scale=640:-1:flags=lanczos"},
			output: "/img/photo.640w.png",
		},
		{
			name:   "image quality",
			input:  "/img/photo.jpg",
			op:     Rescale{Width: 640, MaintainAspect: true, Quality: Int(3)},
			args:   []string{"-vf", "scale=640:-1:flags=bicubic", "-q:v", "3"},
			output: "/img/photo.640w.q3.jpg",
		},
		{
			name:   "video non default preset and audio copy",
			input:  "/v/clip.mov",
			op:     Rescale{Width: 1280, Height: 720, Filter: NearestNeighbor, Preset: "slow", PreserveAudio: true},
			args:   []string{"-vf", "scale=1280:720:flags=neighbor", "-preset", "slow", "-c:a", "copy"},
			output: "/v/clip.1280x720.slow.mov",
		},
		{
			name:   "explicit medium preset is not in the name",
			input:  "/v/clip.mkv",
			op:     Rescale{Width: 720, MaintainAspect: true, Preset: DefaultPreset},
			args:   []string{"-vf", "scale=720:-2:flags=bicubic", "-preset", "medium"},
			output: "/v/clip.720p.mkv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := compile(t, tt.input, tt.op)
			assert.Equal(t, tt.args, argsBetween(t, job))
			assert.Equal(t, tt.output, job.OutputPath)
		})
	}
}

func TestChangeSpeedVideo(t *testing.T) {
	job := compile(t, "/v/clip.mp4", ChangeSpeed{Speed: 2.0})
	assert.Equal(t, []string{"-vf", "setpts=0.5*PTS", "-af", "atempo=2"}, argsBetween(t, job))
	assert.Equal(t, "/v/clip.2x.mp4", job.OutputPath)
}

func TestChangeSpeedVideoMaintainPitch(t *testing.T) {
	job := compile(t, "/v/clip.mp4", ChangeSpeed{Speed: 2.0, MaintainPitch: true})
	assert.Equal(t, []string{"-vf", "setpts=0.5*PTS", "-af", "asetrate=88200,aresample=44100"}, argsBetween(t, job))
	assert.Equal(t, "/v/clip.2x.pitch.mp4", job.OutputPath)

	job = compile(t, "/v/clip.mp4", ChangeSpeed{Speed: 0.5, AudioSpeed: 0.75, MaintainPitch: true, SampleRate: 48000})
	assert.Equal(t, []string{"-vf", "setpts=2*PTS", "-af", "asetrate=36000,aresample=48000"}, argsBetween(t, job))
	assert.Equal(t, "/v/clip.0.5x.a0.75x.pitch.mp4", job.OutputPath)
}

func TestChangeSpeedDistinctAudio(t *testing.T) {
	job := compile(t, "/v/clip.webm", ChangeSpeed{Speed: 1.25, AudioSpeed: 1.5})
	assert.Equal(t, []string{"-vf", "setpts=0.8*PTS", "-af", "atempo=1.5"}, argsBetween(t, job))
	assert.Equal(t, "/v/clip.1.25x.a1.5x.webm", job.OutputPath)
}

func TestChangeSpeedAudioChainsTempo(t *testing.T) {
	tests := []struct {
		speed  float64
		filter string
		output string
	}{
		{1.5, "atempo=1.5", "/a/song.1.5x.mp3"},
		{4, "atempo=2,atempo=2", "/a/song.4x.mp3"},
		{0.25, "atempo=0.5,atempo=0.5", "/a/song.0.25x.mp3"},
		{3, "atempo=2,atempo=1.5", "/a/song.3x.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			job := compile(t, "/a/song.mp3", ChangeSpeed{Speed: tt.speed})
			assert.Equal(t, []string{"-af", tt.filter}, argsBetween(t, job))
			assert.Equal(t, tt.output, job.OutputPath)
		})
	}
}

func TestConvertVideo(t *testing.T) {
	tests := []struct {
		name   string
		op     Convert
		args   []string
		output string
	}{
		{
			name:   "x264 lossless",
			op:     Convert{Format: "mkv", Codec: "libx264", MaxQuality: true},
			args:   []string{"-c:v", "libx264", "-crf", "0", "-preset", "veryslow"},
			output: "/v/clip.libx264.lossless.mkv",
		},
		{
			name:   "x264 default quality",
			op:     Convert{Format: "mov"},
			args:   []string{"-c:v", "libx264", "-crf", "23"},
			output: "/v/clip.libx264.crf23.mov",
		},
		{
			name:   "vp9 constant quality",
			op:     Convert{Format: "webm", Codec: "libvpx-vp9", Quality: Int(30)},
			args:   []string{"-c:v", "libvpx-vp9", "-crf", "30", "-b:v", "0"},
			output: "/v/clip.libvpx-vp9.crf30.webm",
		},
		{
			name:   "copy ignores quality",
			op:     Convert{Format: ".MKV", Codec: "copy", Quality: Int(99), MaxQuality: true},
			args:   []string{"-c:v", "copy"},
			output: "/v/clip.copy.mkv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := compile(t, "/v/clip.mp4", tt.op)
			assert.Equal(t, tt.args, argsBetween(t, job))
			assert.Equal(t, tt.output, job.OutputPath)
		})
	}
}

func TestConvertAudio(t *testing.T) {
	job := compile(t, "/a/song.wav", Convert{Format: "mp3", BitrateKbps: 320})
	assert.Equal(t, []string{"-c:a", "libmp3lame", "-b:a", "320k"}, argsBetween(t, job))
	assert.Equal(t, "/a/song.320kbps.mp3", job.OutputPath)

	job = compile(t, "/a/song.wav", Convert{Format: "ogg"})
	assert.Equal(t, []string{"-c:a", "libvorbis", "-b:a", "192k"}, argsBetween(t, job))
	assert.Equal(t, "/a/song.192kbps.ogg", job.OutputPath)

	job = compile(t, "/a/song.mp3", Convert{Format: "m4a", MaxQuality: true})
	assert.Equal(t, []string{"-c:a", "alac"}, argsBetween(t, job))
	assert.Equal(t, "/a/song.lossless.m4a", job.OutputPath)

	job = compile(t, "/a/song.mp3", Convert{Format: "flac"})
	assert.Equal(t, []string{"-c:a", "flac"}, argsBetween(t, job))
	assert.Equal(t, "/a/song.lossless.flac", job.OutputPath)

	_, err := Compile(JobRequest{InputPath: "/a/song.wav", Kind: media.Audio, Op: Convert{Format: "opus", MaxQuality: true}})
	assert.True(t, errors.Is(err, errs.ErrUnsupportedOperation))
}

func TestConvertImage(t *testing.T) {
	job := compile(t, "/img/photo.png", Convert{Format: "jpg", Quality: Int(4)})
	assert.Equal(t, []string{"-q:v", "4"}, argsBetween(t, job))
	assert.Equal(t, "/img/photo.q4.jpg", job.OutputPath)

	job = compile(t, "/img/photo.png", Convert{Format: "webp", MaxQuality: true})
	assert.Equal(t, []string{"-q:v", "1"}, argsBetween(t, job))
	assert.Equal(t, "/img/photo.max.webp", job.OutputPath)

	job = compile(t, "/img/photo.png", Convert{Format: "bmp"})
	assert.Equal(t, []string{"-i", "/img/photo.png", "-y", "/img/photo.bmp"}, job.Argv)
}

// Converting to the input's own format with nothing else requested names the
// output after the input. Compile does not refuse it.
func TestConvertSameFormatOverwritesInput(t *testing.T) {
	job := compile(t, "/img/photo.png", Convert{Format: "png"})
	assert.Equal(t, "/img/photo.png", job.OutputPath)
	assert.True(t, job.OverwritesInput())
}

func TestCompress(t *testing.T) {
	tests := []struct {
		input  string
		op     Compress
		args   []string
		output string
	}{
		{"/a/song.mp3", Compress{Preset: Medium}, []string{"-b:a", "192k"}, "/a/song.192kbps.mp3"},
		{"/a/song.mp3", Compress{}, []string{"-b:a", "192k"}, "/a/song.192kbps.mp3"},
		{"/v/clip.mp4", Compress{Preset: VeryLow}, []string{"-crf", "35"}, "/v/clip.crf35.mp4"},
		{"/v/clip.mp4", Compress{Preset: Lossless}, []string{"-crf", "0"}, "/v/clip.crf0.mp4"},
		{"/v/clip.mp4", Compress{Quality: Int(30), Preset: High}, []string{"-crf", "30"}, "/v/clip.crf30.mp4"},
		{"/img/photo.jpg", Compress{Preset: Low}, []string{"-q:v", "10"}, "/img/photo.q10.jpg"},
		{"/img/photo.jpg", Compress{Quality: Int(7)}, []string{"-q:v", "7"}, "/img/photo.q7.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			job := compile(t, tt.input, tt.op)
			assert.Equal(t, tt.args, argsBetween(t, job))
			assert.Equal(t, tt.output, job.OutputPath)
		})
	}
}

func TestCompressTablesCoverEveryPreset(t *testing.T) {
	for _, kind := range media.Kinds() {
		for _, preset := range QualityPresets() {
			v, ok := CompressTable(kind, preset)
			require.True(t, ok, "%s/%s", kind, preset)
			bounds := compressRanges[kind]
			assert.True(t, inRange(v, bounds[0], bounds[1]), "%s/%s = %d", kind, preset, v)
		}
	}
	_, ok := CompressTable(media.Undetermined, Medium)
	assert.False(t, ok)
}

func TestPointerOperations(t *testing.T) {
	byValue := compile(t, "/v/clip.mp4", Compress{Preset: High})
	byPointer := compile(t, "/v/clip.mp4", &Compress{Preset: High})
	assert.Equal(t, byValue, byPointer)
}

func TestUnsupportedCombinations(t *testing.T) {
	tests := []struct {
		name string
		req  JobRequest
	}{
		{"rescale audio", JobRequest{InputPath: "/a/song.mp3", Kind: media.Audio, Op: Rescale{Width: 100, MaintainAspect: true}}},
		{"speed image", JobRequest{InputPath: "/img/p.png", Kind: media.Image, Op: ChangeSpeed{Speed: 2}}},
		{"compress undetermined", JobRequest{InputPath: "/x/file.bin", Kind: media.Undetermined, Op: Compress{}}},
		{"convert across kinds", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: Convert{Format: "mp3"}}},
		{"convert to unknown format", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: Convert{Format: "xyz"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.req)
			assert.True(t, errors.Is(err, errs.ErrUnsupportedOperation), "got %v", err)
		})
	}
}

func TestInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		req  JobRequest
	}{
		{"no input", JobRequest{Kind: media.Video, Op: Compress{}}},
		{"no operation", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video}},
		{"zero width", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: Rescale{MaintainAspect: true}}},
		{"missing height", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: Rescale{Width: 100}}},
		{"bad filter", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: Rescale{Width: 100, MaintainAspect: true, Filter: "sinc"}}},
		{"bad preset", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: Rescale{Width: 100, MaintainAspect: true, Preset: "warp"}}},
		{"video quality on rescale", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: Rescale{Width: 100, MaintainAspect: true, Quality: Int(2)}}},
		{"zero speed", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: ChangeSpeed{}}},
		{"negative audio speed", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: ChangeSpeed{Speed: 1, AudioSpeed: -1}}},
		{"crf above range", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: Convert{Format: "mkv", Quality: Int(60)}}},
		{"unknown codec", JobRequest{InputPath: "/v/clip.mp4", Kind: media.Video, Op: Convert{Format: "mkv", Codec: "mpeg2"}}},
		{"bitrate too low", JobRequest{InputPath: "/a/song.mp3", Kind: media.Audio, Op: Convert{Format: "ogg", BitrateKbps: 2}}},
		{"no format", JobRequest{InputPath: "/a/song.mp3", Kind: media.Audio, Op: Convert{}}},
		{"compress quality", JobRequest{InputPath: "/img/p.jpg", Kind: media.Image, Op: Compress{Quality: Int(0)}}},
		{"compress preset", JobRequest{InputPath: "/img/p.jpg", Kind: media.Image, Op: Compress{Preset: "ultra"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.req)
			assert.True(t, errors.Is(err, errs.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestParseEnums(t *testing.T) {
	f, err := ParseScaleFilter("")
	require.NoError(t, err)
	assert.Equal(t, Bicubic, f)
	f, err = ParseScaleFilter("Nearest-Neighbor")
	require.NoError(t, err)
	assert.Equal(t, NearestNeighbor, f)

	p, err := ParsePreset("VerySlow")
	require.NoError(t, err)
	assert.Equal(t, Preset("veryslow"), p)

	q, err := ParseQualityPreset("very-low")
	require.NoError(t, err)
	assert.Equal(t, VeryLow, q)

	_, err = ParseQualityPreset("best")
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestSummary(t *testing.T) {
	job := compile(t, "/v/clip.mp4", Compress{})
	assert.Equal(t, "compress: clip.mp4 -> clip.crf23.mp4", job.Summary())
}
