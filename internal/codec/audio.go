package codec

import (
	"sort"
	"strconv"

	"github.com/lolhop/ffmpeg-tools/internal/errs"
)

// AudioFormat is the encoder choice for one audio container.
type AudioFormat struct {
	Format string
	// Encoder is used for bitrate-driven output. Empty when the format only
	// carries lossless audio.
	Encoder string
	// Lossless is the lossless encoder for the format, empty if it has none.
	Lossless string
}

// DefaultAudioBitrate is the kbps used when no bitrate was requested.
const DefaultAudioBitrate = 192

var audioFormats = map[string]AudioFormat{
	"mp3":  {Format: "mp3", Encoder: "libmp3lame"},
	"aac":  {Format: "aac", Encoder: "aac"},
	"m4a":  {Format: "m4a", Encoder: "aac", Lossless: "alac"},
	"ogg":  {Format: "ogg", Encoder: "libvorbis"},
	"opus": {Format: "opus", Encoder: "libopus"},
	"wma":  {Format: "wma", Encoder: "wmav2"},
	"flac": {Format: "flac", Lossless: "flac"},
	"wav":  {Format: "wav", Lossless: "pcm_s16le"},
	"aiff": {Format: "aiff", Lossless: "pcm_s16be"},
}

// LookupAudio returns the encoder rules for an audio format.
func LookupAudio(format string) (AudioFormat, error) {
	f, ok := audioFormats[format]
	if !ok {
		return AudioFormat{}, errs.Unsupported("no audio encoder for format %q", format)
	}
	return f, nil
}

// AudioFormats returns every known audio format, sorted by name.
func AudioFormats() []AudioFormat {
	out := make([]AudioFormat, 0, len(audioFormats))
	for _, f := range audioFormats {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Format < out[j].Format })
	return out
}

// LosslessOnly reports whether the format has no lossy encoder.
func (f AudioFormat) LosslessOnly() bool {
	return f.Encoder == ""
}

// Args returns the encoder arguments. A lossless-only format ignores the
// bitrate.
func (f AudioFormat) Args(bitrateKbps int, lossless bool) ([]string, error) {
	if lossless || f.LosslessOnly() {
		if f.Lossless == "" {
			return nil, errs.Unsupported("format %s has no lossless audio codec", f.Format)
		}
		return []string{"-c:a", f.Lossless}, nil
	}
	return []string{"-c:a", f.Encoder, "-b:a", strconv.Itoa(bitrateKbps) + "k"}, nil
}
