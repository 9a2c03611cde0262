package compiler

import (
	"strings"

	"github.com/lolhop/ffmpeg-tools/internal/errs"
	"github.com/lolhop/ffmpeg-tools/internal/media"
)

// JobRequest is one submission: an input file, its kind and the operation to
// apply. It is built once from user input and not modified afterwards.
type JobRequest struct {
	InputPath string
	Kind      media.Kind
	Op        Operation
}

// Operation is implemented only by Rescale, ChangeSpeed, Convert and Compress.
type Operation interface {
	Name() string
	validate(kind media.Kind) error
}

// Rescale changes video resolution or resizes an image.
type Rescale struct {
	Width          int
	Height         int // ignored when MaintainAspect is set
	MaintainAspect bool
	Filter         ScaleFilter // defaults to bicubic

	// video only
	Preset        Preset // defaults to medium
	PreserveAudio bool

	// image only
	Quality *int
}

// ChangeSpeed speeds up or slows down playback.
type ChangeSpeed struct {
	Speed float64

	// video only
	AudioSpeed    float64 // zero means same as Speed
	MaintainPitch bool
	SampleRate    int // zero means DefaultSampleRate
}

// Convert changes the container/format, re-encoding as needed.
type Convert struct {
	Format string // target extension without the dot

	// MaxQuality selects lossless video, a lossless audio codec or the best
	// image quality.
	MaxQuality bool

	// video only
	Codec   string // defaults to libx264
	Quality *int   // codec specific constant quality value

	// audio only
	BitrateKbps int // defaults to codec.DefaultAudioBitrate

	// image uses Quality as well
}

// Compress keeps the format and lowers quality. A direct Quality always
// wins over Preset.
type Compress struct {
	Quality *int
	Preset  QualityPreset // defaults to medium
}

func (Rescale) Name() string     { return "rescale" }
func (ChangeSpeed) Name() string { return "speed" }
func (Convert) Name() string     { return "convert" }
func (Compress) Name() string    { return "compress" }

// ScaleFilter is the interpolation used by the scale filter.
type ScaleFilter string

const (
	Bicubic         ScaleFilter = "bicubic"
	Bilinear        ScaleFilter = "bilinear"
	NearestNeighbor ScaleFilter = "nearest-neighbor"
	Lanczos         ScaleFilter = "lanczos"
)

var scaleFlags = map[ScaleFilter]string{
	Bicubic:         "bicubic",
	Bilinear:        "bilinear",
	NearestNeighbor: "neighbor",
	Lanczos:         "lanczos",
}

// ScaleFilters lists the accepted filters.
func ScaleFilters() []ScaleFilter {
	return []ScaleFilter{Bicubic, Bilinear, NearestNeighbor, Lanczos}
}

// ParseScaleFilter accepts a filter name; empty selects bicubic.
func ParseScaleFilter(s string) (ScaleFilter, error) {
	if s == "" {
		return Bicubic, nil
	}
	f := ScaleFilter(strings.ToLower(s))
	if _, ok := scaleFlags[f]; !ok {
		return "", errs.Invalid("unknown scaling filter %q", s)
	}
	return f, nil
}

func (f ScaleFilter) orDefault() ScaleFilter {
	if f == "" {
		return Bicubic
	}
	return f
}

// Preset is the encoder speed/size tradeoff.
type Preset string

// DefaultPreset is left out of output filenames.
const DefaultPreset Preset = "medium"

var presets = []Preset{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow",
}

// Presets lists the accepted encoding presets, fastest first.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// ParsePreset accepts a preset name; empty selects medium.
func ParsePreset(s string) (Preset, error) {
	if s == "" {
		return DefaultPreset, nil
	}
	for _, p := range presets {
		if string(p) == strings.ToLower(s) {
			return p, nil
		}
	}
	return "", errs.Invalid("unknown encoding preset %q", s)
}

func (p Preset) orDefault() Preset {
	if p == "" {
		return DefaultPreset
	}
	return p
}

// QualityPreset names a row of the compression tables.
type QualityPreset string

const (
	Lossless QualityPreset = "lossless"
	High     QualityPreset = "high"
	Medium   QualityPreset = "medium"
	Low      QualityPreset = "low"
	VeryLow  QualityPreset = "very-low"
)

// QualityPresets lists the presets from best to smallest.
func QualityPresets() []QualityPreset {
	return []QualityPreset{Lossless, High, Medium, Low, VeryLow}
}

// ParseQualityPreset accepts a preset name; empty selects medium.
func ParseQualityPreset(s string) (QualityPreset, error) {
	if s == "" {
		return Medium, nil
	}
	for _, p := range QualityPresets() {
		if string(p) == strings.ToLower(s) {
			return p, nil
		}
	}
	return "", errs.Invalid("unknown quality preset %q", s)
}

func (p QualityPreset) orDefault() QualityPreset {
	if p == "" {
		return Medium
	}
	return p
}

// Int returns a pointer to v, for the optional numeric options.
func Int(v int) *int {
	return &v
}
