package compiler

import (
	"strconv"

	"github.com/lolhop/ffmpeg-tools/internal/codec"
	"github.com/lolhop/ffmpeg-tools/internal/media"
)

// Per-kind quality tables for Compress: constant rate factor for video,
// bitrate in kbps for audio, -q:v index for images.
var (
	videoCRF = map[QualityPreset]int{
		Lossless: 0,
		High:     18,
		Medium:   23,
		Low:      28,
		VeryLow:  35,
	}
	audioKbps = map[QualityPreset]int{
		Lossless: 320,
		High:     256,
		Medium:   192,
		Low:      128,
		VeryLow:  64,
	}
	imageQ = map[QualityPreset]int{
		Lossless: 1,
		High:     2,
		Medium:   5,
		Low:      10,
		VeryLow:  20,
	}
)

var compressTables = map[media.Kind]map[QualityPreset]int{
	media.Video: videoCRF,
	media.Audio: audioKbps,
	media.Image: imageQ,
}

var compressRanges = map[media.Kind][2]int{
	media.Video: {0, 51},
	media.Audio: {MinAudioBitrate, MaxAudioBitrate},
	media.Image: {codec.BestImageQuality, codec.WorstImageQuality},
}

// CompressTable returns the resolved value of preset for kind.
func CompressTable(kind media.Kind, preset QualityPreset) (int, bool) {
	table, ok := compressTables[kind]
	if !ok {
		return 0, false
	}
	v, ok := table[preset.orDefault()]
	return v, ok
}

func (c Compress) validate(kind media.Kind) error {
	bounds, ok := compressRanges[kind]
	if !ok {
		return unsupported(c, kind)
	}
	if _, err := ParseQualityPreset(string(c.Preset)); err != nil {
		return err
	}
	if c.Quality != nil {
		return checkRange(kind.String()+" quality", *c.Quality, bounds[0], bounds[1])
	}
	return nil
}

// resolve returns the direct quality if one was given, else the table value.
func (c Compress) resolve(kind media.Kind) (int, bool) {
	if c.Quality != nil {
		return *c.Quality, true
	}
	return CompressTable(kind, c.Preset)
}

func compileCompress(kind media.Kind, c Compress) (plan, error) {
	v, ok := c.resolve(kind)
	if !ok {
		return plan{}, unsupported(c, kind)
	}
	value := strconv.Itoa(v)

	switch kind {
	case media.Video:
		return plan{args: []string{"-crf", value}, suffix: []string{"crf" + value}}, nil
	case media.Audio:
		return plan{args: []string{"-b:a", value + "k"}, suffix: []string{value + "kbps"}}, nil
	case media.Image:
		return plan{args: codec.ImageQualityArgs(v), suffix: []string{"q" + value}}, nil
	}
	return plan{}, unsupported(c, kind)
}
