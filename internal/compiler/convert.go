package compiler

import (
	"strconv"
	"strings"

	"github.com/lolhop/ffmpeg-tools/internal/codec"
	"github.com/lolhop/ffmpeg-tools/internal/errs"
	"github.com/lolhop/ffmpeg-tools/internal/media"
)

// DefaultVideoCodec is used by Convert when no codec was chosen.
const DefaultVideoCodec = "libx264"

// Audio bitrate bounds in kbps.
const (
	MinAudioBitrate = 8
	MaxAudioBitrate = 640
)

func (c Convert) format() string {
	return strings.ToLower(strings.TrimPrefix(c.Format, "."))
}

func (c Convert) codecName() string {
	if c.Codec == "" {
		return DefaultVideoCodec
	}
	return c.Codec
}

func (c Convert) validate(kind media.Kind) error {
	format := c.format()
	if format == "" {
		return errs.Invalid("no target format given")
	}
	if target := media.KindOfExt(format); target != kind {
		return errs.Unsupported("cannot convert %s to %s format %q", kind, target, format)
	}

	switch kind {
	case media.Video:
		vc, err := codec.Get(c.codecName())
		if err != nil {
			return err
		}
		if c.Quality != nil && vc.Reencodes() {
			lo, hi := vc.QualityRange()
			return checkRange(vc.Name()+" quality", *c.Quality, lo, hi)
		}
	case media.Audio:
		if c.BitrateKbps != 0 {
			return checkRange("bitrate", c.BitrateKbps, MinAudioBitrate, MaxAudioBitrate)
		}
	case media.Image:
		if c.Quality != nil {
			return checkRange("quality", *c.Quality, codec.BestImageQuality, codec.WorstImageQuality)
		}
	}
	return nil
}

func compileConvert(kind media.Kind, c Convert) (plan, error) {
	p := plan{ext: c.format()}

	switch kind {
	case media.Video:
		vc, err := codec.Get(c.codecName())
		if err != nil {
			return plan{}, err
		}
		p.suffix = []string{vc.Name()}
		switch {
		case !vc.Reencodes():
			p.args = vc.QualityArgs(0)
		case c.MaxQuality:
			p.args = vc.LosslessArgs()
			p.suffix = append(p.suffix, "lossless")
		default:
			q := vc.DefaultQuality()
			if c.Quality != nil {
				q = *c.Quality
			}
			p.args = vc.QualityArgs(q)
			p.suffix = append(p.suffix, "crf"+strconv.Itoa(q))
		}
	case media.Audio:
		af, err := codec.LookupAudio(p.ext)
		if err != nil {
			return plan{}, err
		}
		bitrate := c.BitrateKbps
		if bitrate == 0 {
			bitrate = codec.DefaultAudioBitrate
		}
		args, err := af.Args(bitrate, c.MaxQuality)
		if err != nil {
			return plan{}, err
		}
		p.args = args
		if c.MaxQuality || af.LosslessOnly() {
			p.suffix = []string{"lossless"}
		} else {
			p.suffix = []string{strconv.Itoa(bitrate) + "kbps"}
		}
	case media.Image:
		switch {
		case c.MaxQuality:
			p.args = codec.ImageQualityArgs(codec.BestImageQuality)
			p.suffix = []string{"max"}
		case c.Quality != nil:
			p.args = codec.ImageQualityArgs(*c.Quality)
			p.suffix = []string{"q" + strconv.Itoa(*c.Quality)}
		}
		// Without a quality the name only changes by extension, so converting
		// to the input's own format yields the input path.
	default:
		return plan{}, unsupported(c, kind)
	}

	return p, nil
}
