package compiler

import (
	"fmt"
	"strconv"

	"github.com/lolhop/ffmpeg-tools/internal/codec"
	"github.com/lolhop/ffmpeg-tools/internal/errs"
	"github.com/lolhop/ffmpeg-tools/internal/media"
)

// MaxDimension is the largest width or height accepted by Rescale.
const MaxDimension = 16384

// Height placeholders for an aspect-preserving scale: video heights must stay
// divisible by two for the common chroma subsamplings, images have no such
// constraint.
const (
	autoEvenHeight = -2
	autoHeight     = -1
)

func (r Rescale) validate(kind media.Kind) error {
	if kind == media.Audio {
		return unsupported(r, kind)
	}
	if err := checkRange("width", r.Width, 1, MaxDimension); err != nil {
		return err
	}
	if !r.MaintainAspect {
		if r.Height == 0 {
			return errs.Invalid("height is required unless the aspect ratio is maintained")
		}
		if err := checkRange("height", r.Height, 1, MaxDimension); err != nil {
			return err
		}
	}
	if _, ok := scaleFlags[r.Filter.orDefault()]; !ok {
		return errs.Invalid("unknown scaling filter %q", r.Filter)
	}
	if _, err := ParsePreset(string(r.Preset)); err != nil {
		return err
	}
	if r.Quality != nil {
		if kind != media.Image {
			return errs.Invalid("quality only applies when resizing images")
		}
		return checkRange("quality", *r.Quality, codec.BestImageQuality, codec.WorstImageQuality)
	}
	return nil
}

func compileRescale(kind media.Kind, r Rescale) (plan, error) {
	flags := scaleFlags[r.Filter.orDefault()]

	var (
		height int
		suffix string
	)
	switch {
	case !r.MaintainAspect:
		height = r.Height
		suffix = fmt.Sprintf("%dx%d", r.Width, r.Height)
	case kind == media.Video:
		height = autoEvenHeight
		suffix = fmt.Sprintf("%dp", r.Width)
	default:
		height = autoHeight
		suffix = fmt.Sprintf("%dw", r.Width)
	}

	p := plan{
		args:   []string{"-vf", fmt.Sprintf("scale=%d:%d:flags=%s", r.Width, height, flags)},
		suffix: []string{suffix},
	}

	switch kind {
	case media.Video:
		preset := r.Preset.orDefault()
		p.args = append(p.args, "-preset", string(preset))
		if r.PreserveAudio {
			p.args = append(p.args, "-c:a", "copy")
		}
		if preset != DefaultPreset {
			p.suffix = append(p.suffix, string(preset))
		}
	case media.Image:
		if r.Quality != nil {
			p.args = append(p.args, codec.ImageQualityArgs(*r.Quality)...)
			p.suffix = append(p.suffix, "q"+strconv.Itoa(*r.Quality))
		}
	default:
		return plan{}, unsupported(r, kind)
	}

	return p, nil
}
