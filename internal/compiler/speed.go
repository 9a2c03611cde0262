package compiler

import (
	"math"
	"strconv"
	"strings"

	"github.com/lolhop/ffmpeg-tools/internal/media"
)

const (
	// DefaultSampleRate is assumed when the input's rate is unknown.
	DefaultSampleRate = 44100

	MinSpeed = 0.01
	MaxSpeed = 100.0

	// atempo only accepts factors in this range per filter instance.
	minTempo = 0.5
	maxTempo = 2.0
)

func (s ChangeSpeed) validate(kind media.Kind) error {
	if kind == media.Image {
		return unsupported(s, kind)
	}
	if err := checkFactor("speed", s.Speed); err != nil {
		return err
	}
	if s.AudioSpeed != 0 {
		if err := checkFactor("audio speed", s.AudioSpeed); err != nil {
			return err
		}
	}
	if s.SampleRate != 0 {
		if err := checkRange("sample rate", s.SampleRate, 8000, 384000); err != nil {
			return err
		}
	}
	return nil
}

func compileSpeed(kind media.Kind, s ChangeSpeed) (plan, error) {
	p := plan{suffix: []string{formatFloat(s.Speed) + "x"}}

	switch kind {
	case media.Video:
		audioSpeed := s.AudioSpeed
		if audioSpeed == 0 {
			audioSpeed = s.Speed
		}

		var audioFilter string
		if s.MaintainPitch {
			rate := s.SampleRate
			if rate == 0 {
				rate = DefaultSampleRate
			}
			audioFilter = "asetrate=" + strconv.Itoa(int(math.Round(float64(rate)*audioSpeed))) +
				",aresample=" + strconv.Itoa(rate)
		} else {
			audioFilter = atempoChain(audioSpeed)
		}

		p.args = []string{
			"-vf", "setpts=" + formatFloat(1/s.Speed) + "*PTS",
			"-af", audioFilter,
		}
		if audioSpeed != s.Speed {
			p.suffix = append(p.suffix, "a"+formatFloat(audioSpeed)+"x")
		}
		if s.MaintainPitch {
			p.suffix = append(p.suffix, "pitch")
		}
	case media.Audio:
		p.args = []string{"-af", atempoChain(s.Speed)}
	default:
		return plan{}, unsupported(s, kind)
	}

	return p, nil
}

// atempoChain expresses factor as a chain of atempo filters, each within the
// range the filter accepts.
func atempoChain(factor float64) string {
	var stages []string
	for factor > maxTempo {
		stages = append(stages, "atempo="+formatFloat(maxTempo))
		factor /= maxTempo
	}
	for factor < minTempo {
		stages = append(stages, "atempo="+formatFloat(minTempo))
		factor /= minTempo
	}
	stages = append(stages, "atempo="+formatFloat(factor))
	return strings.Join(stages, ",")
}
