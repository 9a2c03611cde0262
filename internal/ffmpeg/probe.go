package ffmpeg

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Metadata is the subset of ffprobe output the tool uses.
type Metadata struct {
	Duration   float64
	Width      int
	Height     int
	VideoCodec string
	AudioCodec string
	SampleRate int
	Channels   int
}

// HasAudio reports whether an audio stream was found.
func (m *Metadata) HasAudio() bool {
	return m.AudioCodec != ""
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
	Duration   string `json:"duration"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// GetMetadata runs ffprobe on path and extracts the first video and audio
// stream properties.
func (p *Processor) GetMetadata(path string) (*Metadata, error) {
	raw, err := p.probe(path)
	if err != nil {
		return nil, errors.Wrapf(err, "probe %s", path)
	}
	return parseProbe(raw)
}

func parseProbe(raw string) (*Metadata, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, errors.Wrap(err, "decode ffprobe output")
	}
	if len(out.Streams) == 0 {
		return nil, errors.New("no streams found")
	}

	m := &Metadata{}
	var streamDuration float64
	for _, s := range out.Streams {
		switch s.CodecType {
		case "video":
			if m.VideoCodec != "" {
				continue
			}
			m.VideoCodec = s.CodecName
			m.Width = s.Width
			m.Height = s.Height
			streamDuration = parseSeconds(s.Duration)
		case "audio":
			if m.AudioCodec != "" {
				continue
			}
			m.AudioCodec = s.CodecName
			m.Channels = s.Channels
			if rate, err := strconv.Atoi(strings.TrimSpace(s.SampleRate)); err == nil {
				m.SampleRate = rate
			}
			if streamDuration == 0 {
				streamDuration = parseSeconds(s.Duration)
			}
		}
	}

	// Prefer the stream duration, fall back to the container's.
	m.Duration = streamDuration
	if m.Duration == 0 {
		m.Duration = parseSeconds(out.Format.Duration)
	}
	return m, nil
}

func parseSeconds(s string) float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return d
}
