// Package codec describes how each supported encoder expresses quality on
// the ffmpeg command line.
package codec

import (
	"sort"

	"github.com/lolhop/ffmpeg-tools/internal/errs"
)

// Video defines the argument rules for one video encoder
type Video interface {
	// Name returns the ffmpeg encoder name, also used as the filename token
	Name() string

	// Reencodes reports whether the codec touches the video stream at all
	Reencodes() bool

	// DefaultQuality returns the quality used when none was requested
	DefaultQuality() int

	// QualityRange returns the inclusive bounds accepted by QualityArgs
	QualityRange() (min, max int)

	// QualityArgs returns the encoder arguments for a quality value
	QualityArgs(quality int) []string

	// LosslessArgs returns the encoder arguments for lossless output
	LosslessArgs() []string
}

var videoCodecs = make(map[string]Video)

// Register adds a video codec to the registry
func Register(c Video) {
	videoCodecs[c.Name()] = c
}

// Get returns a video codec by name
func Get(name string) (Video, error) {
	c, ok := videoCodecs[name]
	if !ok {
		return nil, errs.Invalid("unsupported video codec: %s", name)
	}
	return c, nil
}

// Names returns the registered video codec names, sorted
func Names() []string {
	names := make([]string, 0, len(videoCodecs))
	for name := range videoCodecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
