package codec

import "strconv"

// X265 is the HEVC encoder. It shares the constant rate factor scale with
// x264, but crf 0 is not lossless, so lossless goes through x265-params.
type X265 struct{}

func init() {
	Register(&X265{})
}

func (c *X265) Name() string {
	return "libx265"
}

func (c *X265) Reencodes() bool {
	return true
}

func (c *X265) DefaultQuality() int {
	return 28
}

func (c *X265) QualityRange() (min, max int) {
	return 0, 51
}

func (c *X265) QualityArgs(quality int) []string {
	return []string{"-c:v", c.Name(), "-crf", strconv.Itoa(quality)}
}

func (c *X265) LosslessArgs() []string {
	return []string{"-c:v", c.Name(), "-x265-params", "lossless=1", "-preset", "veryslow"}
}
