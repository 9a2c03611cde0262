package codec

import "strconv"

// X264 is the H.264 encoder. Quality is a constant rate factor, lower is better.
type X264 struct{}

func init() {
	Register(&X264{})
}

func (c *X264) Name() string {
	return "libx264"
}

func (c *X264) Reencodes() bool {
	return true
}

func (c *X264) DefaultQuality() int {
	return 23
}

func (c *X264) QualityRange() (min, max int) {
	return 0, 51
}

func (c *X264) QualityArgs(quality int) []string {
	return []string{"-c:v", c.Name(), "-crf", strconv.Itoa(quality)}
}

func (c *X264) LosslessArgs() []string {
	return []string{"-c:v", c.Name(), "-crf", "0", "-preset", "veryslow"}
}
