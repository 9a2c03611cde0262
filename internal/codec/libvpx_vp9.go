package codec

import "strconv"

// VP9 runs libvpx in constant quality mode: a crf together with a zero
// target bitrate. Without "-b:v 0" libvpx treats crf as a cap on a
// constrained bitrate instead.
type VP9 struct{}

func init() {
	Register(&VP9{})
}

func (c *VP9) Name() string {
	return "libvpx-vp9"
}

func (c *VP9) Reencodes() bool {
	return true
}

func (c *VP9) DefaultQuality() int {
	return 31
}

func (c *VP9) QualityRange() (min, max int) {
	return 0, 63
}

func (c *VP9) QualityArgs(quality int) []string {
	return []string{"-c:v", c.Name(), "-crf", strconv.Itoa(quality), "-b:v", "0"}
}

func (c *VP9) LosslessArgs() []string {
	return []string{"-c:v", c.Name(), "-lossless", "1", "-b:v", "0"}
}
