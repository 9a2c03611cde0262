package codec

// Copy passes the video stream through untouched; only the container changes.
type Copy struct{}

func init() {
	Register(&Copy{})
}

func (c *Copy) Name() string {
	return "copy"
}

func (c *Copy) Reencodes() bool {
	return false
}

func (c *Copy) DefaultQuality() int {
	return 0
}

func (c *Copy) QualityRange() (min, max int) {
	return 0, 0
}

func (c *Copy) QualityArgs(int) []string {
	return []string{"-c:v", "copy"}
}

func (c *Copy) LosslessArgs() []string {
	return []string{"-c:v", "copy"}
}
