package codec

import "strconv"

// Image quality is ffmpeg's -q:v scale, where 1 is the best the encoder can do.
const (
	BestImageQuality  = 1
	WorstImageQuality = 31
)

// ImageQualityArgs returns the arguments selecting image quality q.
func ImageQualityArgs(q int) []string {
	return []string{"-q:v", strconv.Itoa(q)}
}
