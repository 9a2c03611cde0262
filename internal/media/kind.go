package media

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/lolhop/ffmpeg-tools/internal/errs"
)

// Kind classifies an input file by its extension.
type Kind int

const (
	// Undetermined is the zero value: the extension matched no known set and
	// kind-specific options are unavailable.
	Undetermined Kind = iota
	Video
	Audio
	Image
)

var kindNames = map[Kind]string{
	Undetermined: "undetermined",
	Video:        "video",
	Audio:        "audio",
	Image:        "image",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "undetermined"
}

var extensions = map[Kind][]string{
	Video: {"mp4", "mkv", "webm", "mov", "avi", "flv", "wmv", "m4v", "mpeg", "mpg", "ts", "3gp"},
	Audio: {"mp3", "wav", "flac", "aac", "m4a", "ogg", "opus", "wma", "aiff"},
	Image: {"jpg", "jpeg", "png", "webp", "bmp", "tiff", "tif", "gif", "avif"},
}

var byExtension = func() map[string]Kind {
	m := make(map[string]Kind)
	for kind, exts := range extensions {
		for _, ext := range exts {
			m[ext] = kind
		}
	}
	return m
}()

// Ext returns the lower-cased extension of path without the leading dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// KindOfExt classifies a bare extension such as "mp4" or ".MP4".
func KindOfExt(ext string) Kind {
	return byExtension[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// Detect classifies path by its extension.
func Detect(path string) Kind {
	return KindOfExt(Ext(path))
}

// Extensions lists the extensions of kind in declaration order.
func Extensions(kind Kind) []string {
	exts := extensions[kind]
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// ParseKind maps a name ("video", "audio", "image") back to a Kind.
func ParseKind(name string) (Kind, error) {
	for kind, n := range kindNames {
		if kind != Undetermined && strings.EqualFold(n, name) {
			return kind, nil
		}
	}
	return Undetermined, errs.Invalid("unknown media kind %q", name)
}

// Kinds returns the determinable kinds in a stable order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(extensions))
	for kind := range extensions {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
