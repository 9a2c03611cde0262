package media

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lolhop/ffmpeg-tools/internal/errs"
)

// RecentEnv names the environment variable holding recently referenced files,
// separated by the OS path list separator. It plays the role a clipboard plays
// for a desktop form: a place to pre-populate the input from.
const RecentEnv = "FFMPEG_TOOLS_RECENT"

// RecentFromEnv splits the RecentEnv value into individual paths.
func RecentFromEnv() []string {
	raw := os.Getenv(RecentEnv)
	if raw == "" {
		return nil
	}
	var paths []string
	for _, p := range filepath.SplitList(raw) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Candidate picks the first path that is an existing regular file of one of
// the wanted kinds. With no kinds given any known kind is accepted.
func Candidate(paths []string, want ...Kind) (string, bool) {
	for _, p := range paths {
		kind := Detect(p)
		if kind == Undetermined || (len(want) > 0 && !containsKind(want, kind)) {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		return abs, true
	}
	return "", false
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// CheckInput verifies that path names an existing regular file whose
// extension classifies as a known kind, and returns its absolute form.
func CheckInput(path string) (string, Kind, error) {
	if path == "" {
		return "", Undetermined, errs.Invalid("no input file given")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", Undetermined, errs.Invalid("resolve %s: %v", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", Undetermined, errs.Invalid("input file %s does not exist", abs)
	}
	if !info.Mode().IsRegular() {
		return "", Undetermined, errs.Invalid("input %s is not a regular file", abs)
	}
	kind := Detect(abs)
	if kind == Undetermined {
		return "", Undetermined, errs.Invalid("unsupported extension %q", filepath.Ext(abs))
	}
	return abs, kind, nil
}
