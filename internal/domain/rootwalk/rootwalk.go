package rootwalk

import (
	"path/filepath"
	"strings"

	"github.com/forPelevin/projroot/internal/types"
)

// Probe is the subset of filesystem questions the walk needs.
type Probe interface {
	ReadManifest(dir string) types.ProbeResult
	IsVCSRoot(dir string) bool
}

type Outcome struct {
	Root     string
	Manifest types.ProbeResult
	// GitChecked is set when the walk already evaluated IsGitRepo for Root.
	GitChecked bool
	IsGitRepo  bool
	Visited    []string
}

// Walk ascends from start looking for the directory that owns the project
// manifest. Root only moves to directories where a manifest was found, so a
// tree without manifests leaves Root at start.
//
// The walk never probes home or the filesystem root, and each step moves to a
// strictly shorter parent, so it ends after at most depth(start) steps.
func Walk(start, home string, p Probe) Outcome {
	out := Outcome{Root: start}
	for current := start; current != ""; {
		out.Visited = append(out.Visited, current)
		if res := p.ReadManifest(current); res.Found {
			out.Manifest = res
			out.Root = current
			out.GitChecked = false
			out.IsGitRepo = false
			switch res.Manifest.Root {
			case types.MarkerTrue:
				return out
			case types.MarkerAbsent:
				out.GitChecked = true
				out.IsGitRepo = p.IsVCSRoot(current)
				if out.IsGitRepo {
					return out
				}
			}
		}

		parent := filepath.Dir(current)
		if parent == "" || parent == "." || parent == current {
			break
		}
		if (home != "" && parent == home) || IsFilesystemRoot(parent) {
			break
		}
		current = parent
	}
	return out
}

// IsFilesystemRoot reports whether dir is "/" or a volume root such as `C:\`.
func IsFilesystemRoot(dir string) bool {
	if dir == "/" || dir == string(filepath.Separator) {
		return true
	}
	vol := filepath.VolumeName(dir)
	return vol != "" && (dir == vol || dir == vol+string(filepath.Separator))
}

// ParseMarker maps a manifest "root" value onto a RootMarker. It accepts a
// bool, or a string equal (ignoring case) to "true"/"false", or "1"/"0".
// Every other value, including nil and JSON numbers, is absent.
func ParseMarker(v any) types.RootMarker {
	switch t := v.(type) {
	case bool:
		if t {
			return types.MarkerTrue
		}
		return types.MarkerFalse
	case string:
		switch {
		case t == "1" || strings.EqualFold(t, "true"):
			return types.MarkerTrue
		case t == "0" || strings.EqualFold(t, "false"):
			return types.MarkerFalse
		}
	}
	return types.MarkerAbsent
}
