package installpath

import (
	"path/filepath"
	"strings"

	"github.com/forPelevin/projroot/internal/types"
)

const nodeModules = "node_modules"

// Normalize undoes the effects of the install layout on a starting candidate.
// It reports whether the alternate (global install) resolution was used.
//
// Steps:
//   - inside a global module directory: switch to the main entry's directory,
//     and strip a trailing bin segment when the path sits in the package
//     manager's global lib/node_modules;
//   - cut the path before the first nested node_modules segment.
func Normalize(candidate string, env types.Snapshot) (string, bool) {
	p := candidate
	alternate := false
	if env.MainScript != "" && InsideAny(p, env.GlobalDirs) {
		alternate = true
		p = filepath.Dir(env.MainScript)
		if g := GlobalModulesDir(env.RuntimeExecPath, env.Platform); g != "" {
			p = StripBin(p, g)
		}
	}
	return TruncateNodeModules(p), alternate
}

// InsideAny reports whether dir starts with one of roots. Matching is a plain
// string prefix, so <prefix>/lib/node also covers <prefix>/lib/node_modules.
// Empty roots are ignored.
func InsideAny(dir string, roots []string) bool {
	for _, r := range roots {
		if r != "" && strings.HasPrefix(dir, r) {
			return true
		}
	}
	return false
}

// GlobalModulesDir returns <prefix>/lib/node_modules for the runtime at
// execPath. On windows the prefix is the executable's directory, elsewhere its
// grandparent. Empty execPath yields "".
func GlobalModulesDir(execPath, platform string) string {
	if execPath == "" {
		return ""
	}
	prefix := filepath.Dir(execPath)
	if platform != "windows" {
		prefix = filepath.Dir(prefix)
	}
	return filepath.Join(prefix, "lib", nodeModules)
}

// StripBin removes a trailing bin segment from p when p contains globalDir.
func StripBin(p, globalDir string) string {
	bin := string(filepath.Separator) + "bin"
	if strings.Contains(p, globalDir) && strings.HasSuffix(p, bin) {
		return p[:len(p)-len(bin)]
	}
	return p
}

// TruncateNodeModules cuts p before its first node_modules segment when more
// path follows it, and strips a trailing node_modules segment. The result is
// never empty.
func TruncateNodeModules(p string) string {
	nm := string(filepath.Separator) + nodeModules
	if i := strings.Index(p, nm+string(filepath.Separator)); i > 0 {
		p = p[:i]
	}
	if strings.HasSuffix(p, nm) && len(p) > len(nm) {
		p = p[:len(p)-len(nm)]
	}
	return p
}
