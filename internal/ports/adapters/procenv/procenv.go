package procenv

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/forPelevin/projroot/internal/types"
)

const (
	DefaultOverrideEnv = "APP_ROOT_PATH"
	DefaultNodeBin     = "node"
)

// DefaultEditorEnv are the variables VS Code sets for processes it spawns.
var DefaultEditorEnv = []string{"VSCODE_PID", "VSCODE_IPC_HOOK"}

// Adapter captures the running process environment.
type Adapter struct {
	OverrideEnv string
	EditorEnv   []string
	NodeBin     string

	Getenv     func(string) string
	Getwd      func() (string, error)
	Executable func() (string, error)
	UserHome   func() (string, error)
	LookPath   func(string) (string, error)
	Args       []string
	GOOS       string
}

func New(overrideEnv string, editorEnv []string) *Adapter {
	if overrideEnv == "" {
		overrideEnv = DefaultOverrideEnv
	}
	if len(editorEnv) == 0 {
		editorEnv = DefaultEditorEnv
	}
	return &Adapter{
		OverrideEnv: overrideEnv,
		EditorEnv:   editorEnv,
		NodeBin:     DefaultNodeBin,
		Getenv:      os.Getenv,
		Getwd:       os.Getwd,
		Executable:  os.Executable,
		UserHome:    os.UserHomeDir,
		LookPath:    exec.LookPath,
		Args:        os.Args,
		GOOS:        runtime.GOOS,
	}
}

// Snapshot reads the environment. Lookup failures leave fields empty; the
// resolver treats empty values as absent.
func (a *Adapter) Snapshot() types.Snapshot {
	s := types.Snapshot{
		OverrideRoot: a.Getenv(a.OverrideEnv),
		Platform:     a.GOOS,
	}
	for _, k := range a.EditorEnv {
		s.EditorSignals = append(s.EditorSignals, a.Getenv(k))
	}

	if wd, err := a.Getwd(); err == nil {
		s.Cwd = absOr(wd, "")
	}
	if home, err := a.UserHome(); err == nil {
		s.Home = filepath.Clean(home)
	}

	if exe, err := a.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		s.ModuleDir = filepath.Dir(absOr(exe, s.Cwd))
	}
	if s.ModuleDir == "" {
		s.ModuleDir = s.Cwd
	}
	if len(a.Args) > 0 {
		s.MainScript = a.mainScript(a.Args[0], s.Cwd)
	}

	if a.NodeBin != "" {
		if p, err := a.LookPath(a.NodeBin); err == nil {
			s.RuntimeExecPath = absOr(p, s.Cwd)
		}
	}
	s.GlobalDirs = GlobalDirs(a.Getenv("NODE_PATH"), s.Home, s.RuntimeExecPath, s.Platform)
	return s
}

// mainScript resolves argv[0] the way a shell would have found it.
func (a *Adapter) mainScript(arg0, cwd string) string {
	if arg0 == "" {
		return ""
	}
	if !strings.ContainsRune(arg0, '/') && !strings.ContainsRune(arg0, filepath.Separator) {
		if p, err := a.LookPath(arg0); err == nil {
			arg0 = p
		}
	}
	return absOr(arg0, cwd)
}

// GlobalDirs lists the directories Node treats as global module locations:
// NODE_PATH entries, then ~/.node_modules, ~/.node_libraries and
// <prefix>/lib/node.
func GlobalDirs(nodePath, home, execPath, platform string) []string {
	var dirs []string
	for _, p := range filepath.SplitList(nodePath) {
		if p = strings.TrimSpace(p); p != "" {
			dirs = append(dirs, filepath.Clean(p))
		}
	}
	if home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".node_modules"),
			filepath.Join(home, ".node_libraries"),
		)
	}
	if execPath != "" {
		prefix := filepath.Dir(execPath)
		if platform != "windows" {
			prefix = filepath.Dir(prefix)
		}
		dirs = append(dirs, filepath.Join(prefix, "lib", "node"))
	}
	return dirs
}

func absOr(p, base string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	if base != "" {
		return filepath.Join(base, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
