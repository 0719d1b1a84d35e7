package types

// Snapshot is a read-only view of everything the root resolver looks at in
// the process environment. It is captured once and never mutated.
type Snapshot struct {
	// OverrideRoot is the raw value of the override variable (APP_ROOT_PATH).
	OverrideRoot string `json:"override_root,omitempty" yaml:"override_root,omitempty"`
	// EditorSignals holds the values of the editor detection variables, in order.
	EditorSignals []string `json:"editor_signals,omitempty" yaml:"editor_signals,omitempty"`

	Cwd        string `json:"cwd" yaml:"cwd"`
	ModuleDir  string `json:"module_dir" yaml:"module_dir"`
	MainScript string `json:"main_script,omitempty" yaml:"main_script,omitempty"`
	Home       string `json:"home,omitempty" yaml:"home,omitempty"`

	GlobalDirs      []string `json:"global_dirs,omitempty" yaml:"global_dirs,omitempty"`
	RuntimeExecPath string   `json:"runtime_exec_path,omitempty" yaml:"runtime_exec_path,omitempty"`
	Platform        string   `json:"platform" yaml:"platform"`
}

// LaunchedFromEditor reports whether every editor signal is present.
func (s Snapshot) LaunchedFromEditor() bool {
	if len(s.EditorSignals) == 0 {
		return false
	}
	for _, v := range s.EditorSignals {
		if v == "" {
			return false
		}
	}
	return true
}

// RootMarker is the tri-state value of a manifest's "root" field.
type RootMarker int8

const (
	MarkerAbsent RootMarker = iota
	MarkerTrue
	MarkerFalse
)

func (m RootMarker) String() string {
	switch m {
	case MarkerTrue:
		return "true"
	case MarkerFalse:
		return "false"
	default:
		return "absent"
	}
}

type Manifest struct {
	Name    string     `json:"name" yaml:"name"`
	Version string     `json:"version,omitempty" yaml:"version,omitempty"`
	Private bool       `json:"private,omitempty" yaml:"private,omitempty"`
	Root    RootMarker `json:"-" yaml:"-"`

	Dependencies     map[string]string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty" yaml:"devDependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty" yaml:"peerDependencies,omitempty"`

	// Synthesized is set when no manifest exists on disk and this one was
	// built in memory from the directory name.
	Synthesized bool `json:"synthesized,omitempty" yaml:"synthesized,omitempty"`
}

// Lists reports whether name appears in dependencies or devDependencies.
func (m Manifest) Lists(name string) bool {
	if _, ok := m.DevDependencies[name]; ok {
		return true
	}
	_, ok := m.Dependencies[name]
	return ok
}

// ProbeResult is the outcome of looking for a manifest in one directory.
// The zero value means not found.
type ProbeResult struct {
	Found    bool
	Dir      string
	Manifest Manifest
}

func Found(dir string, m Manifest) ProbeResult {
	return ProbeResult{Found: true, Dir: dir, Manifest: m}
}

func NotFound(dir string) ProbeResult {
	return ProbeResult{Dir: dir}
}

// Source names the branch that produced the walk's starting directory.
type Source string

const (
	SourceOverride Source = "override"
	SourceEditor   Source = "editor"
	SourceModule   Source = "module"
)

type Resolution struct {
	Root      string   `json:"root" yaml:"root"`
	Manifest  Manifest `json:"manifest" yaml:"manifest"`
	Source    Source   `json:"source" yaml:"source"`
	Start     string   `json:"start" yaml:"start"`
	Alternate bool     `json:"alternate,omitempty" yaml:"alternate,omitempty"`
	IsGitRepo bool     `json:"git_repo" yaml:"git_repo"`
	Visited   []string `json:"visited,omitempty" yaml:"visited,omitempty"`
}
