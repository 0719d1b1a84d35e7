package usecase

import (
	"io"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/forPelevin/projroot/internal/domain/installpath"
	"github.com/forPelevin/projroot/internal/domain/rootwalk"
	"github.com/forPelevin/projroot/internal/ports"
	"github.com/forPelevin/projroot/internal/types"
)

type Deps struct {
	Env    ports.EnvSource
	Probe  ports.Prober
	Logger *log.Logger
}

// Resolver finds the project root once and serves the cached answer for the
// rest of its life. It is safe for concurrent use: racing first calls may both
// compute, and the first stored result wins.
type Resolver struct {
	d Deps

	st atomic.Pointer[state]
}

type state struct {
	env      types.Snapshot
	res      types.Resolution
	packages sync.Map // package name -> bool
}

func New(d Deps) *Resolver {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return &Resolver{d: d}
}

// ProjectRoot returns the absolute project root directory.
func (r *Resolver) ProjectRoot() string {
	return r.Resolution().Root
}

// Manifest returns the manifest bound to the root, loaded or synthesized.
func (r *Resolver) Manifest() types.Manifest {
	return r.Resolution().Manifest
}

func (r *Resolver) Resolution() types.Resolution {
	return r.load().res
}

// Snapshot returns the environment the cached resolution was computed from.
func (r *Resolver) Snapshot() types.Snapshot {
	return r.load().env
}

func (r *Resolver) load() *state {
	if cur := r.st.Load(); cur != nil {
		return cur
	}
	env := r.d.Env.Snapshot()
	st := &state{env: env, res: r.resolve(env)}
	if !r.st.CompareAndSwap(nil, st) {
		return r.st.Load()
	}
	return st
}

// Reset drops the cached resolution. Only tests need this.
// Package lookups are cached alongside the resolution, so they go with it.
func (r *Resolver) Reset() {
	r.st.Store(nil)
}

func (r *Resolver) resolve(env types.Snapshot) types.Resolution {
	logger := r.d.Logger

	out := types.Resolution{}
	start := r.overrideDir(env)
	switch {
	case start != "":
		out.Source = types.SourceOverride
	case env.LaunchedFromEditor():
		start = env.Cwd
		out.Source = types.SourceEditor
	default:
		out.Source = types.SourceModule
		start, out.Alternate = installpath.Normalize(env.ModuleDir, env)
	}
	if start == "" {
		start = fallbackDir()
	}
	out.Start = start
	logger.Debug("walk start", "source", out.Source, "dir", start, "alternate", out.Alternate)

	w := rootwalk.Walk(start, env.Home, r.d.Probe)
	out.Root = w.Root
	out.Visited = w.Visited
	out.IsGitRepo = w.IsGitRepo

	found := w.Manifest
	if !found.Found {
		found = r.d.Probe.ReadManifest(out.Root)
	}
	if found.Found {
		out.Manifest = found.Manifest
	} else {
		out.Manifest = types.Manifest{
			Name:        filepath.Base(out.Root),
			Private:     true,
			Synthesized: true,
		}
	}
	if !w.GitChecked {
		out.IsGitRepo = r.d.Probe.IsVCSRoot(out.Root)
	}

	logger.Debug("root resolved",
		"root", out.Root,
		"name", out.Manifest.Name,
		"synthesized", out.Manifest.Synthesized,
		"git", out.IsGitRepo,
		"steps", len(out.Visited),
	)
	return out
}

// fallbackDir is the start used when neither the working directory nor the
// executable location could be read.
func fallbackDir() string {
	if abs, err := filepath.Abs("."); err == nil {
		return abs
	}
	return string(filepath.Separator)
}

// overrideDir returns the override directory made absolute against the
// working directory, or "" when it is unset or not an existing directory.
func (r *Resolver) overrideDir(env types.Snapshot) string {
	p := strings.TrimSpace(env.OverrideRoot)
	if p == "" {
		return ""
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(env.Cwd, p)
	}
	p = filepath.Clean(p)
	if !r.d.Probe.DirExists(p) {
		return ""
	}
	return p
}

// HasPackage reports whether the root manifest lists name in dependencies or
// devDependencies and the package can be found in a node_modules directory at
// the root or above it.
func (r *Resolver) HasPackage(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	st := r.load()
	if v, ok := st.packages.Load(name); ok {
		return v.(bool)
	}
	ok := st.res.Manifest.Lists(name) && r.installed(st.res.Root, name)
	st.packages.Store(name, ok)
	r.d.Logger.Debug("package lookup", "name", name, "present", ok)
	return ok
}

func (r *Resolver) installed(root, name string) bool {
	rel := filepath.Join("node_modules", filepath.FromSlash(name), "package.json")
	for dir := root; ; {
		if r.d.Probe.FileExists(filepath.Join(dir, rel)) {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == "." || parent == "" {
			return false
		}
		dir = parent
	}
}

// ShortenPath renders p relative to the project root when it lies inside it.
// Relative inputs are taken from the working directory of the snapshot.
func (r *Resolver) ShortenPath(p string) string {
	if p == "" {
		return p
	}
	st := r.load()
	root := st.res.Root
	if !filepath.IsAbs(p) {
		p = filepath.Join(st.env.Cwd, p)
	}
	p = filepath.Clean(p)
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return rel
}
