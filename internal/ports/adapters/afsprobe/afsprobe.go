package afsprobe

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/forPelevin/projroot/internal/domain/rootwalk"
	"github.com/forPelevin/projroot/internal/types"
)

const (
	DefaultManifestFile = "package.json"
	DefaultVCSDir       = ".git"
	DefaultIgnoreFile   = ".gitignore"
)

// Adapter probes a filesystem for manifests and VCS markers. All errors are
// reported as "not there".
type Adapter struct {
	fs           afero.Fs
	manifestFile string
	vcsDir       string
	ignoreFile   string
}

type Option func(*Adapter)

// WithFS swaps the filesystem, mostly for tests.
func WithFS(fs afero.Fs) Option {
	return func(a *Adapter) {
		if fs != nil {
			a.fs = fs
		}
	}
}

// WithNames overrides the manifest, VCS directory and ignore file names.
// Empty values keep the defaults.
func WithNames(manifestFile, vcsDir, ignoreFile string) Option {
	return func(a *Adapter) {
		if manifestFile != "" {
			a.manifestFile = manifestFile
		}
		if vcsDir != "" {
			a.vcsDir = vcsDir
		}
		if ignoreFile != "" {
			a.ignoreFile = ignoreFile
		}
	}
}

func New(opts ...Option) *Adapter {
	a := &Adapter{
		fs:           afero.NewOsFs(),
		manifestFile: DefaultManifestFile,
		vcsDir:       DefaultVCSDir,
		ignoreFile:   DefaultIgnoreFile,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) DirExists(path string) bool {
	ok, err := afero.DirExists(a.fs, path)
	return err == nil && ok
}

func (a *Adapter) FileExists(path string) bool {
	fi, err := a.fs.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// IsVCSRoot requires both the VCS directory and the ignore file.
func (a *Adapter) IsVCSRoot(dir string) bool {
	return a.DirExists(filepath.Join(dir, a.vcsDir)) &&
		a.FileExists(filepath.Join(dir, a.ignoreFile))
}

func (a *Adapter) ReadManifest(dir string) types.ProbeResult {
	b, err := afero.ReadFile(a.fs, filepath.Join(dir, a.manifestFile))
	if err != nil {
		return types.NotFound(dir)
	}
	m, ok := ParseManifest(b)
	if !ok {
		return types.NotFound(dir)
	}
	return types.Found(dir, m)
}

// ParseManifest decodes manifest JSON. It fails on malformed input, on a
// non-object top level, and when "name" is not a string.
func ParseManifest(b []byte) (types.Manifest, bool) {
	if !gjson.ValidBytes(b) {
		return types.Manifest{}, false
	}
	doc := gjson.ParseBytes(b)
	if !doc.IsObject() {
		return types.Manifest{}, false
	}
	name := doc.Get("name")
	if name.Type != gjson.String {
		return types.Manifest{}, false
	}

	m := types.Manifest{
		Name:             name.Str,
		Root:             rootwalk.ParseMarker(markerValue(doc.Get("root"))),
		Dependencies:     stringMap(doc.Get("dependencies")),
		DevDependencies:  stringMap(doc.Get("devDependencies")),
		PeerDependencies: stringMap(doc.Get("peerDependencies")),
	}
	if v := doc.Get("version"); v.Type == gjson.String {
		m.Version = v.Str
	}
	if p := doc.Get("private"); p.Type == gjson.True {
		m.Private = true
	}
	return m, true
}

func markerValue(r gjson.Result) any {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.String:
		return r.Str
	}
	return nil
}

func stringMap(r gjson.Result) map[string]string {
	if !r.IsObject() {
		return nil
	}
	out := map[string]string{}
	r.ForEach(func(k, v gjson.Result) bool {
		if v.Type == gjson.String {
			out[k.String()] = v.Str
		}
		return true
	})
	return out
}
