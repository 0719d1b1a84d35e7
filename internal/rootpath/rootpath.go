package rootpath

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/forPelevin/projroot/internal/config"
	"github.com/forPelevin/projroot/internal/ports"
	"github.com/forPelevin/projroot/internal/ports/adapters/afsprobe"
	"github.com/forPelevin/projroot/internal/ports/adapters/procenv"
	"github.com/forPelevin/projroot/internal/types"
	"github.com/forPelevin/projroot/internal/usecase"
)

// New wires a resolver over the real process environment and filesystem.
func New(cfg config.Config, logger *log.Logger) *usecase.Resolver {
	return NewWith(cfg, logger, afero.NewOsFs(), procenv.New(cfg.OverrideEnv, cfg.EditorEnv))
}

// NewWith is New with an explicit filesystem and environment source.
func NewWith(cfg config.Config, logger *log.Logger, fs afero.Fs, env ports.EnvSource) *usecase.Resolver {
	probe := afsprobe.New(
		afsprobe.WithFS(fs),
		afsprobe.WithNames(cfg.ManifestFile, cfg.VCSDir, cfg.IgnoreFile),
	)
	return usecase.New(usecase.Deps{
		Env:    env,
		Probe:  probe,
		Logger: logger,
	})
}

var (
	mu  sync.Mutex
	def *usecase.Resolver
)

// Default returns the process-wide resolver, built with default settings on
// first use unless SetDefault installed one.
func Default() *usecase.Resolver {
	mu.Lock()
	defer mu.Unlock()
	if def == nil {
		def = New(config.Default(), nil)
	}
	return def
}

// SetDefault installs r as the process-wide resolver and returns the previous
// one (nil if none was built yet).
func SetDefault(r *usecase.Resolver) *usecase.Resolver {
	mu.Lock()
	defer mu.Unlock()
	prev := def
	def = r
	return prev
}

// ProjectRoot returns the process-wide project root.
func ProjectRoot() string { return Default().ProjectRoot() }

// Manifest returns the manifest of the process-wide project root.
func Manifest() types.Manifest { return Default().Manifest() }

// ShortenPath renders p relative to the process-wide project root.
func ShortenPath(p string) string { return Default().ShortenPath(p) }

// HasPackage reports whether the project depends on and has installed name.
func HasPackage(name string) bool { return Default().HasPackage(name) }

type resolverContextKey struct{}

func WithResolver(ctx context.Context, r *usecase.Resolver) context.Context {
	return context.WithValue(ctx, resolverContextKey{}, r)
}

// FromContext returns the resolver stored in ctx, falling back to Default.
func FromContext(ctx context.Context) *usecase.Resolver {
	if ctx != nil {
		if r, ok := ctx.Value(resolverContextKey{}).(*usecase.Resolver); ok && r != nil {
			return r
		}
	}
	return Default()
}

// ensure adapters implement ports
var _ ports.Prober = (*afsprobe.Adapter)(nil)
var _ ports.EnvSource = (*procenv.Adapter)(nil)
