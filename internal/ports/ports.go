package ports

import "github.com/forPelevin/projroot/internal/types"

// Prober answers filesystem questions for the resolver. Implementations never
// return errors: anything that goes wrong is reported as absent.
type Prober interface {
	DirExists(path string) bool
	FileExists(path string) bool
	ReadManifest(dir string) types.ProbeResult
	IsVCSRoot(dir string) bool
}

// EnvSource produces the environment snapshot the resolver works from.
type EnvSource interface {
	Snapshot() types.Snapshot
}
