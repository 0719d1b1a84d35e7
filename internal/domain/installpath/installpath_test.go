package installpath

import (
	"testing"

	"github.com/forPelevin/projroot/internal/types"
)

func TestTruncateNodeModules(t *testing.T) {
	tests := map[string]string{
		"/proj/node_modules/pkg/lib":                 "/proj",
		"/proj/node_modules/a/node_modules/b":        "/proj",
		"/proj/node_modules":                         "/proj",
		"/proj/src":                                  "/proj/src",
		"/node_modules":                              "/node_modules",
		"/proj/my_node_modules/x":                    "/proj/my_node_modules/x",
		"/proj/node_modules_cache/x":                 "/proj/node_modules_cache/x",
		"/srv/app/node_modules/.pnpm/x/node_modules": "/srv/app",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := TruncateNodeModules(in); got != want {
				t.Fatalf("TruncateNodeModules(%q) = %q, want %q", in, got, want)
			}
		})
	}
}

func TestInsideAny(t *testing.T) {
	roots := []string{"", "/usr/local/lib/node", "/home/u/.node_modules"}
	cases := []struct {
		dir  string
		want bool
	}{
		{"/usr/local/lib/node", true},
		{"/usr/local/lib/node_modules/projroot/bin", true},
		{"/home/u/.node_modules/x", true},
		{"/home/u/project", false},
		{"/usr/lib/node", false},
	}
	for _, tc := range cases {
		if got := InsideAny(tc.dir, roots); got != tc.want {
			t.Fatalf("InsideAny(%q) = %v, want %v", tc.dir, got, tc.want)
		}
	}
	if InsideAny("/anything", []string{""}) {
		t.Fatalf("empty root must not match")
	}
}

func TestGlobalModulesDir(t *testing.T) {
	if got := GlobalModulesDir("/usr/local/bin/node", "linux"); got != "/usr/local/lib/node_modules" {
		t.Fatalf("linux prefix: got %q", got)
	}
	if got := GlobalModulesDir("/opt/node/node", "windows"); got != "/opt/node/lib/node_modules" {
		t.Fatalf("windows prefix: got %q", got)
	}
	if got := GlobalModulesDir("", "linux"); got != "" {
		t.Fatalf("empty exec path: got %q", got)
	}
}

func TestStripBin(t *testing.T) {
	g := "/usr/local/lib/node_modules"
	if got := StripBin("/usr/local/lib/node_modules/tool/bin", g); got != "/usr/local/lib/node_modules/tool" {
		t.Fatalf("unexpected strip: %q", got)
	}
	if got := StripBin("/usr/local/lib/node_modules/tool/binaries", g); got != "/usr/local/lib/node_modules/tool/binaries" {
		t.Fatalf("must only strip a whole bin segment: %q", got)
	}
	if got := StripBin("/opt/tool/bin", g); got != "/opt/tool/bin" {
		t.Fatalf("must not strip outside the global dir: %q", got)
	}
}

func TestNormalize(t *testing.T) {
	global := types.Snapshot{
		MainScript:      "/usr/local/lib/node_modules/projroot/bin/projroot",
		GlobalDirs:      []string{"/home/u/.node_modules", "/usr/local/lib/node"},
		RuntimeExecPath: "/usr/local/bin/node",
		Platform:        "linux",
	}

	cases := []struct {
		name      string
		candidate string
		env       types.Snapshot
		want      string
		alternate bool
	}{
		{
			name:      "local install is truncated",
			candidate: "/work/app/node_modules/projroot/bin",
			env:       global,
			want:      "/work/app",
		},
		{
			name:      "plain directory is kept",
			candidate: "/work/app/tools",
			env:       global,
			want:      "/work/app/tools",
		},
		{
			name:      "global install uses main script",
			candidate: "/usr/local/lib/node_modules/projroot/bin",
			env:       global,
			want:      "/usr/local/lib",
			alternate: true,
		},
		{
			name:      "global dir without main script is only truncated",
			candidate: "/usr/local/lib/node_modules/projroot/bin",
			env: types.Snapshot{
				GlobalDirs: []string{"/usr/local/lib/node"},
			},
			want: "/usr/local/lib",
		},
		{
			name:      "global with shim outside node_modules",
			candidate: "/home/u/.node_modules/projroot",
			env: types.Snapshot{
				MainScript: "/home/u/work/app/scripts/lint",
				GlobalDirs: []string{"/home/u/.node_modules"},
			},
			want:      "/home/u/work/app/scripts",
			alternate: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, alt := Normalize(tc.candidate, tc.env)
			if got != tc.want || alt != tc.alternate {
				t.Fatalf("Normalize(%q) = %q, %v; want %q, %v", tc.candidate, got, alt, tc.want, tc.alternate)
			}
		})
	}
}
