package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	for name, v := range map[string]string{
		"Version":   info.Version,
		"Commit":    info.Commit,
		"BuildTime": info.BuildTime,
		"GoVersion": info.GoVersion,
		"Platform":  info.Platform,
	} {
		if v == "" {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestFillFromBuildInfo(t *testing.T) {
	tests := []struct {
		name  string
		start Info
		bi    debug.BuildInfo
		want  Info
	}{
		{
			name:  "defaults replaced",
			start: Info{Version: "dev", Commit: "unknown", BuildTime: "unknown"},
			bi: debug.BuildInfo{
				Main: debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef0123"},
					{Key: "vcs.time", Value: "2026-10-01T08:00:00Z"},
				},
			},
			want: Info{Version: "v0.3.1", Commit: "0123456789ab", BuildTime: "2026-10-01T08:00:00Z"},
		},
		{
			name:  "ldflags win",
			start: Info{Version: "v1.0.0", Commit: "cafe", BuildTime: "today"},
			bi: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "beef"}},
			},
			want: Info{Version: "v1.0.0", Commit: "cafe", BuildTime: "today"},
		},
		{
			name:  "devel ignored",
			start: Info{Version: "dev", Commit: "unknown", BuildTime: "unknown"},
			bi:    debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want:  Info{Version: "dev", Commit: "unknown", BuildTime: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start
			fillFromBuildInfo(&got, &tt.bi)
			if got != tt.want {
				t.Fatalf("fillFromBuildInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	info := Info{Version: "v0.3.1", Commit: "abc", BuildTime: "now", Platform: "linux/amd64"}
	if got, want := info.String(), "v0.3.1 (abc) built at now linux/amd64"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if !strings.Contains(String(), Get().Version) {
		t.Fatalf("String() = %q, missing version", String())
	}
}
