package version

import (
	"runtime"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, version, commit string) {
	t.Helper()
	oldVersion, oldCommit := Version, Commit
	Version, Commit = version, commit
	t.Cleanup(func() {
		Version, Commit = oldVersion, oldCommit
	})
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"dev build", "dev", "none", "dev"},
		{"empty version", "", "none", "dev"},
		{"short commit", "v1.2.0", "abc", "v1.2.0 (abc)"},
		{"long commit", "v1.2.0", "0123456789abcdef", "v1.2.0 (0123456)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, tt.commit)
			if got := Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlatform(t *testing.T) {
	if got := Platform(); got != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform() = %q", got)
	}
}

func TestDetails(t *testing.T) {
	withBuildInfo(t, "v0.3.0", "none")

	out := Details()
	if !strings.HasPrefix(out, "chat_stats version v0.3.0\n") {
		t.Errorf("Unexpected first line in %q", out)
	}
	for _, want := range []string{"commit: none", "go: " + GoVersion, "platform: " + Platform()} {
		if !strings.Contains(out, want) {
			t.Errorf("Details() missing %q", want)
		}
	}
}
