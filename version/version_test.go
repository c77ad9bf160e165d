package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	v := Version()
	if v == "" || strings.HasPrefix(v, "v") {
		t.Errorf("Version() = %q, want a bare semantic version", v)
	}
	if parts := strings.Split(v, "."); len(parts) != 3 {
		t.Errorf("Version() = %q, want major.minor.patch", v)
	}
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo()
	if !strings.HasPrefix(info, "v"+Version()+" (") {
		t.Errorf("BuildInfo() = %q", info)
	}
	// Without ldflags injection both fields read "unknown".
	if !strings.Contains(info, "unknown") {
		t.Errorf("BuildInfo() = %q, want default build metadata", info)
	}
}
