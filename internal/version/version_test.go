package version

import "testing"

func TestCurrent(t *testing.T) {
	info := Current()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want %q without ldflags", info.Version, "dev")
	}
	if info.GitCommit == "" || info.BuildTime == "" {
		t.Errorf("Current() = %+v, want placeholders", info)
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2026-01-30T12:00:00Z"}
	want := "auxility v1.0.0 (commit: abc1234, built: 2026-01-30T12:00:00Z)"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
