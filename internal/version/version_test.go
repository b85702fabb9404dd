package version

import (
	"strings"
	"testing"
)

func override(t *testing.T, v, commit string) {
	t.Helper()
	origVersion, origCommit := Version, GitCommit
	Version, GitCommit = v, commit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if Fingerprint() == "" {
		t.Error("Fingerprint should never be empty")
	}
}

func TestFingerprint(t *testing.T) {
	override(t, "1.2.3", "")
	if got := Fingerprint(); got != "1.2.3" {
		t.Errorf("Fingerprint() = %q", got)
	}
	GitCommit = "abc123"
	if got := Fingerprint(); got != "1.2.3+abc123" {
		t.Errorf("Fingerprint() = %q", got)
	}
}

func TestColored(t *testing.T) {
	override(t, "1.2.3-rc1", "")
	if got := Colored(false); got != "1.2.3-rc1" {
		t.Errorf("Colored(false) = %q", got)
	}
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Errorf("Colored(true) = %q", got)
	}
}

func TestPretty(t *testing.T) {
	override(t, "1.2.3", "abc123")
	out := Pretty(false)
	if !strings.HasPrefix(out, "monoforce 1.2.3\n") || !strings.Contains(out, "commit:  abc123") {
		t.Errorf("Pretty = %q", out)
	}
	if info := Current(); info.Version != "1.2.3" || info.GoVersion == "" {
		t.Errorf("Current = %+v", info)
	}
}
