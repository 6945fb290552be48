package buildinfo

import (
	"strings"
	"testing"
)

func setVars(t *testing.T, version, commit, date string) {
	t.Helper()
	fill()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestShort(t *testing.T) {
	setVars(t, "v1.2.0", "3f2a9c1d0e5b", "2026-01-02T03:04:05Z")
	if got := Short(); got != "v1.2.0 (3f2a9c1)" {
		t.Errorf("Short() = %q", got)
	}

	setVars(t, "v1.2.0", "none", "unknown")
	if got := Short(); got != "v1.2.0" {
		t.Errorf("Short() without commit = %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	setVars(t, "v0.3.1", "abc", "today")
	if got := UserAgent(); got != "votecloud/v0.3.1" {
		t.Errorf("UserAgent() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	setVars(t, "v0.3.1", "abc", "2026-01-02")
	tmpl := Template()
	for _, want := range []string{"{{.Name}} v0.3.1", "commit: abc", "built: 2026-01-02"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
	if !strings.Contains(String(), "version: v0.3.1") {
		t.Errorf("String() = %q", String())
	}
}
