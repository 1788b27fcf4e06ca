package hints

// Notes:
// - ForEngineConnect tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func TestForEngineConnect_Container(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITLAB_CI", "")
	t.Setenv("JENKINS_URL", "")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")

	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	hint := ForEngineConnect()
	if !strings.Contains(hint, "ROD_NO_SANDBOX=1") {
		t.Errorf("container hint missing sandbox suggestion: %q", hint)
	}
	if !strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Errorf("hint missing browser bin suggestion: %q", hint)
	}
}

func TestForEngineConnect_SandboxAlreadyDisabled(t *testing.T) {
	t.Setenv("CI", "1")
	t.Setenv("ROD_NO_SANDBOX", "1")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	if hint := ForEngineConnect(); hint != "" {
		t.Errorf("nothing to suggest, got %q", hint)
	}
}

func TestHintFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hint string
		want string
	}{
		{"engine unresponsive", ForEngineUnresponsive(), "certgen cleanup"},
		{"config not found", ForConfigNotFound(), "--config"},
		{"empty cell", ForEmptyCell(), "--policy skip"},
		{"mapping", ForMapping(), "--name-column"},
		{"output directory", ForOutputDirectory(), "writable"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q lacks standard prefix", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.want) {
				t.Errorf("hint %q missing %q", tt.hint, tt.want)
			}
		})
	}
}

func TestFormatEmpty(t *testing.T) {
	t.Parallel()

	if format("") != "" {
		t.Error("empty hint must stay empty")
	}
	if formatHints(nil) != "" {
		t.Error("no hints must produce no text")
	}
}
