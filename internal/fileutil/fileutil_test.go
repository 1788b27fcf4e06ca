package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain name unchanged",
			input: "Ivanova Maria",
			want:  "Ivanova Maria",
		},
		{
			name:  "every illegal character replaced",
			input: `a<b>c:d"e/f\g|h?i*j`,
			want:  "a_b_c_d_e_f_g_h_i_j",
		},
		{
			name:  "control characters replaced",
			input: "line\x00break\x1f",
			want:  "line_break_",
		},
		{
			name:  "trailing dots and spaces trimmed",
			input: "group one.. ",
			want:  "group one",
		},
		{
			name:  "empty falls back",
			input: "",
			want:  "certificate",
		},
		{
			name:  "only illegal characters falls back after trim",
			input: "   ",
			want:  "certificate",
		},
		{
			name:  "unicode preserved",
			input: "Яковлева Анна",
			want:  "Яковлева Анна",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SanitizeName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Determinism: same input, same output.
			if again := SanitizeName(tt.input); again != got {
				t.Errorf("SanitizeName(%q) not deterministic: %q then %q", tt.input, got, again)
			}
		})
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := WriteTempFile("<html></html>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile: %v", err)
	}
	defer cleanup()

	if !strings.HasPrefix(filepath.Base(path), TempPrefix) {
		t.Errorf("temp file %q missing %q prefix", path, TempPrefix)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("temp file content = %q", data)
	}

	cleanup()
	if FileExists(path) {
		t.Error("cleanup did not remove temp file")
	}
}

func TestWriteTempFileInvalidExtension(t *testing.T) {
	t.Parallel()

	if _, _, err := WriteTempFile("x", ""); err == nil {
		t.Error("empty extension accepted")
	}
	if _, _, err := WriteTempFile("x", "a/b"); err == nil {
		t.Error("extension with separator accepted")
	}
}

func TestSweepTempFiles(t *testing.T) {
	// Not parallel: shares the real temp dir with other tests.
	f, err := os.CreateTemp("", TempPrefix+"*.html")
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	name := f.Name()
	_ = f.Close()

	if n := StaleTempFiles(); n < 1 {
		t.Errorf("StaleTempFiles = %d, want at least 1", n)
	}
	if !FileExists(name) {
		t.Error("counting must not remove files")
	}

	if n := SweepTempFiles(); n < 1 {
		t.Errorf("SweepTempFiles removed %d files, want at least 1", n)
	}
	if FileExists(name) {
		t.Errorf("leftover %q survived sweep", name)
	}
}
