package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/expertkit/internal/errors"
)

func TestSubstitutionMap_Apply(t *testing.T) {
	tests := []struct {
		name string
		m    SubstitutionMap
		in   string
		want string
	}{
		{"empty map", nil, "keep", "keep"},
		{"literal", SubstitutionMap{{"${PORT}", "5432"}}, "port=${PORT}", "port=5432"},
		{"every occurrence", SubstitutionMap{{"x", "y"}}, "xax", "yay"},
		{"single pass", SubstitutionMap{{"a", "b"}, {"b", "c"}}, "ab", "bc"},
		{"no regex", SubstitutionMap{{".*", "!"}}, "abc.*", "abc!"},
		{"empty token skipped", SubstitutionMap{{"", "z"}, {"q", "r"}}, "q", "r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Apply(tt.in); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnvSubstitutions_ValueNotRescanned(t *testing.T) {
	// A domain that happens to contain a later token must come through intact.
	spec, err := NewProjectSpec("x${PORT}", 1234)
	if err != nil {
		t.Fatal(err)
	}
	got := EnvSubstitutions(spec).Apply("NAME=your_project_name PORT=${PORT}")
	want := "NAME=x${PORT} PORT=1234"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"pinescript":  "Pinescript",
		"python":      "Python",
		"pine-script": "Pine-Script",
		"go":          "Go",
		"pine_script": "Pine_Script",
		"k8s":         "K8S",
		"web3x":       "Web3X",
		"PineScript":  "Pinescript",
		"2fa":         "2Fa",
	}
	for in, want := range tests {
		if got := TitleCase(in); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSubstituteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	if err := os.WriteFile(path, []byte("# {PROJECT_NAME} Expert\n"), 0640); err != nil {
		t.Fatal(err)
	}
	spec, _ := NewProjectSpec("pinescript", DefaultPort)

	if err := SubstituteFile(path, ReadmeSubstitutions(spec)); err != nil {
		t.Fatalf("SubstituteFile() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "# Pinescript Expert\n" {
		t.Errorf("content = %q", data)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}
}

func TestSubstituteFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.env")
	err := SubstituteFile(path, nil)
	if !errors.Is(err, errors.EFileNotFound) {
		t.Fatalf("error = %v, want %s", err, errors.EFileNotFound)
	}
	e, _ := errors.As(err)
	if e.Details[errors.DetailPath] != path {
		t.Errorf("path detail = %q, want %q", e.Details[errors.DetailPath], path)
	}
}

func TestSubstituteFile_NotUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin.env")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := SubstituteFile(path, nil); !errors.Is(err, errors.EEncoding) {
		t.Fatalf("error = %v, want %s", err, errors.EEncoding)
	}
}
