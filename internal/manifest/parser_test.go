package manifest

import (
	"path/filepath"
	"testing"
)

func TestParseFile_Valid(t *testing.T) {
	p, err := ParseFile(filepath.Join("testdata", "valid.yaml"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if p.Project.Name != "pinescript" {
		t.Errorf("Project.Name = %q, want %q", p.Project.Name, "pinescript")
	}
	if p.Agent.Model != "openai:gpt-4o-mini" {
		t.Errorf("Agent.Model = %q", p.Agent.Model)
	}
	if p.Agent.Temperature == nil || *p.Agent.Temperature != 0.2 {
		t.Errorf("Agent.Temperature = %v, want 0.2", p.Agent.Temperature)
	}
	if !p.Controller.Remember {
		t.Error("Controller.Remember = false, want true")
	}
	if p.Memory.Namespace != "pinescript" {
		t.Errorf("Memory.Namespace = %q", p.Memory.Namespace)
	}
	if p.UI.PageIcon != "🤖" {
		t.Errorf("UI.PageIcon = %q", p.UI.PageIcon)
	}
}

func TestParseFile_Defaults(t *testing.T) {
	p, err := ParseFile(filepath.Join("testdata", "minimal.yaml"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"model", p.Agent.Model, DefaultModel},
		{"strategy", p.Controller.Strategy, StrategyDirect},
		{"backend", p.Memory.Backend, BackendFile},
		{"namespace", p.Memory.Namespace, DefaultNamespace},
		{"file_path", p.Memory.FilePath, DefaultMemoryPath},
		{"page_title", p.UI.PageTitle, "python"},
		{"addr", p.Server.Addr, DefaultServerAddr},
		{"log level", p.Logging.Level, DefaultLogLevel},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if p.Agent.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", p.Agent.MaxTokens, DefaultMaxTokens)
	}
	if p.Agent.Temperature == nil || *p.Agent.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", p.Agent.Temperature, DefaultTemperature)
	}
}

func TestParse_ExplicitZeroTemperature(t *testing.T) {
	p, err := Parse([]byte("project:\n  name: x\nagent:\n  temperature: 0\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Agent.Temperature == nil || *p.Agent.Temperature != 0 {
		t.Errorf("Temperature = %v, want 0", p.Agent.Temperature)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("project: [unclosed")); err == nil {
		t.Error("Parse() expected error for malformed YAML")
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join("testdata", "nope.yaml")); err == nil {
		t.Error("ParseFile() expected error for missing file")
	}
}
