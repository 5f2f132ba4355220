//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDoctorOnNewProject(t *testing.T) {
	env := setupTestEnv(t)
	env.installTemplate(t)
	env.mustRun(t, "pinescript")

	res := env.mustRun(t, "doctor", "--project", env.ProjectDir("pinescript"))
	for _, want := range []string{"[ OK ] template found", "[ OK ] project layout complete", "[ OK ] configs/project.yaml is valid"} {
		if !strings.Contains(res.Stdout, want) {
			t.Errorf("doctor output missing %q:\n%s", want, res.Stdout)
		}
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	env.installTemplate(t)
	env.mustRun(t, "pinescript")
	dir := env.ProjectDir("pinescript")

	env.mustRun(t, "memory", "set", "--project", dir, "glossary", `{"pine":"TradingView scripting"}`)
	assertFileExists(t, filepath.Join(dir, "knowledge", "memory", "pinescript", "glossary.json"))

	res := env.mustRun(t, "memory", "get", "--project", dir, "glossary")
	if !strings.Contains(res.Stdout, "TradingView scripting") {
		t.Errorf("memory get output:\n%s", res.Stdout)
	}
}

func TestEnvShowRedactsSecrets(t *testing.T) {
	env := setupTestEnv(t)
	env.installTemplate(t)
	env.mustRun(t, "pinescript")
	dir := env.ProjectDir("pinescript")

	dotenv := filepath.Join(dir, ".env")
	content := readFile(t, dotenv)
	content = strings.Replace(content, "OPENAI_API_KEY=", "OPENAI_API_KEY=sk-integration-secret", 1)
	writeFile(t, dotenv, content)

	res := env.mustRun(t, "env", "show", "--project", dir)
	if strings.Contains(res.Stdout, "integration-secret") {
		t.Errorf("env show leaked the API key:\n%s", res.Stdout)
	}
	if !strings.Contains(res.Stdout, "PROJECT_NAME=pinescript") {
		t.Errorf("env show output:\n%s", res.Stdout)
	}
}

func TestChatWithoutAPIKey(t *testing.T) {
	env := setupTestEnv(t)
	env.installTemplate(t)
	env.mustRun(t, "pinescript")

	res := env.run(t, "chat", "--project", env.ProjectDir("pinescript"))
	if res.ExitCode != 1 {
		t.Fatalf("exit code = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "error_code: E_INVALID_CONFIG") || !strings.Contains(res.Stderr, "OPENAI_API_KEY") {
		t.Errorf("stderr = %q", res.Stderr)
	}
}

// TestDBInit needs a Postgres with the vector extension, e.g. the project's
// docker-compose service.
func TestDBInit(t *testing.T) {
	dsn := os.Getenv("EXPERTKIT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("EXPERTKIT_TEST_DATABASE_URL not set")
	}

	env := setupTestEnv(t)
	env.installTemplate(t)
	env.mustRun(t, "pinescript")
	dir := env.ProjectDir("pinescript")
	writeFile(t, filepath.Join(dir, ".env"), "DATABASE_URL="+dsn+"\n")

	res := env.mustRun(t, "db", "init", "--project", dir)
	if !strings.Contains(res.Stdout, "Initialized database") {
		t.Errorf("db init output:\n%s", res.Stdout)
	}
	res = env.mustRun(t, "db", "query", "--project", dir, "SELECT count(*) AS n FROM documentation")
	if !strings.Contains(res.Stdout, `"n"`) {
		t.Errorf("db query output:\n%s", res.Stdout)
	}
}
