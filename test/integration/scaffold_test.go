//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var wantLayout = []string{
	".env",
	".env.example",
	"README.md",
	"configs/project.yaml",
	"docker-compose.yml",
	"scripts/init_db.sql",
}

var wantDirs = []string{"postgres_data", "knowledge", "knowledge/memory", "logs"}

func TestScaffoldDefaultPort(t *testing.T) {
	env := setupTestEnv(t)
	env.installTemplate(t)

	res := env.mustRun(t, "pinescript")
	if !strings.Contains(res.Stdout, "Created ExpertKit project at") {
		t.Errorf("stdout missing summary:\n%s", res.Stdout)
	}
	if !strings.Contains(res.Stdout, "expertkit db init") {
		t.Errorf("stdout missing next steps:\n%s", res.Stdout)
	}

	dir := env.ProjectDir("pinescript")
	for _, rel := range wantLayout {
		assertFileExists(t, filepath.Join(dir, filepath.FromSlash(rel)))
	}
	for _, rel := range wantDirs {
		assertDirExists(t, filepath.Join(dir, filepath.FromSlash(rel)))
	}

	dotenv := readFile(t, filepath.Join(dir, ".env"))
	for _, token := range []string{"your_project_name", "${PORT}", "${PROJECT_NAME}"} {
		if strings.Contains(dotenv, token) {
			t.Errorf(".env still contains %q:\n%s", token, dotenv)
		}
	}
	if !strings.Contains(dotenv, "localhost:54322/pinescript") {
		t.Errorf(".env missing default port and domain:\n%s", dotenv)
	}

	readme := readFile(t, filepath.Join(dir, "README.md"))
	if !strings.HasPrefix(readme, "# Pinescript Expert") {
		t.Errorf("README does not start with the title-cased name:\n%s", readme)
	}

	cfg := readFile(t, filepath.Join(dir, "configs", "project.yaml"))
	if !strings.Contains(cfg, "name: pinescript") {
		t.Errorf("project.yaml not substituted:\n%s", cfg)
	}
}

func TestScaffoldCustomPort(t *testing.T) {
	env := setupTestEnv(t)
	env.installTemplate(t)

	env.mustRun(t, "python", "54323")

	dotenv := readFile(t, filepath.Join(env.ProjectDir("python"), ".env"))
	if !strings.Contains(dotenv, "POSTGRES_PORT=54323") {
		t.Errorf(".env missing POSTGRES_PORT=54323:\n%s", dotenv)
	}
	if strings.Contains(dotenv, "54322") {
		t.Errorf(".env still contains the default port:\n%s", dotenv)
	}
}

func TestScaffoldTwiceFails(t *testing.T) {
	env := setupTestEnv(t)
	env.installTemplate(t)
	env.mustRun(t, "pinescript")

	readmePath := filepath.Join(env.ProjectDir("pinescript"), "README.md")
	before := readFile(t, readmePath)

	res := env.run(t, "pinescript")
	if res.ExitCode != 1 {
		t.Fatalf("exit code = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "error_code: E_DESTINATION_EXISTS") {
		t.Errorf("stderr = %q", res.Stderr)
	}
	if !strings.Contains(lastLine(res.Stderr), "pinescript-expert") {
		t.Errorf("last stderr line should name the project path: %q", lastLine(res.Stderr))
	}
	if after := readFile(t, readmePath); after != before {
		t.Error("existing project was modified by the second run")
	}
}

func TestScaffoldMissingTemplate(t *testing.T) {
	env := setupTestEnv(t)

	res := env.run(t, "pinescript")
	if res.ExitCode != 1 {
		t.Fatalf("exit code = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "error_code: E_TEMPLATE_NOT_FOUND") {
		t.Errorf("stderr = %q", res.Stderr)
	}
	if !strings.Contains(lastLine(res.Stderr), "project_template") {
		t.Errorf("last stderr line should name the template path: %q", lastLine(res.Stderr))
	}
	assertNotExists(t, env.ProjectDir("pinescript"))
}

func TestScaffoldUsageErrors(t *testing.T) {
	env := setupTestEnv(t)
	env.installTemplate(t)

	for _, args := range [][]string{{}, {"python", "not-a-port"}, {"a", "1", "2"}} {
		res := env.run(t, args...)
		if res.ExitCode != 1 {
			t.Errorf("%v exit code = %d, want 1", args, res.ExitCode)
		}
		if !strings.Contains(res.Stderr, "error_code: E_USAGE") {
			t.Errorf("%v stderr = %q", args, res.Stderr)
		}
	}
	if entries, err := os.ReadDir(env.ProjectsDir()); err == nil && len(entries) > 0 {
		t.Errorf("usage errors created projects: %v", entries)
	}
}

func TestScaffoldCustomDirs(t *testing.T) {
	env := setupTestEnv(t)
	templateDir := filepath.Join(env.HomeDir, "tpl")
	projectsDir := filepath.Join(env.HomeDir, "work")

	env.mustRun(t, "template", "install", "--template-dir", templateDir)
	env.mustRun(t, "go", "--template-dir", templateDir, "--projects-dir", projectsDir)

	assertFileExists(t, filepath.Join(projectsDir, "go-expert", ".env"))
	assertNotExists(t, env.ProjectsDir())
}
