package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

const generatedPlan = `{
  "book_title": "Linear Algebra",
  "test_day": "20261215",
  "total_plan": {
    "week1": ["vectors", "matrices"],
    "week2": ["determinants"],
    "week3": ["eigenvalues"]
  }
}`

var draftIDPattern = regexp.MustCompile(`Created draft (\S+)`)

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := binaryPath(t)

	// isolate config, logs and keyring lookups
	tempDir := t.TempDir()
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "STUDYPLAN_") {
			continue
		}
		env = append(env, e)
	}
	env = append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("STUDYPLAN_DB=%s", filepath.Join(tempDir, "studyplan", "studyplan.db")),
	)

	runCmd(t, cliPath, env, "init")

	planFile := filepath.Join(tempDir, "plan.json")
	if err := os.WriteFile(planFile, []byte(generatedPlan), 0o600); err != nil {
		t.Fatalf("Failed to write plan file: %v", err)
	}
	out := runCmd(t, cliPath, env, "draft", "import", planFile)
	m := draftIDPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("No draft id in output:\n%s", out)
	}
	draftID := m[1]

	runCmd(t, cliPath, env, "draft", "move", draftID, "week-3", "week-2")
	runCmd(t, cliPath, env, "draft", "submit", draftID, "--name", "Linear algebra final")

	out = runCmd(t, cliPath, env, "plan", "list")
	planID := ""
	for _, line := range strings.Split(out, "\n") {
		if fields := strings.Fields(line); len(fields) > 1 && strings.Contains(line, "Linear algebra final") {
			planID = fields[0]
		}
	}
	if planID == "" {
		t.Fatalf("Submitted plan not listed:\n%s", out)
	}

	out = runCmd(t, cliPath, env, "plan", "show", planID, "--format", "json")
	var shown map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("plan show did not print JSON: %v\n%s", err, out)
	}
	plan := string(shown["test_plan"])
	if !(strings.Index(plan, "week1") < strings.Index(plan, "week3") && strings.Index(plan, "week3") < strings.Index(plan, "week2")) {
		t.Errorf("Reordered weeks not preserved: %s", plan)
	}

	runCmd(t, cliPath, env, "track", "next", planID)
	runCmd(t, cliPath, env, "track", "done", planID)
	out = runCmd(t, cliPath, env, "track", "show", planID)
	if !strings.Contains(out, "[x] matrices") || !strings.Contains(out, "1/4 tasks done (25%)") {
		t.Errorf("Unexpected tracking state:\n%s", out)
	}

	cmd := exec.Command(cliPath, "finish", planID)
	cmd.Env = env
	if finishOut, err := cmd.CombinedOutput(); err == nil {
		t.Errorf("finish succeeded on an incomplete plan:\n%s", finishOut)
	}
}

func binaryPath(t *testing.T) string {
	binDir := os.Getenv("STUDYPLAN_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join("..", "..", "bin")
	}
	cliPath, err := filepath.Abs(filepath.Join(binDir, "studyplan"))
	if err != nil {
		t.Fatalf("Failed to resolve bin dir: %v", err)
	}
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s, build it first", cliPath)
	}
	return cliPath
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		t.Fatalf("Command %s %v failed: %v\nOutput: %s\nStderr: %s", path, args, err, out, stderr)
	}
	return string(out)
}
