package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const standardsCSV = `id,category,subcategory,title,description,severity,examples,references,tags,rationale,fix_guidance
DS001,drupal_security,xss,Sanitize output,Escape all user-supplied markup before rendering,critical,"{""good"":""Html::escape($input)""}","[""https://www.drupal.org/docs/security""]",xss|security,Prevents script injection,Use Html::escape
DS002,drupal_performance,caching,Cache render arrays,Attach cache metadata to render arrays,high,,,caching|performance,Reduces server load,Add cache keys and contexts
`

func writeCatalog(t *testing.T, dir string) {
	t.Helper()
	dataDir := filepath.Join(dir, "data", "drupal")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "standards.csv"), []byte(standardsCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	config := "plugins:\n  - name: drupal\n    version: 1.0.0\n    data_dir: data/drupal\n"
	if err := os.WriteFile(filepath.Join(dir, "devstandards.yaml"), []byte(config), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestHappyPath(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary e2e in short mode")
	}

	root, err := filepath.Abs("../..")
	if err != nil {
		t.Fatal(err)
	}

	tempDir := t.TempDir()
	bin := filepath.Join(tempDir, "devstandards")

	build := exec.Command("go", "build", "-o", bin, "./cmd/devstandards")
	build.Dir = root
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("build devstandards: %v\n%s", err, out)
	}

	writeCatalog(t, tempDir)

	run := func(args ...string) string {
		cmd := exec.Command(bin, args...)
		cmd.Dir = tempDir
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("devstandards %v failed: %v\nOutput: %s", args, err, output)
		}
		return string(output)
	}

	runAllowFail := func(args ...string) string {
		cmd := exec.Command(bin, args...)
		cmd.Dir = tempDir
		output, _ := cmd.CombinedOutput()
		return string(output)
	}

	t.Log("Running devstandards standards list...")
	out := run("standards", "list")
	if !strings.Contains(out, "DS001") || !strings.Contains(out, "DS002") {
		t.Errorf("list output missing records: %s", out)
	}

	t.Log("Running devstandards standards list with filters...")
	out = run("standards", "list", "--category", "drupal_security")
	if !strings.Contains(out, "DS001") || strings.Contains(out, "DS002") {
		t.Errorf("filtered list wrong: %s", out)
	}

	t.Log("Running devstandards standards search...")
	out = run("standards", "search", "cache")
	if !strings.Contains(out, "DS002") {
		t.Errorf("search output missing DS002: %s", out)
	}

	t.Log("Running devstandards standards get...")
	out = run("standards", "get", "DS001")
	if !strings.Contains(out, "Sanitize output") {
		t.Errorf("get output missing title: %s", out)
	}

	t.Log("Running devstandards standards categories...")
	out = run("standards", "categories")
	if !strings.Contains(out, "drupal_security") || !strings.Contains(out, "drupal_performance") {
		t.Errorf("categories output incomplete: %s", out)
	}

	t.Log("Running devstandards catalog status...")
	out = run("catalog", "status")
	if !strings.Contains(out, "loaded") {
		t.Errorf("status output missing state: %s", out)
	}

	t.Log("Running devstandards standards get with unknown id (expecting failure)...")
	out = runAllowFail("standards", "get", "DS404")
	if !strings.Contains(out, "DS404") {
		t.Errorf("expected not-found error naming the id: %s", out)
	}
}
