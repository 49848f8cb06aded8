package cli

import (
	"os"
	"testing"
)

func TestExecute(t *testing.T) {
	tempDir, _ := os.MkdirTemp("", "devstandards-root-test-*")
	defer func() { _ = os.RemoveAll(tempDir) }()
	old, _ := os.Getwd()
	defer func() { _ = os.Chdir(old) }()
	_ = os.Chdir(tempDir)

	// Help
	RootCmd.SetArgs([]string{"--help"})
	if err := Execute(); err != nil {
		t.Errorf("Execute failed: %v", err)
	}
}

func TestRootCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"standards": false,
		"catalog":   false,
		"browse":    false,
		"mcp":       false,
	}
	for _, cmd := range RootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
