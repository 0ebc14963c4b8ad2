package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "bankfeed-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "bankfeed")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/bankfeed")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runBankfeed(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// missingConfig points a command at a config path that does not exist, so
// it falls back to defaults and the in-memory store.
func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "bankfeed.yaml")
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := runBankfeed(t, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "bankfeed.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "default_currency: EUR")
	assert.Contains(t, contents, "description_limit: 255")
	assert.Contains(t, contents, "level: info")
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runBankfeed(t, "init", dir)
	require.NoError(t, err)

	out, err := runBankfeed(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, out, "already exists")
}
