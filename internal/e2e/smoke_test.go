package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [{
			"name": {"title": "Ms", "first": "Ada", "last": "Lovelace"},
			"email": "ada@example.com",
			"location": {"city": "London", "country": "United Kingdom"},
			"picture": {"thumbnail": "https://example.com/ada.jpg"}
		}]}`))
	}))
	t.Cleanup(server.Close)
	require.NoError(t, writeConfigFixture(home, server.URL))

	stdout, stderr, err := runPPL(t, binaryPath, home,
		"fetch",
		"--email", "ada@example.com",
		"--password", "analytical",
		"--format", "json",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	var result struct {
		Status  string `json:"status"`
		Persons []struct {
			Name string `json:"name"`
		} `json:"persons"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "done", result.Status)
	require.Len(t, result.Persons, 2)
	assert.Equal(t, "Ms Ada Lovelace", result.Persons[0].Name)

	stdout, stderr, err = runPPL(t, binaryPath, home, "config", "show")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, server.URL)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "ppl-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ppl")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build ppl binary: %s", string(output))
	return binaryPath
}

func runPPL(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfigFixture(home, baseURL string) error {
	configDir := filepath.Join(home, ".config", "ppl")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	config := `[api]
base_url = "` + baseURL + `"

[fetch]
pages = 2
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}
