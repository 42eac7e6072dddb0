package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bnema/ppl/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestFetchRequiresCredentialFlags(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "fetch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
}

func TestFetchRejectsInvalidCredentialsWithoutRequest(t *testing.T) {
	server, calls := newRandomUserServer(t, http.StatusOK)
	t.Setenv("PPL_API_BASE_URL", server.URL)

	_, _, err := executeCLI(t, t.TempDir(), "fetch", "--email", "a@b", "--password", "12345")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email address")
	assert.Contains(t, err.Error(), "password must be at least 6 characters")
	assert.Zero(t, calls.Load())
}

func TestFetchRejectsUnknownFormat(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(),
		"fetch", "--email", "a@b.co", "--password", "123456", "--format", "yaml",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format \"yaml\"")
}

func TestFetchJSONOutputAccumulatesPages(t *testing.T) {
	server, calls := newRandomUserServer(t, http.StatusOK)
	t.Setenv("PPL_API_BASE_URL", server.URL)

	stdout, _, err := executeCLI(t, t.TempDir(),
		"fetch", "--email", "a@b.co", "--password", "123456", "--format", "json",
	)
	require.NoError(t, err)
	assert.Equal(t, int64(3), calls.Load())

	var result fetchOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, domain.FetchStatusDone, result.Status)
	require.Len(t, result.Persons, 6)
	assert.Equal(t, "Mr John Smith1", result.Persons[0].Name)
	assert.Equal(t, "john1@example.com", result.Persons[0].Email)
	assert.Equal(t, "Leeds, United Kingdom", result.Persons[0].Address)
	assert.Contains(t, stdout, "\"status\": \"done\"")
}

func TestFetchFiltersBySearch(t *testing.T) {
	server, _ := newRandomUserServer(t, http.StatusOK)
	t.Setenv("PPL_API_BASE_URL", server.URL)
	t.Setenv("PPL_FETCH_PAGES", "2")

	stdout, _, err := executeCLI(t, t.TempDir(),
		"fetch", "--email", "a@b.co", "--password", "123456", "--search", "JANE", "--format", "toml",
	)
	require.NoError(t, err)

	var result fetchOutput
	require.NoError(t, toml.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "JANE", result.Search)
	require.Len(t, result.Persons, 2)
	for _, person := range result.Persons {
		assert.Contains(t, person.Name, "Jane")
	}
}

func TestFetchTextOutput(t *testing.T) {
	server, _ := newRandomUserServer(t, http.StatusOK)
	t.Setenv("PPL_API_BASE_URL", server.URL)
	t.Setenv("PPL_FETCH_PAGES", "1")

	stdout, _, err := executeCLI(t, t.TempDir(), "fetch", "--email", "a@b.co", "--password", "123456")
	require.NoError(t, err)
	assert.Contains(t, stdout, "persons: 2")
	assert.Contains(t, stdout, "Mr John Smith1")
	assert.Contains(t, stdout, "jane1@example.com")
}

func TestFetchFailureExitsWithError(t *testing.T) {
	server, calls := newRandomUserServer(t, http.StatusServiceUnavailable)
	t.Setenv("PPL_API_BASE_URL", server.URL)

	stdout, _, err := executeCLI(t, t.TempDir(),
		"fetch", "--email", "a@b.co", "--password", "123456", "--format", "json",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "fetch page 1 of 3")
	assert.Empty(t, stdout)
	assert.Equal(t, int64(1), calls.Load())
}

func TestFetchLogsToStderr(t *testing.T) {
	server, _ := newRandomUserServer(t, http.StatusOK)
	t.Setenv("PPL_API_BASE_URL", server.URL)
	t.Setenv("PPL_FETCH_PAGES", "1")

	_, stderr, err := executeCLI(t, t.TempDir(),
		"fetch", "--email", "a@b.co", "--password", "123456", "--format", "json", "--log-level", "debug",
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "fetch sequence finished")
	assert.Contains(t, stderr, "sequence_id=")
}

func TestInvalidLogLevelFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "config", "show", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home, `
[api]
base_url = "http://localhost:9000"

[fetch]
pages = 4
`))
	t.Setenv("PPL_LOG_FORMAT", "json")

	stdout, _, err := executeCLI(t, home, "config", "show", "--metrics-listen", "127.0.0.1:9464")
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, toml.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "http://localhost:9000", decoded["api"]["base_url"])
	assert.EqualValues(t, 4, decoded["fetch"]["pages"])
	assert.Equal(t, "15s", decoded["fetch"]["timeout"])
	assert.Equal(t, "json", decoded["log"]["format"])
	assert.Equal(t, "127.0.0.1:9464", decoded["metrics"]["listen"])
}

func TestConfigShowWithMissingExplicitFile(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "config", "show", "--config", filepath.Join(home, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestMetricsServerServesDuringRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	server, _ := newRandomUserServer(t, http.StatusOK)
	t.Setenv("PPL_API_BASE_URL", server.URL)

	a, err := wireApp(&rootOptions{metricsListen: "127.0.0.1:0"}, nil)
	require.NoError(t, err)
	t.Cleanup(a.controller.Close)

	var body string
	err = a.withMetricsServer(context.Background(), func(ctx context.Context) error {
		a.controller.Login("a@b.co", "123456")
		if err := a.controller.Wait(ctx); err != nil {
			return err
		}

		response, err := http.Get("http://" + a.metricsAddr + "/metrics")
		if err != nil {
			return err
		}
		defer response.Body.Close()

		raw, err := io.ReadAll(response.Body)
		body = string(raw)
		return err
	})
	require.NoError(t, err)
	assert.Contains(t, body, "ppl_fetch_pages_total 3")
	assert.Contains(t, body, `ppl_fetch_sequences_finished_total{status="done"} 1`)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// newRandomUserServer serves two persons per call, numbered by call.
func newRandomUserServer(t *testing.T, status int) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	calls := &atomic.Int64{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.URL.Path != "/api/" {
			http.NotFound(w, r)
			return
		}
		if status != http.StatusOK {
			http.Error(w, "unavailable", status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"results": [%s, %s]}`,
			personJSON("Mr", "John", "Smith", n, "Leeds", "United Kingdom"),
			personJSON("Ms", "Jane", "Doe", n, "Lyon", "France"),
		)
	}))
	t.Cleanup(server.Close)

	return server, calls
}

func personJSON(title, first, last string, n int64, city, country string) string {
	return fmt.Sprintf(`{
		"name": {"title": %q, "first": %q, "last": "%s%d"},
		"email": "%s%d@example.com",
		"location": {"city": %q, "country": %q},
		"picture": {"thumbnail": "https://example.com/%d.jpg"}
	}`, title, first, last, n, strings.ToLower(first), n, city, country, n)
}

func writeConfigFixture(home, content string) error {
	configDir := filepath.Join(home, ".config", "ppl")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644)
}
