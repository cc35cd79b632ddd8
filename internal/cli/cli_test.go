package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/yildizm/CityReport/internal/controller"
	"github.com/yildizm/CityReport/internal/emoji"
)

const richPayload = `{
  "summary": "found 2 links",
  "report": "# Zoning\nResidential areas dominate.",
  "relevant_links": [{"type": "HTML", "url": "https://city.example.jp/zoning", "downloaded": true}],
  "pdf_downloads": [{"filename": "plan.pdf", "local_path": "/files/plan.pdf", "original_url": "https://city.example.jp/plan.pdf"}],
  "statistics": {"total_crawled": 40, "processed_count": 12, "relevant_count": 2, "pdf_count": 1}
}`

const legacyPayload = `{"zone_report": "Mostly residential.", "sources_report": "City hall website."}`

// executeCommand runs the root command with args and captures both streams
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	emoji.SetEmojiDisabled(true)
	t.Cleanup(func() {
		emoji.SetEmojiDisabled(false)
		globalConfig = nil
	})
	t.Setenv("NO_COLOR", "1")

	cmd := NewRootCommand("test", "none", "unknown")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-emoji"}, args...))

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestShouldUseTUI(t *testing.T) {
	tests := []struct {
		name           string
		noTUI          bool
		outputFormat   string
		outputFile     string
		verbose        bool
		terminal       bool
		expectedResult bool
	}{
		{
			name:           "should use TUI - all conditions met",
			outputFormat:   "text",
			terminal:       true,
			expectedResult: true,
		},
		{
			name:         "should not use TUI - no-tui flag set",
			noTUI:        true,
			outputFormat: "text",
			terminal:     true,
		},
		{
			name:         "should not use TUI - json output",
			outputFormat: "json",
			terminal:     true,
		},
		{
			name:         "should not use TUI - verbose mode",
			outputFormat: "text",
			verbose:      true,
			terminal:     true,
		},
		{
			name:         "should not use TUI - output file",
			outputFormat: "text",
			outputFile:   "report.txt",
			terminal:     true,
		},
		{
			name:         "should not use TUI - piped stdout",
			outputFormat: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldNoTUI, oldVerbose, oldFmt, oldFile := analyzeNoTUI, verbose, outputFmt, analyzeOutputFile
			defer func() {
				analyzeNoTUI, verbose, outputFmt, analyzeOutputFile = oldNoTUI, oldVerbose, oldFmt, oldFile
			}()

			analyzeNoTUI = tt.noTUI
			verbose = tt.verbose
			outputFmt = tt.outputFormat
			analyzeOutputFile = tt.outputFile

			if got := shouldUseTUI(tt.terminal); got != tt.expectedResult {
				t.Errorf("shouldUseTUI() = %v, want %v", got, tt.expectedResult)
			}
		})
	}
}

func TestAnalyzeCommand(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(richPayload))
	}))
	defer srv.Close()

	stdout, stderr, err := executeCommand(t, "analyze", "--no-tui", "-o", "json", "--endpoint", srv.URL, "  Sapporo ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotBody["city"] != "Sapporo" {
		t.Errorf("Expected trimmed city 'Sapporo' posted, got %q", gotBody["city"])
	}
	if !strings.Contains(stderr, controller.MsgBusy) {
		t.Errorf("Expected busy status on stderr, got %q", stderr)
	}
	if !strings.Contains(stderr, "Analysis complete! found 2 links") {
		t.Errorf("Expected completion status on stderr, got %q", stderr)
	}

	var output struct {
		City          string `json:"city"`
		RelevantLinks []struct {
			URL string `json:"url"`
		} `json:"relevant_links"`
	}
	if err := json.Unmarshal([]byte(stdout), &output); err != nil {
		t.Fatalf("Expected JSON on stdout, got %v: %q", err, stdout)
	}
	if output.City != "Sapporo" {
		t.Errorf("Expected city 'Sapporo', got %q", output.City)
	}
	if len(output.RelevantLinks) != 1 || output.RelevantLinks[0].URL != "https://city.example.jp/zoning" {
		t.Errorf("Expected the relevant link in the output, got %+v", output.RelevantLinks)
	}
}

func TestAnalyzeCommandServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "crawler unavailable"}`))
	}))
	defer srv.Close()

	stdout, stderr, err := executeCommand(t, "analyze", "--no-tui", "--endpoint", srv.URL, "Kobe")
	if err == nil {
		t.Fatal("Expected an error for a failed analysis")
	}
	if !strings.Contains(stderr, "Error: crawler unavailable") {
		t.Errorf("Expected the server detail on stderr, got %q", stderr)
	}
	if !strings.Contains(stderr, "What you can do:") {
		t.Errorf("Expected remediation tips on stderr, got %q", stderr)
	}
	if stdout != "" {
		t.Errorf("Expected no output on failure, got %q", stdout)
	}
}

func TestAnalyzeCommandTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, stderr, err := executeCommand(t, "analyze", "--no-tui", "--timeout", "50ms", "--endpoint", srv.URL, "Kobe")
	if err == nil {
		t.Fatal("Expected a timeout error")
	}
	if !strings.Contains(stderr, "Timeout: the analysis took too long") {
		t.Errorf("Expected timeout status on stderr, got %q", stderr)
	}
}

func TestAnalyzeCommandInvalidLayout(t *testing.T) {
	_, _, err := executeCommand(t, "analyze", "--no-tui", "--layout", "grid", "Kobe")
	if err == nil || !strings.Contains(err.Error(), "invalid layout") {
		t.Errorf("Expected invalid layout error, got %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		format   string
		expected []string
	}{
		{
			name:     "rich payload as markdown",
			payload:  richPayload,
			format:   "markdown",
			expected: []string{"Zoning", "https://city.example.jp/zoning", "plan.pdf", "*Report generated by CityReport*"},
		},
		{
			name:     "legacy payload folds sources into the report",
			payload:  legacyPayload,
			format:   "markdown",
			expected: []string{"Mostly residential.", "Data sources", "City hall website."},
		},
		{
			name:     "csv rows",
			payload:  richPayload,
			format:   "csv",
			expected: []string{"Kind,Type,URL,Downloaded,Filename,Local Path", "https://city.example.jp/plan.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "response.json", tt.payload)

			stdout, _, err := executeCommand(t, "render", "-o", tt.format, path)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			for _, want := range tt.expected {
				if !strings.Contains(stdout, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, stdout)
				}
			}
		})
	}
}

func TestRenderCommandErrors(t *testing.T) {
	if _, _, err := executeCommand(t, "render", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}

	path := writeFile(t, "list.json", `[1, 2, 3]`)
	if _, _, err := executeCommand(t, "render", path); err == nil {
		t.Error("Expected an error for a non-object payload")
	}

	if _, _, err := executeCommand(t, "render", "-o", "yaml", writeFile(t, "ok.json", richPayload)); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}

func TestRenderCommandOutputFile(t *testing.T) {
	path := writeFile(t, "response.json", richPayload)
	target := filepath.Join(t.TempDir(), "report.html")

	stdout, _, err := executeCommand(t, "render", "-o", "html", "--output-file", target, path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stdout != "" {
		t.Errorf("Expected nothing on stdout, got %q", stdout)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Expected output file, got %v", err)
	}
	if !strings.Contains(string(data), "<html") {
		t.Errorf("Expected an HTML page, got %q", data)
	}
}

func TestValidateOutputFilePath(t *testing.T) {
	if err := validateOutputFilePath(""); err == nil {
		t.Error("Expected error for empty path")
	}
	if err := validateOutputFilePath(t.TempDir()); err == nil {
		t.Error("Expected error for a directory")
	}
	if err := validateOutputFilePath(filepath.Join(t.TempDir(), "out.md")); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestWatchLoop(t *testing.T) {
	target := filepath.Join(t.TempDir(), "response.json")
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	rendered := make(chan struct{}, 8)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, events, errs, target, rate.NewLimiter(rate.Inf, 1), func() {
			rendered <- struct{}{}
		})
	}()

	events <- fsnotify.Event{Name: filepath.Join(filepath.Dir(target), "other.json"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: target, Op: fsnotify.Chmod}
	select {
	case <-rendered:
		t.Fatal("Expected unrelated events to be ignored")
	case <-time.After(50 * time.Millisecond):
	}

	events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
	select {
	case <-rendered:
	case <-time.After(time.Second):
		t.Fatal("Expected a render after a write")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Expected clean shutdown, got %v", err)
	}
}

func TestWatchLoopCoalescesBursts(t *testing.T) {
	target := filepath.Join(t.TempDir(), "response.json")
	events := make(chan fsnotify.Event)
	rendered := make(chan struct{}, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the first render is immediate, the next waits a full interval
	limiter := rate.NewLimiter(rate.Every(200*time.Millisecond), 1)
	go func() {
		_ = watchLoop(ctx, events, nil, target, limiter, func() { rendered <- struct{}{} })
	}()

	events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
	<-rendered

	for i := 0; i < 5; i++ {
		events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
	}

	select {
	case <-rendered:
	case <-time.After(time.Second):
		t.Fatal("Expected the burst to render once")
	}
	select {
	case <-rendered:
		t.Error("Expected the burst to be coalesced into one render")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cityreport.yaml")

	stdout, _, err := executeCommand(t, "config", "init", "--path", path)
	if err != nil {
		t.Fatalf("Expected init to succeed, got %v", err)
	}
	if !strings.Contains(stdout, "Configuration file created at") {
		t.Errorf("Expected confirmation, got %q", stdout)
	}

	if _, _, err := executeCommand(t, "config", "init", "--path", path); err == nil {
		t.Error("Expected init to refuse overwriting without --force")
	}

	stdout, _, err = executeCommand(t, "--config", path, "config", "validate")
	if err != nil {
		t.Fatalf("Expected sample config to validate, got %v", err)
	}
	if !strings.Contains(stdout, "Endpoint: http://localhost:8000/api/run-analysis") {
		t.Errorf("Expected endpoint in summary, got %q", stdout)
	}

	stdout, _, err = executeCommand(t, "--config", path, "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("Expected show to succeed, got %v", err)
	}
	if !strings.Contains(stdout, `"base_url"`) {
		t.Errorf("Expected JSON config, got %q", stdout)
	}
}

func TestConfigValidateRejectsBadConfig(t *testing.T) {
	path := writeFile(t, "bad.yaml", "ui:\n  layout: grid\n")

	stdout, _, err := executeCommand(t, "--config", path, "config", "validate")
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(stdout, "Configuration validation failed") {
		t.Errorf("Expected failure message, got %q", stdout)
	}
}

func TestConsoleView(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	defer emoji.SetEmojiDisabled(false)

	var buf bytes.Buffer
	view := newConsoleView(&buf, false)

	view.SetStatus("Analysis complete! done", controller.ToneSuccess)
	view.Alert(controller.MsgCityRequired)
	view.SetReport("<p>ignored</p>")

	out := buf.String()
	if !strings.Contains(out, "[OK] Analysis complete! done") {
		t.Errorf("Expected success status line, got %q", out)
	}
	if !strings.Contains(out, "[WRN] "+controller.MsgCityRequired) {
		t.Errorf("Expected alert line, got %q", out)
	}
	if strings.Contains(out, "ignored") {
		t.Errorf("Expected panels not to be printed, got %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(stdout, "CityReport test (local-build) built on local-build") {
		t.Errorf("Unexpected version output: %q", stdout)
	}
}
