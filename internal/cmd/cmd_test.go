package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/linekit/internal/balance"
	"github.com/harrison/linekit/internal/config"
	"github.com/harrison/linekit/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and an empty config file so the
// developer's own .linekit settings never leak into tests.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{}\n"), 0644))
	return executeWithConfig(t, cfgPath, args...)
}

func executeWithConfig(t *testing.T, cfgPath string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "linekit", root.Use)

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["check"])
	assert.True(t, names["replace"])
	assert.True(t, names["history"])
}

func TestCheckCommand_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "balanced", content: "f(x) { return (a+b); }", want: ""},
		{name: "mismatch", content: "(\n}\n", want: "Error: Mismatch at line 2. Found '}', expected ')' (opened at line 1)\n"},
		{name: "unmatched", content: ")", want: "Error: Unexpected ')' at line 1\n"},
		{
			name:    "unclosed",
			content: "{\n(\n",
			want:    "Error: Unclosed tags/braces at end of file:\n  '(' opened at line 2\n  '{' opened at line 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "Profile.tsx", tt.content)

			stdout, _, err := execute(t, "check", path)
			require.NoError(t, err, "imbalance is not an error without --exit-code")
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestCheckCommand_ReportSuccess(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.tsx", "{}")

	stdout, _, err := execute(t, "check", "--report-success", path)
	require.NoError(t, err)
	assert.Equal(t, "No syntax errors found.\n", stdout)
}

func TestCheckCommand_ExitCode(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.tsx", "(")

	stdout, _, err := execute(t, "check", "--exit-code", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, balance.ErrImbalanced)
	assert.Contains(t, stdout, "Error: Unclosed tags/braces at end of file:")
}

func TestCheckCommand_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.tsx")

	stdout, _, err := execute(t, "check", path)
	require.Error(t, err)

	var fae *balance.FileAccessError
	assert.ErrorAs(t, err, &fae)
	assert.Empty(t, stdout)
}

func TestCheckCommand_DefaultTargetFromConfig(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "pages/Profile.tsx", ")")
	cfgPath := writeFile(t, dir, "config.yaml", "check:\n  target: "+target+"\n")

	stdout, _, err := executeWithConfig(t, cfgPath, "check")
	require.NoError(t, err)
	assert.Equal(t, "Error: Unexpected ')' at line 1\n", stdout)
}

func TestRunCheck_MultipleFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.tsx", "{}")
	b := writeFile(t, dir, "b.tsx", ")")
	c := writeFile(t, dir, "c.tsx", "(")

	cfg := config.DefaultConfig()
	cfg.Check.Concurrency = 2

	var out, errOut bytes.Buffer
	err := runCheck(context.Background(), []string{c, a, b}, cfg, &out, &errOut, logger.NewNoOpLogger())
	require.NoError(t, err)

	want := "==> " + c + " <==\n" +
		"Error: Unclosed tags/braces at end of file:\n" +
		"  '(' opened at line 1\n" +
		"==> " + a + " <==\n" +
		"==> " + b + " <==\n" +
		"Error: Unexpected ')' at line 1\n"
	assert.Equal(t, want, out.String())
}

func TestRunCheck_ExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/App.tsx", "{")
	writeFile(t, dir, "src/notes.md", ")")
	writeFile(t, dir, "src/node_modules/lib.js", ")")

	cfg := config.DefaultConfig()
	var out, errOut bytes.Buffer
	err := runCheck(context.Background(), []string{filepath.Join(dir, "src")}, cfg, &out, &errOut, logger.NewNoOpLogger())
	require.NoError(t, err)

	assert.Equal(t, "Error: Unclosed tags/braces at end of file:\n  '{' opened at line 1\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestRunCheck_EmptyDirectoryWarns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "(")

	var out, errOut bytes.Buffer
	err := runCheck(context.Background(), []string{dir}, config.DefaultConfig(), &out, &errOut, logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "No source files found in "+dir)
}

func TestReplaceCommand_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "Profile.tsx", "1\n2\n3\n4\n")
	repl := writeFile(t, dir, "replacement_list.tsx", "A\nB\nC\n")

	stdout, stderr, err := execute(t, "replace",
		"--target", target, "--replacement", repl, "--start", "2", "--end", "3")
	require.NoError(t, err)

	assert.Equal(t, "Successfully replaced lines 2-3 in "+target+"\n", stdout)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "1\nA\nB\nC\n4\n", string(data))
}

func TestReplaceCommand_TruncationWarns(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "t.tsx", "1\n2\n")
	repl := writeFile(t, dir, "r.tsx", "new\n")

	stdout, stderr, err := execute(t, "replace",
		"--target", target, "--replacement", repl, "--start", "1", "--end", "3")
	require.NoError(t, err)

	assert.Equal(t, "Successfully replaced lines 1-3 in "+target+"\n", stdout)
	assert.Contains(t, stderr, "Warning: Lines 1-3 extend past the end of the target")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}

func TestReplaceCommand_StrictRefuses(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "t.tsx", "1\n2\n")
	repl := writeFile(t, dir, "r.tsx", "new\n")

	stdout, _, err := execute(t, "replace", "--strict",
		"--target", target, "--replacement", repl, "--start", "1", "--end", "3")
	require.Error(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", string(data))
}

func TestReplaceCommand_InvalidRange(t *testing.T) {
	_, _, err := execute(t, "replace", "--start", "5", "--end", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestReplaceAndHistory_Journal(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "t.tsx", "1\n2\n3\n")
	repl := writeFile(t, dir, "r.tsx", "x\n")
	dbPath := filepath.Join(dir, "state", "history.db")
	cfgPath := writeFile(t, dir, "config.yaml", "history:\n  enabled: true\n  db_path: "+dbPath+"\n")

	_, _, err := executeWithConfig(t, cfgPath, "replace",
		"--target", target, "--replacement", repl, "--start", "2", "--end", "2")
	require.NoError(t, err)

	stdout, _, err := executeWithConfig(t, cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, target+" lines 2-2 (3 -> 3 lines)")
}

func TestHistoryCommand_Disabled(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "history:\n  db_path: "+filepath.Join(dir, "none.db")+"\n")

	stdout, _, err := executeWithConfig(t, cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "History is disabled")
}

func TestLogLevelFlag_Debug(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "t.tsx", "1\n2\n")
	repl := writeFile(t, dir, "r.tsx", "x\n")

	_, stderr, err := execute(t, "--log-level", "debug", "replace",
		"--target", target, "--replacement", repl, "--start", "1", "--end", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[DEBUG] Original line count: 2")
	assert.Contains(t, stderr, "[DEBUG] New line count: 2")
}
