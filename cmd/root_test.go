package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/sdktable/internal/config"
	"github.com/zjrosen/sdktable/internal/infrastructure/sqlite"
	"github.com/zjrosen/sdktable/internal/infrastructure/yamlstore"
	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/presentation"
	"github.com/zjrosen/sdktable/internal/sdk"
	"github.com/zjrosen/sdktable/internal/testutil"
)

type cliEnv struct {
	dir        string
	configPath string
	tablePath  string
}

// newCLIEnv writes a config pointing at a table file in a temp dir and
// isolates HOME so nothing touches the real user config.
func newCLIEnv(t *testing.T, extraConfig string) cliEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SDKTABLE_DEBUG", "")

	dir := t.TempDir()
	env := cliEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yaml"),
		tablePath:  filepath.Join(dir, "sdk.table.yaml"),
	}
	content := fmt.Sprintf(`table:
  backend: yaml
  path: %s
flags:
  env-hints: false
%s`, env.tablePath, extraConfig)
	require.NoError(t, os.WriteFile(env.configPath, []byte(content), 0o600))
	return env
}

func (e cliEnv) javaHome(t *testing.T, name, version string) string {
	t.Helper()
	return testutil.JavaHome(t, afero.NewOsFs(), filepath.Join(e.dir, "homes", name), version, nil)
}

func resetFlags() {
	cfgFile = ""
	debugFlag = false
	listType, listFormat, listInternal = "", "table", false
	addType = ""
	resolveType, resolveFormat = "", "table"
	hintType, hintForce = "", false
	saveDryRun, watchLogs = false, false
	exportTo, exportBackend = "", config.BackendYAML
}

func (e cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func (e cliEnv) listJSON(t *testing.T) []presentation.SdkDTO {
	t.Helper()
	out, _, err := e.run(t, "list", "--format", "json")
	require.NoError(t, err)

	var dtos []presentation.SdkDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dtos))
	return dtos
}

func TestCLI_AddListRenameRemove(t *testing.T) {
	env := newCLIEnv(t, "")
	home := env.javaHome(t, "jdk-11", "11.0.22")

	out, _, err := env.run(t, "add", "jdk-11", home)
	require.NoError(t, err)
	require.Contains(t, out, "added jdk-11 (JavaSDK 11.0.22)")

	dtos := env.listJSON(t)
	require.Len(t, dtos, 1)
	require.Equal(t, "jdk-11", dtos[0].Name)
	require.Equal(t, home, dtos[0].Home)

	out, _, err = env.run(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "SDK Table")
	require.Contains(t, out, "jdk-11")

	_, _, err = env.run(t, "rename", "jdk-11", "jdk-11-re")
	require.NoError(t, err)
	dtos = env.listJSON(t)
	require.Len(t, dtos, 1)
	require.Equal(t, "jdk-11-re", dtos[0].Name)

	_, _, err = env.run(t, "remove", "jdk-11-re")
	require.NoError(t, err)
	require.Empty(t, env.listJSON(t))

	_, _, err = env.run(t, "remove", "jdk-11-re")
	require.Error(t, err)
}

func TestCLI_AddDuplicateFails(t *testing.T) {
	env := newCLIEnv(t, "")
	home := env.javaHome(t, "jdk-17", "17.0.9")

	_, _, err := env.run(t, "add", "jdk-17", home)
	require.NoError(t, err)
	_, _, err = env.run(t, "add", "jdk-17", home)
	require.Error(t, err)
	require.Len(t, env.listJSON(t), 1)
}

func TestCLI_ListInternalAndTypeFilter(t *testing.T) {
	env := newCLIEnv(t, "")
	_, _, err := env.run(t, "add", "jdk-17", env.javaHome(t, "jdk-17", "17.0.9"))
	require.NoError(t, err)

	out, _, err := env.run(t, "list", "--format", "json", "--internal")
	require.NoError(t, err)
	var dtos []presentation.SdkDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dtos))
	require.Len(t, dtos, 2)
	require.True(t, dtos[1].Internal)

	out, _, err = env.run(t, "list", "--format", "json", "--type", "GoSDK")
	require.NoError(t, err)
	require.JSONEq(t, "[]", out)

	_, _, err = env.run(t, "list", "--format", "xml")
	require.Error(t, err)
}

func TestCLI_ResolveFromConfigHint(t *testing.T) {
	dir := t.TempDir()
	home := testutil.JavaHome(t, afero.NewOsFs(), filepath.Join(dir, "zulu-8"), "1.8.0_392", nil)
	env := newCLIEnv(t, fmt.Sprintf("hints:\n  jdk:\n    zulu-8: %s\n", home))

	out, _, err := env.run(t, "resolve", "zulu-8", "--format", "json")
	require.NoError(t, err)

	var dtos []presentation.SdkDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dtos))
	require.Len(t, dtos, 1)
	require.True(t, dtos[0].Derived)
	require.Equal(t, "1.8.0_392", dtos[0].Version)

	require.Empty(t, env.listJSON(t), "resolving must not register")

	_, _, err = env.run(t, "resolve", "nope")
	require.Error(t, err)
}

func TestCLI_HintSet(t *testing.T) {
	env := newCLIEnv(t, "")
	home := env.javaHome(t, "temurin-21", "21.0.2")

	out, _, err := env.run(t, "hint", "set", "temurin-21", home)
	require.NoError(t, err)
	require.Contains(t, out, "jdk.temurin-21")

	data, err := os.ReadFile(env.configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "temurin-21: "+home)
	require.Contains(t, string(data), "env-hints: false")

	out, _, err = env.run(t, "resolve", "temurin-21")
	require.NoError(t, err)
	require.Contains(t, out, "temurin-21 (derived)")

	_, _, err = env.run(t, "hint", "set", "bogus", filepath.Join(env.dir, "missing"))
	require.Error(t, err)

	_, _, err = env.run(t, "hint", "set", "bogus", filepath.Join(env.dir, "missing"), "--force")
	require.NoError(t, err)
}

func TestCLI_HintSetLeavesStoreAlone(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sdk.db")
	env := cliEnv{dir: dir, configPath: filepath.Join(dir, "config.yaml"), tablePath: dbPath}
	require.NoError(t, os.WriteFile(env.configPath, []byte(fmt.Sprintf(`table:
  backend: sqlite
  path: %s
flags:
  env-hints: false
`, dbPath)), 0o600))
	home := env.javaHome(t, "zulu-17", "17.0.10")

	_, _, err := env.run(t, "hint", "set", "zulu-17", home)
	require.NoError(t, err)

	matches, err := filepath.Glob(dbPath + "*")
	require.NoError(t, err)
	require.Empty(t, matches, "checking a home must not open the database")
}

func TestCLI_SaveDryRunAndSave(t *testing.T) {
	env := newCLIEnv(t, "")
	require.NoError(t, os.WriteFile(env.tablePath, []byte(`version: 1
sdks:
  - name: jdk-11
    type: JavaSDK
    home: /opt/jdk-11
  - name: broken
`), 0o600))

	out, stderr, err := env.run(t, "save", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, stderr, "warning: skipped")
	require.Contains(t, out, "-  - name: broken")

	_, _, err = env.run(t, "save")
	require.NoError(t, err)

	out, _, err = env.run(t, "save", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "no changes")
}

func TestCLI_ExportSQLite(t *testing.T) {
	env := newCLIEnv(t, "")
	_, _, err := env.run(t, "add", "jdk-11", env.javaHome(t, "jdk-11", "11.0.22"))
	require.NoError(t, err)

	dbPath := filepath.Join(env.dir, "export.db")
	out, _, err := env.run(t, "export", "--to", dbPath, "--backend", "sqlite")
	require.NoError(t, err)
	require.Contains(t, out, "exported 1 sdks")

	db, err := sqlite.NewDB(dbPath, sqlite.WithBackup(false))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	res, err := db.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	require.Equal(t, "jdk-11", res.Records[0].Name)

	_, _, err = env.run(t, "export")
	require.Error(t, err)
}

func TestCLI_Types(t *testing.T) {
	env := newCLIEnv(t, "")

	out, _, err := env.run(t, "types")
	require.NoError(t, err)
	require.Equal(t, "JavaSDK\nGoSDK\n", out)
}

func TestCLI_InvalidConfig(t *testing.T) {
	env := newCLIEnv(t, "resolve:\n  hint_prefix: \"has space\"\n")

	_, _, err := env.run(t, "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "hint_prefix")
}

// syncBuffer lets the test read output while watch is still writing it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCLI_WatchPrintsChanges(t *testing.T) {
	env := newCLIEnv(t, "watch:\n  debounce: 10ms\n")
	_, _, err := env.run(t, "add", "jdk-11", env.javaHome(t, "jdk-11", "11.0.22"))
	require.NoError(t, err)

	resetFlags()
	var out, errOut syncBuffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"--config", env.configPath, "watch", "--logs"})
	t.Cleanup(log.Reset)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("watch did not stop")
		}
	})

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "watching ")
	}, 5*time.Second, 10*time.Millisecond)

	st := yamlstore.New(afero.NewOsFs(), env.tablePath)
	records := []sdk.Record{
		{Name: "jdk-11", Type: "JavaSDK", Home: "/opt/jdk-11"},
		{Name: "jdk-17", Type: "JavaSDK", Home: "/opt/jdk-17"},
	}
	// the watcher may start after the first write; keep writing until a reload shows up
	require.Eventually(t, func() bool {
		if err := st.Save(context.Background(), records); err != nil {
			return false
		}
		printed := out.String()
		return strings.Contains(printed, "reloaded: 2 sdks") &&
			strings.Contains(printed, "\nloaded\n") &&
			strings.Contains(errOut.String(), "Reloaded table")
	}, 5*time.Second, 100*time.Millisecond)

	printed := out.String()
	require.Contains(t, printed, "added jdk-11 (JavaSDK)")
	require.Contains(t, printed, "added jdk-17 (JavaSDK)")
	require.NotContains(t, errOut.String(), "reload failed")
}
