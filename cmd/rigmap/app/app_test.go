package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hamcat/rigmap/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{Driver: store.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	return st
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
	if app.Metrics() != nil {
		t.Error("Metrics() should be nil without a metrics file")
	}
}

// TestApp_WithConfigValidates verifies that invalid configs are rejected.
func TestApp_WithConfigValidates(t *testing.T) {
	_, err := New("1.0.0", "test", "2024-01-01", "test", WithConfig(&Config{
		DatabaseDriver: "oracle",
		Unresolved:     "keep",
	}))
	if err == nil {
		t.Fatal("New() with an unknown driver should fail")
	}
}

// TestApp_Table verifies the grantee table is seeded once and shared.
func TestApp_Table(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test", WithStore(openTestStore(t)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = app.Shutdown(context.Background()) }()

	t1, err := app.Table(context.Background())
	if err != nil {
		t.Fatalf("Table() failed: %v", err)
	}
	t2, err := app.Table(context.Background())
	if err != nil {
		t.Fatalf("Table() failed on second call: %v", err)
	}

	if t1 != t2 {
		t.Error("Table() returned different instances")
	}
	if t1.Len() == 0 {
		t.Error("Table() should carry the curated codes")
	}
}

// TestApp_Shutdown verifies the metrics file is written and the store closed.
func TestApp_Shutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rigmap.prom")
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	config.MetricsFile = path

	app, err := New("1.0.0", "test", "2024-01-01", "test", WithConfig(config), WithStore(openTestStore(t)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	m := app.Metrics()
	if m == nil {
		t.Fatal("Metrics() returned nil with a metrics file configured")
	}
	if m != app.Metrics() {
		t.Error("Metrics() returned different instances")
	}
	if len(app.PipelineOptions()) == 0 {
		t.Error("PipelineOptions() returned no options")
	}

	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("metrics file not written: %v", err)
	}
	if app.store != nil {
		t.Error("Shutdown() should release the store")
	}
}

// TestApp_RootCommand verifies command registration and groups.
func TestApp_RootCommand(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test", WithStore(openTestStore(t)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = app.Shutdown(context.Background()) }()

	root := app.createRootCommand()
	want := []string{"import", "list", "grantees", "export", "dedupe", "rename", "clean-prefix", "sync-brands", "version"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("command %q not registered", name)
		}
	}
}

// TestApp_ExecuteImport runs an import through the root command.
func TestApp_ExecuteImport(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test", WithStore(openTestStore(t)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = app.Shutdown(context.Background()) }()

	path := filepath.Join(t.TempDir(), "radios.csv")
	if err := os.WriteFile(path, []byte("Brand,Model\nIcom,IC-705\nicom,ic-705\n"), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	var out bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"import", "-o", "table", "--log-level", "error", path})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out.String(), "2 rows read, 2 accepted; 1 records") {
		t.Errorf("unexpected import output:\n%s", out.String())
	}

	// An invalid output format is rejected before the command runs.
	root = app.createRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"list", "radios", "-o", "xml"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("list with -o xml should fail")
	}
}
