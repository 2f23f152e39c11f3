package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

func TestResolveLogFilePathUsesWorkdirLogs(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	realTmpDir, _ := filepath.EvalSymlinks(tmpDir)
	realGot, _ := filepath.EvalSymlinks(filepath.Dir(got))
	if realGot != filepath.Join(realTmpDir, defaultLogDirName) {
		t.Fatalf("unexpected log dir: %s", realGot)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
}

func TestReleaseModeWritesJSONFile(t *testing.T) {
	tmpDir := t.TempDir()
	l := New("release", Options{Dir: tmpDir, Filename: "mall.log"})
	l.Info("checkout_committed")
	_ = l.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "mall.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	if !strings.Contains(string(content), `"message":"checkout_committed"`) {
		t.Fatalf("expected json log line, got=%s", string(content))
	}
}

func TestDebugModeSkipsFile(t *testing.T) {
	tmpDir := t.TempDir()
	l := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	l.Info("debug-line")

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestInitReplacesPackageLogger(t *testing.T) {
	tmpDir := t.TempDir()
	l := Init("release", Options{Dir: tmpDir, Filename: "init.log"})
	if Z() != l {
		t.Fatalf("Z should return the logger installed by Init")
	}
	Infow("init_test_event", "k", "v")
	_ = l.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "init.log"))
	if err != nil {
		t.Fatalf("read init log failed: %v", err)
	}
	if !strings.Contains(string(content), "init_test_event") {
		t.Fatalf("expected package helper to write through installed logger, got=%s", string(content))
	}
}

func TestGormAdapterLogMode(t *testing.T) {
	adapter := NewGormLogger("release")
	silent := adapter.LogMode(gormlogger.Silent)
	called := false
	silent.Trace(context.Background(), time.Now(), func() (string, int64) {
		called = true
		return "SELECT 1", 1
	}, errors.New("boom"))
	if called {
		t.Fatalf("silent gorm logger should not evaluate sql callback")
	}
}
