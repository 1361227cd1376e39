package main

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordface.pid")
	if isAlreadyRun(path) {
		t.Fatal("missing pid file reported as running")
	}

	if err := writeLockFile(path); err != nil {
		t.Fatalf("writeLockFile: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("pid file = %q", data)
	}
	if !isAlreadyRun(path) {
		t.Error("own pid not reported as running")
	}

	os.WriteFile(path, []byte("not a pid"), 0o644)
	if isAlreadyRun(path) {
		t.Error("garbage pid file reported as running")
	}
}
