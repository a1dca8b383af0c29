package main

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestScriptWatcherDebounce(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "draw.lua")
	if err := os.WriteFile(script, []byte("-- v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w, err := newScriptWatcher(script, 50*time.Millisecond,
		func() error { calls.Add(1); return nil }, nil)
	if err != nil {
		t.Fatalf("newScriptWatcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(script, []byte{'-', '-', byte('0' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(300 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("onChange called %d times, want 1", got)
	}
}

func TestScriptWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "draw.lua")
	if err := os.WriteFile(script, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w, err := newScriptWatcher(script, 50*time.Millisecond,
		func() error { calls.Add(1); return nil }, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.lua"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("onChange called %d times, want 0", got)
	}
}

func TestScriptWatcherStopTwice(t *testing.T) {
	dir := t.TempDir()
	w, err := newScriptWatcher(filepath.Join(dir, "draw.lua"), 0, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	w.Stop()
	w.Stop()
}
