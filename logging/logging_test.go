package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingWriter_RotatesPastLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	rw, err := Open(path, 64)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rw.Close()

	first := strings.Repeat("a", 50) + "\n"
	second := strings.Repeat("b", 50) + "\n"
	if _, err := rw.Write([]byte(first)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := rw.Write([]byte(second)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := rw.Write([]byte("c\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	backup, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if string(backup) != first+second {
		t.Fatalf("unexpected backup contents %q", backup)
	}
	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if string(current) != "c\n" {
		t.Fatalf("unexpected log contents %q", current)
	}
}

func TestOpen_TruncatesOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 100)), 0644); err != nil {
		t.Fatal(err)
	}
	rw, err := Open(path, 10)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rw.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected truncated file, size %d", info.Size())
	}
}

func TestSetup_WritesSlogToFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	defer log.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "app.log")
	rw, err := Setup(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer rw.Close()

	slog.Debug("hidden")
	slog.Info("search submitted", "location", "Paris")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "search submitted") || !strings.Contains(out, "location=Paris") {
		t.Fatalf("expected info line, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatal("debug line must be filtered at info level")
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("log file must not contain colour codes")
	}
}

func TestDiscard_SilencesStdLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	defer log.SetOutput(os.Stderr)

	var buf strings.Builder
	log.SetOutput(&buf)
	Discard()

	slog.Info("should not appear")
	log.Print("nor this")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
