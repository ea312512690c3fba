package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/hashbench/internal/benchmark"
	"github.com/user/hashbench/internal/source"
)

func TestBuildConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.json")
	err := os.WriteFile(path, []byte(`{
		"hashes": ["md5", "sha256"],
		"sources": ["digits"],
		"sample_count": 500,
		"cursor_policy": "shared"
	}`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	if err := rootCmd.ParseFlags([]string{"--config", path, "-n", "50", "--seed", "7"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	config, err := buildConfig(rootCmd)
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}

	if strings.Join(config.Hashes, ",") != "md5,sha256" {
		t.Errorf("Expected hashes from file, got %v", config.Hashes)
	}
	if strings.Join(config.Sources, ",") != "digits" {
		t.Errorf("Expected sources from file, got %v", config.Sources)
	}
	if config.Samples != 50 {
		t.Errorf("Expected flag to override sample count, got %d", config.Samples)
	}
	if config.CursorPolicy != benchmark.CursorShared {
		t.Errorf("Expected cursor policy from file, got %q", config.CursorPolicy)
	}
	if config.Seed == nil || *config.Seed != 7 {
		t.Errorf("Expected seed 7, got %v", config.Seed)
	}
	if config.Rounds != benchmark.DefaultRounds {
		t.Errorf("Expected default rounds, got %d", config.Rounds)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing config file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{"), 0o644)
	if _, err := loadConfig(path); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := printCatalog(&buf); err != nil {
		t.Fatalf("printCatalog failed: %v", err)
	}
	for _, want := range []string{"murmur64a", "xxh3_64", "digits", "Common English Words"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("catalog missing %q", want)
		}
	}
}

func TestOpenOutput(t *testing.T) {
	var stdout bytes.Buffer
	w, closeOutput, err := openOutput("", &stdout)
	if err != nil {
		t.Fatalf("openOutput to stdout failed: %v", err)
	}
	if w != &stdout {
		t.Error("Expected stdout writer for an empty path")
	}
	if err := closeOutput(); err != nil {
		t.Errorf("closing stdout output: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.txt")
	w, closeOutput, err = openOutput(path, &stdout)
	if err != nil {
		t.Fatalf("openOutput to file failed: %v", err)
	}
	w.Write([]byte("ok"))
	closeOutput()
	if data, _ := os.ReadFile(path); string(data) != "ok" {
		t.Errorf("Expected report file contents, got %q", data)
	}

	if _, _, err := openOutput(filepath.Join(t.TempDir(), "missing", "report.txt"), &stdout); err == nil {
		t.Error("Expected error for unwritable output path")
	}
}

func TestRunSweepChecksOutputBeforeRunning(t *testing.T) {
	savedConfig, savedOutput := configFile, outputFile
	t.Cleanup(func() { configFile, outputFile = savedConfig, savedOutput })

	// The default sources include the word list, which is absent here, so
	// the output error can only win if the file is opened first.
	configFile = ""
	outputFile = filepath.Join(t.TempDir(), "missing", "report.txt")

	err := runSweep(rootCmd, nil)
	if err == nil {
		t.Fatal("Expected error for unwritable output path")
	}
	if !strings.Contains(err.Error(), "failed to create output file") {
		t.Errorf("Expected output file error, got %v", err)
	}
	if errors.Is(err, source.ErrResourceUnavailable) {
		t.Errorf("sweep construction ran before the output check: %v", err)
	}
}
