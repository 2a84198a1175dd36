package main

import (
	"os"
	"testing"
)

func TestParseJSONConfigOverridesFields(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "shredder-config-*.json")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString(`{"output":"/tmp/dev-null","skip_bytes":1024,"blocksize":4096,"buffersize":16,"disable_rdrand":true}`); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := Config{Output: "original"}
	if err := parseJSONConfig(&cfg, f.Name()); err != nil {
		t.Fatalf("parseJSONConfig: %v", err)
	}

	if cfg.Output != "/tmp/dev-null" {
		t.Fatalf("expected output to be overridden, got %q", cfg.Output)
	}
	if cfg.SkipBytes != 1024 {
		t.Fatalf("expected skip_bytes 1024, got %d", cfg.SkipBytes)
	}
	if cfg.BlockSize != 4096 {
		t.Fatalf("expected blocksize 4096, got %d", cfg.BlockSize)
	}
	if cfg.BufferSize != 16 {
		t.Fatalf("expected buffersize 16, got %d", cfg.BufferSize)
	}
	if !cfg.DisableRDRand {
		t.Fatal("expected disable_rdrand to be true")
	}
}

func TestParseJSONConfigMissingFile(t *testing.T) {
	cfg := Config{}
	if err := parseJSONConfig(&cfg, "/nonexistent/path.json"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
