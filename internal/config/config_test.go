package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestForDomainDefaults(t *testing.T) {
	cfg := ForDomain(" example.com ")

	if cfg.Domain != "example.com" {
		t.Errorf("domain = %q, want trimmed example.com", cfg.Domain)
	}
	if cfg.URL != "www.example.com" {
		t.Errorf("url = %q, want www.example.com", cfg.URL)
	}
	if cfg.Name != "example.com" {
		t.Errorf("name = %q, want example.com", cfg.Name)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("example.com", t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "www.example.com" {
		t.Errorf("url = %q, want the default", cfg.URL)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	override := []byte(`{"url": "site.example.com", "name": "Example Site", "commands": ["website"]}`)
	if err := os.WriteFile(filepath.Join(dir, "example.com.json"), override, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("example.com", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Domain != "example.com" {
		t.Errorf("domain = %q, want example.com", cfg.Domain)
	}
	if cfg.URL != "site.example.com" {
		t.Errorf("url = %q, want the override", cfg.URL)
	}
	if cfg.Name != "Example Site" {
		t.Errorf("name = %q, want the override", cfg.Name)
	}
	if !reflect.DeepEqual(cfg.Commands, []string{"website"}) {
		t.Errorf("commands = %v, want [website]", cfg.Commands)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "example.com.json"), []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load("example.com", dir); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestParseDomains(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single", input: "example.com", want: []string{"example.com"}},
		{name: "list", input: "a.com,b.com", want: []string{"a.com", "b.com"}},
		{name: "spaces and empties", input: " a.com , , b.com,", want: []string{"a.com", "b.com"}},
		{name: "empty input", input: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDomains(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseDomains(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
