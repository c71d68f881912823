package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvURL, "")
	t.Setenv(EnvEncoding, "")
	t.Setenv(EnvLogLevel, "")
	return dir
}

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.BaseURL != DefaultBaseURL || c.PathPrefix != "/api" || c.Encoding != "json" ||
		time.Duration(c.Timeout) != 10*time.Second || c.LogLevel != "info" {
		t.Errorf("Load() = %+v", c)
	}
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"json", "m.json", `{"base_url":"http://matrix.local:9000","encoding":"protobuf","timeout":"3s","boards":{"nhl":{"asset":"nhl.png"}}}`},
		{"yaml", "m.yaml", "base_url: http://matrix.local:9000\nencoding: protobuf\ntimeout: 3s\nboards:\n  nhl:\n    asset: nhl.png\n"},
		{"toml", "m.toml", "base_url = \"http://matrix.local:9000\"\nencoding = \"protobuf\"\ntimeout = \"3s\"\n\n[boards.nhl]\nasset = \"nhl.png\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			c, err := Load(write(t, tt.file, tt.body))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if c.BaseURL != "http://matrix.local:9000" || c.Encoding != "protobuf" || time.Duration(c.Timeout) != 3*time.Second {
				t.Errorf("Load() = %+v", c)
			}
			if c.PathPrefix != "/api" || c.LogLevel != "info" {
				t.Errorf("defaults not kept: %+v", c)
			}
			if c.Boards["nhl"].Asset != "nhl.png" {
				t.Errorf("Boards = %+v", c.Boards)
			}
			if c.Host() != "matrix.local:9000" {
				t.Errorf("Host() = %s", c.Host())
			}
		})
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"unknown json key", "c.json", `{"baseurl":"http://x"}`},
		{"unknown yaml key", "c.yml", "baseurl: http://x\n"},
		{"unknown toml key", "c.toml", "baseurl = \"http://x\"\n"},
		{"bad encoding", "c.json", `{"encoding":"xml"}`},
		{"bad scheme", "c.json", `{"base_url":"ftp://matrix"}`},
		{"bad duration", "c.json", `{"timeout":"soon"}`},
		{"unknown extension", "c.ini", "x=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if _, err := Load(write(t, tt.file, tt.body)); err == nil {
				t.Error("Load() error = nil")
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load() error = nil for missing explicit file")
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvURL, "https://board.example")
	t.Setenv(EnvEncoding, "PROTOBUF")
	t.Setenv(EnvLogLevel, "debug")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.BaseURL != "https://board.example" || c.Encoding != "protobuf" || c.LogLevel != "debug" {
		t.Errorf("Load() = %+v", c)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	c := Default()
	c.BaseURL = "http://10.0.0.7:8080"
	c.Boards = map[string]BoardConfig{"clock": {Path: "boards/clock"}}
	if err := Save(c); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	p := filepath.Join(dir, "matrixctl", "config.json")
	fi, err := os.Stat(p)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", fi.Mode().Perm())
	}

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.BaseURL != c.BaseURL || got.Boards["clock"].Path != "boards/clock" || got.Timeout != c.Timeout {
		t.Errorf("Load() = %+v", got)
	}
}

func TestSaveBaseURLKeepsFileSettings(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "matrixctl", "config.json")
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(`{"encoding":"protobuf","timeout":"4s"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "trace")

	if err := SaveBaseURL("http://10.0.0.9:8080"); err != nil {
		t.Fatalf("SaveBaseURL() error = %v", err)
	}
	t.Setenv(EnvLogLevel, "")

	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if got.BaseURL != "http://10.0.0.9:8080" || got.Encoding != "protobuf" || time.Duration(got.Timeout) != 4*time.Second {
		t.Errorf("Load() = %+v", got)
	}
	if got.LogLevel != "info" {
		t.Errorf("LogLevel = %q, environment override was persisted", got.LogLevel)
	}
	if err := SaveBaseURL("ftp://nope"); err == nil {
		t.Error("SaveBaseURL() accepted an invalid URL")
	}
}
