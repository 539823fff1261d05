package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  from-file \n"), 0o600); err != nil {
		t.Fatalf("writing secret: %v", err)
	}
	t.Setenv("SKILLMATCH_TEST_KEY", "from-env")

	got, err := Load(Source{Name: "api key", File: path, Env: "SKILLMATCH_TEST_KEY", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected from-file, got %q", got)
	}
}

func TestLoadEnvThenValue(t *testing.T) {
	t.Setenv("SKILLMATCH_TEST_KEY", " from-env ")

	got, err := Load(Source{Env: "SKILLMATCH_TEST_KEY", Value: "inline"})
	if err != nil || got != "from-env" {
		t.Fatalf("expected from-env, got %q (%v)", got, err)
	}

	t.Setenv("SKILLMATCH_TEST_KEY", "")
	got, err = Load(Source{Env: "SKILLMATCH_TEST_KEY", Value: " inline "})
	if err != nil || got != "inline" {
		t.Fatalf("expected inline, got %q (%v)", got, err)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(Source{Name: "api key"})
	if err == nil || !strings.Contains(err.Error(), "api key is not configured") {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing secret: %v", err)
	}
	_, err = Load(Source{File: empty, Value: "inline"})
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = Load(Source{File: filepath.Join(t.TempDir(), "missing")})
	if err == nil || !strings.Contains(err.Error(), "reading secret") {
		t.Fatalf("unexpected error: %v", err)
	}
}
