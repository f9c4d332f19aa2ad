package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type sampleConfig struct {
	Name    string        `envconfig:"NAME" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"9s"`
	Enabled bool          `envconfig:"ENABLED" split_words:"true" default:"true"`
}

var errBadName = errors.New("bad name")

type validatedConfig struct {
	Name string `envconfig:"NAME" split_words:"true"`
}

func (c *validatedConfig) Validate() error {
	if c.Name == "invalid" {
		return errBadName
	}
	return nil
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestProcessDefaultsAndRequired(t *testing.T) {
	t.Setenv("CFGTEST_NAME", "solution")

	conf, err := Process[sampleConfig]("CFGTEST")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if conf.Name != "solution" || conf.Timeout != 9*time.Second || !conf.Enabled {
		t.Fatalf("unexpected config: %+v", conf)
	}

	if _, err := Process[sampleConfig]("CFGMISSING"); err == nil {
		t.Fatal("expected error for missing required variable")
	}
}

func TestProcessRunsValidate(t *testing.T) {
	t.Setenv("CFGVALID_NAME", "invalid")

	_, err := Process[validatedConfig]("CFGVALID")
	if !errors.Is(err, errBadName) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoadEnvFileKeepsExistingVariables(t *testing.T) {
	t.Setenv("CFGFILE_NAME", "from-env")
	// registered for cleanup; unset so the file value is exported
	t.Setenv("CFGFILE_TIMEOUT", "")
	os.Unsetenv("CFGFILE_TIMEOUT")

	path := writeEnvFile(t, "CFGFILE_NAME=from-file\nCFGFILE_TIMEOUT=3s\n")
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}

	conf, err := Process[sampleConfig]("CFGFILE")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if conf.Name != "from-env" {
		t.Fatalf("environment should win over the file, got %q", conf.Name)
	}
	if conf.Timeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %s", conf.Timeout)
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	t.Parallel()

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatal("expected error for missing env file")
	}
}
