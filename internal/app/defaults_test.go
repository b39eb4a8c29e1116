package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("POSTGEN_CONFIG_PATH", "/custom/config.toml")
		t.Setenv("POSTGEN_HOME", "/custom/postgen")

		e, err := LoadEnvironment()
		if err != nil {
			t.Fatalf("LoadEnvironment() error = %v", err)
		}
		defaults, err := GetDefaults(e)
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		if defaults["config_path"] != "/custom/config.toml" {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/config.toml")
		}
		if defaults["base_dir"] != "/custom/postgen" {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], "/custom/postgen")
		}
		if defaults["log_dir"] != "/custom/postgen/log" {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], "/custom/postgen/log")
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("POSTGEN_CONFIG_PATH", "")
		t.Setenv("POSTGEN_HOME", "")

		e, err := LoadEnvironment()
		if err != nil {
			t.Fatalf("LoadEnvironment() error = %v", err)
		}
		defaults, err := GetDefaults(e)
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()

		wantConfig := filepath.Join(homeDir, ".config", "postgen.toml")
		if defaults["config_path"] != wantConfig {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], wantConfig)
		}

		wantBase := filepath.Join(homeDir, ".local", "share", "postgen")
		if defaults["base_dir"] != wantBase {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], wantBase)
		}

		wantLog := filepath.Join(wantBase, "log")
		if defaults["log_dir"] != wantLog {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], wantLog)
		}
	})
}

func TestLoadEnvironment(t *testing.T) {
	t.Run("reads .env file", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		// t.Setenv restores the variables; unset them so the file can supply values.
		t.Setenv("POSTGEN_HOME", "")
		t.Setenv("POSTGEN_SEED", "")
		os.Unsetenv("POSTGEN_HOME")
		os.Unsetenv("POSTGEN_SEED")
		content := "POSTGEN_HOME=/from/dotenv\nPOSTGEN_SEED=42\n"
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		e, err := LoadEnvironment()
		if err != nil {
			t.Fatalf("LoadEnvironment() error = %v", err)
		}
		if e.Home != "/from/dotenv" {
			t.Errorf("Home = %q, want %q", e.Home, "/from/dotenv")
		}
		if e.Seed != 42 {
			t.Errorf("Seed = %d, want 42", e.Seed)
		}
	})

	t.Run("process env wins over .env", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		t.Setenv("POSTGEN_PASSPHRASE", "from-env")
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("POSTGEN_PASSPHRASE=from-file\n"), 0644); err != nil {
			t.Fatal(err)
		}

		e, err := LoadEnvironment()
		if err != nil {
			t.Fatalf("LoadEnvironment() error = %v", err)
		}
		if e.Passphrase != "from-env" {
			t.Errorf("Passphrase = %q, want %q", e.Passphrase, "from-env")
		}
	})

	t.Run("invalid seed", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("POSTGEN_SEED", "not-a-number")

		if _, err := LoadEnvironment(); err == nil {
			t.Error("LoadEnvironment() with invalid seed should return error")
		}
	})
}

func TestGetDefaults_UsesGivenEnvironmentOnly(t *testing.T) {
	t.Setenv("POSTGEN_CONFIG_PATH", "/process/config.toml")
	t.Setenv("POSTGEN_HOME", "/process/home")

	defaults, err := GetDefaults(Environment{ConfigPath: "/given/postgen.toml", Home: "/given"})
	if err != nil {
		t.Fatalf("GetDefaults() error = %v", err)
	}
	if defaults["config_path"] != "/given/postgen.toml" {
		t.Errorf("config_path = %q, want %q", defaults["config_path"], "/given/postgen.toml")
	}
	if defaults["log_dir"] != "/given/log" {
		t.Errorf("log_dir = %q, want %q", defaults["log_dir"], "/given/log")
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir for go1.21).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q) error = %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
