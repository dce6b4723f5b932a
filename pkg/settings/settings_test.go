package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := &Settings{
		RedisAddr: "10.0.0.5:6379",
		AuditLog:  "/var/log/bridgewise/audit.log",
		SSHUser:   "admin",
		SSHPass:   "secret",
	}
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *loaded != *s {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", s, loaded)
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *s != (Settings{}) {
		t.Errorf("missing file should yield empty settings: %+v", s)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for malformed settings")
	}
}

func TestSavedFileIsPrivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := (&Settings{SSHPass: "secret"}).SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("settings file mode = %o, want 0600", perm)
	}
}

func TestFallbacks(t *testing.T) {
	s := &Settings{}
	if got := s.GetRedisAddr(); got != "127.0.0.1:6379" {
		t.Errorf("GetRedisAddr = %q", got)
	}
	if got := s.GetAuditLog(); got == "" {
		t.Error("GetAuditLog should never be empty")
	}

	s.RedisAddr = "10.0.0.5:6379"
	if got := s.GetRedisAddr(); got != "10.0.0.5:6379" {
		t.Errorf("GetRedisAddr = %q, want configured address", got)
	}
}

func TestClear(t *testing.T) {
	s := &Settings{RedisAddr: "x", SSHUser: "y"}
	s.Clear()
	if *s != (Settings{}) {
		t.Errorf("Clear left %+v", s)
	}
}
