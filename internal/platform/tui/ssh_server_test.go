package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveHostKeyPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolveHostKeyPath("")
	if err != nil {
		t.Fatalf("resolveHostKeyPath(\"\") failed: %v", err)
	}
	if expected := filepath.Join(home, ".platformer", "host_key"); got != expected {
		t.Errorf("resolveHostKeyPath(\"\") = %q, expected %q", got, expected)
	}

	custom := filepath.Join(t.TempDir(), "keys", "nested", "id")
	got, err = resolveHostKeyPath(custom)
	if err != nil {
		t.Fatalf("resolveHostKeyPath(custom) failed: %v", err)
	}
	if got != custom {
		t.Errorf("resolveHostKeyPath(custom) = %q, expected %q", got, custom)
	}
	if info, err := os.Stat(filepath.Dir(custom)); err != nil || !info.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}
}

func TestAdmitRespectsMaxSessions(t *testing.T) {
	tests := []struct {
		name     string
		max      int
		attempts int
		admitted int
	}{
		{"unlimited", 0, 5, 5},
		{"cap of two", 2, 5, 2},
		{"cap of one", 1, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &SSHServer{config: SSHServerConfig{MaxSessions: tc.max}}
			admitted := 0
			for i := 0; i < tc.attempts; i++ {
				if s.admit() {
					admitted++
				}
			}
			if admitted != tc.admitted {
				t.Errorf("admitted %d, expected %d", admitted, tc.admitted)
			}
			if s.Sessions() != tc.admitted {
				t.Errorf("Sessions() = %d, expected %d", s.Sessions(), tc.admitted)
			}
		})
	}
}

func TestReleaseFreesSlot(t *testing.T) {
	s := &SSHServer{config: SSHServerConfig{MaxSessions: 1}}
	if !s.admit() {
		t.Fatal("first player rejected")
	}
	if s.admit() {
		t.Fatal("second player admitted past the cap")
	}

	s.release()
	if !s.admit() {
		t.Error("slot not freed by release")
	}
}
