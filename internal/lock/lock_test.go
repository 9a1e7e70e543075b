package lock

import (
	"errors"
	"os"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func stubProcesses(t *testing.T, self int, running map[int]string) {
	t.Helper()
	oldFind, oldPid := findProcessFunc, getpidFunc
	t.Cleanup(func() {
		findProcessFunc, getpidFunc = oldFind, oldPid
	})

	getpidFunc = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := running[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	stubProcesses(t, 100, map[int]string{100: "bloom"})
	l := New(t.TempDir())

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if pid, held := l.Holder(); !held || pid != 100 {
		t.Errorf("Holder = %d, %v", pid, held)
	}
	if err := l.Check(); err != nil {
		t.Errorf("own lock should not block: %v", err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(l.Path()); !os.IsNotExist(err) {
		t.Error("lockfile should be removed on release")
	}
}

func TestLockHeldByOtherSession(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 200, map[int]string{100: "bloom", 200: "bloom"})
	if err := os.WriteFile(New(dir).Path(), []byte("100"), 0600); err != nil {
		t.Fatal(err)
	}

	l := New(dir)
	if err := l.Check(); !errors.Is(err, ErrHeld) {
		t.Errorf("expected ErrHeld, got %v", err)
	}
	if err := l.Acquire(); !errors.Is(err, ErrHeld) {
		t.Errorf("expected ErrHeld from Acquire, got %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("Release should ignore foreign locks: %v", err)
	}
	if _, err := os.Stat(l.Path()); err != nil {
		t.Error("foreign lockfile must not be removed")
	}
}

func TestStaleLockfiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		running map[int]string
	}{
		{"dead process", "100", map[int]string{}},
		{"other program", "100", map[int]string{100: "vim"}},
		{"malformed", "not-a-pid", map[int]string{}},
		{"empty", "", map[int]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			stubProcesses(t, 300, tt.running)
			l := New(dir)
			if err := os.WriteFile(l.Path(), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			if _, held := l.Holder(); held {
				t.Error("stale lockfile should not be held")
			}
			if err := l.Check(); err != nil {
				t.Errorf("Check = %v", err)
			}
			if err := l.Acquire(); err != nil {
				t.Errorf("Acquire should replace a stale lockfile: %v", err)
			}
		})
	}
}
