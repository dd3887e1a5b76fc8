package autostart

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// memBackend keeps the record in memory.
type memBackend struct {
	rec      *Record
	writes   int
	writeErr error
}

func (b *memBackend) Supported() bool { return true }

func (b *memBackend) Location() (string, error) { return "mem://" + AppID, nil }

func (b *memBackend) Write(_ string, rec Record) error {
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes++
	b.rec = &rec
	return nil
}

func (b *memBackend) Remove(string) { b.rec = nil }

func (b *memBackend) Exists(string) (bool, error) { return b.rec != nil, nil }

func newTestManager(b Backend, exe string) *Manager {
	m := NewWithBackend(b, nil)
	m.executable = func() (string, error) { return exe, nil }
	return m
}

func TestSetAutostart_EnableIsIdempotent(t *testing.T) {
	b := &memBackend{}
	m := newTestManager(b, "/opt/alarm/alarm-timer")

	for i := 0; i < 2; i++ {
		if err := m.SetAutostart(true); err != nil {
			t.Fatalf("enable #%d: %v", i+1, err)
		}
	}
	if b.rec == nil || b.rec.ExecPath != "/opt/alarm/alarm-timer" {
		t.Fatalf("record = %+v, want exec /opt/alarm/alarm-timer", b.rec)
	}
	on, err := m.GetAutostart()
	if err != nil || !on {
		t.Errorf("GetAutostart() = %v, %v; want true, nil", on, err)
	}
}

func TestSetAutostart_DisableWhenNotRegistered(t *testing.T) {
	b := &memBackend{}
	m := newTestManager(b, "/opt/alarm/alarm-timer")

	if err := m.SetAutostart(false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	on, err := m.GetAutostart()
	if err != nil || on {
		t.Errorf("GetAutostart() = %v, %v; want false, nil", on, err)
	}
}

func TestSetAutostart_UsesCurrentExecutable(t *testing.T) {
	b := &memBackend{}
	m := newTestManager(b, "/old/alarm-timer")
	if err := m.SetAutostart(true); err != nil {
		t.Fatal(err)
	}

	// Binary moved; re-enabling overwrites the stale path.
	m.executable = func() (string, error) { return "/new/alarm-timer", nil }
	if err := m.SetAutostart(true); err != nil {
		t.Fatal(err)
	}
	if b.rec.ExecPath != "/new/alarm-timer" {
		t.Errorf("ExecPath = %q, want /new/alarm-timer", b.rec.ExecPath)
	}
}

func TestSetAutostart_PathResolutionError(t *testing.T) {
	b := &memBackend{}
	m := NewWithBackend(b, nil)
	m.executable = func() (string, error) {
		return "", ErrPathResolution
	}

	err := m.SetAutostart(true)
	if !errors.Is(err, ErrPathResolution) {
		t.Fatalf("err = %v, want ErrPathResolution", err)
	}
	if b.writes != 0 {
		t.Errorf("writes = %d, want 0", b.writes)
	}
}

func TestSetAutostart_WriteFailedLeavesStateUnchanged(t *testing.T) {
	b := &memBackend{writeErr: ErrWriteFailed}
	m := newTestManager(b, "/opt/alarm/alarm-timer")

	if err := m.SetAutostart(true); !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("err = %v, want ErrWriteFailed", err)
	}
	if on, _ := m.GetAutostart(); on {
		t.Error("GetAutostart() = true after failed enable")
	}
}

func TestUnsupportedPlatform(t *testing.T) {
	m := NewWithBackend(Unsupported{}, nil)
	m.executable = func() (string, error) {
		t.Fatal("executable resolved on unsupported platform")
		return "", nil
	}

	for _, enabled := range []bool{true, false} {
		if err := m.SetAutostart(enabled); err != nil {
			t.Errorf("SetAutostart(%v) = %v, want nil", enabled, err)
		}
	}
	on, err := m.GetAutostart()
	if err != nil || on {
		t.Errorf("GetAutostart() = %v, %v; want false, nil", on, err)
	}
}

func TestRecordCommandLine(t *testing.T) {
	rec := Record{ExecPath: `C:\Program Files\Alarm Timer\alarm-timer.exe`}
	want := `"C:\Program Files\Alarm Timer\alarm-timer.exe" --autostart`
	if got := rec.CommandLine(); got != want {
		t.Errorf("CommandLine() = %q, want %q", got, want)
	}
}

func TestStartedByAutostart(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"-config", "x.yaml"}, false},
		{[]string{"--autostart"}, true},
		{[]string{"-config", "x.yaml", "--autostart"}, true},
		{[]string{"--autostart=1"}, false},
	}
	for _, tt := range tests {
		if got := StartedByAutostart(tt.args); got != tt.want {
			t.Errorf("StartedByAutostart(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestExecutablePath_IsAbsolute(t *testing.T) {
	exe, err := ExecutablePath()
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(exe) {
		t.Errorf("ExecutablePath() = %q, want absolute path", exe)
	}
}

func TestDesktopFile_RoundTrip(t *testing.T) {
	base := filepath.Join(t.TempDir(), "home", "u", ".config")
	t.Setenv("XDG_CONFIG_HOME", base)

	m := NewWithBackend(NewDesktopFileBackend(), nil)
	want := filepath.Join(base, "autostart", DesktopFileName)

	if err := m.SetAutostart(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("desktop file not written: %v", err)
	}

	exe, err := ExecutablePath()
	if err != nil {
		t.Fatal(err)
	}
	execLine := `Exec="` + exe + `" --autostart`
	if !strings.Contains(string(data), execLine+"\n") {
		t.Errorf("desktop file missing %q:\n%s", execLine, data)
	}

	on, err := m.GetAutostart()
	if err != nil || !on {
		t.Fatalf("GetAutostart() = %v, %v; want true, nil", on, err)
	}

	if err := m.SetAutostart(false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if _, err := os.Stat(want); !os.IsNotExist(err) {
		t.Errorf("desktop file still present after disable: %v", err)
	}
	on, err = m.GetAutostart()
	if err != nil || on {
		t.Errorf("GetAutostart() = %v, %v; want false, nil", on, err)
	}
}

func TestDesktopFile_EnableTwiceOverwrites(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	m := NewWithBackend(NewDesktopFileBackend(), nil)

	if err := m.SetAutostart(true); err != nil {
		t.Fatal(err)
	}
	if err := m.SetAutostart(true); err != nil {
		t.Fatalf("second enable: %v", err)
	}

	loc, _ := NewDesktopFileBackend().Location()
	entries, err := os.ReadDir(filepath.Dir(loc))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != DesktopFileName {
		t.Errorf("autostart dir = %v, want only %s", entries, DesktopFileName)
	}
}

func TestDesktopFile_ConcurrentEnable(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	m := NewWithBackend(NewDesktopFileBackend(), nil)

	const n = 64
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- m.SetAutostart(true)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent enable: %v", err)
		}
	}

	on, err := m.GetAutostart()
	if err != nil || !on {
		t.Fatalf("GetAutostart after concurrent enables = %v, %v", on, err)
	}

	loc, _ := NewDesktopFileBackend().Location()
	entries, err := os.ReadDir(filepath.Dir(loc))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != DesktopFileName {
		t.Errorf("autostart dir = %v, want only %s", entries, DesktopFileName)
	}
}

func TestDesktopFile_Content(t *testing.T) {
	got := Record{ExecPath: "/usr/bin/alarm-timer"}.DesktopEntry()
	want := "[Desktop Entry]\n" +
		"Type=Application\n" +
		"Name=Alarm Timer\n" +
		"Exec=\"/usr/bin/alarm-timer\" --autostart\n" +
		"Terminal=false\n" +
		"X-GNOME-Autostart-enabled=true\n"
	if got != want {
		t.Errorf("DesktopEntry() =\n%s\nwant\n%s", got, want)
	}
}

func TestDesktopFile_Location(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    string
		wantErr error
	}{
		{
			name: "xdg",
			env:  map[string]string{"XDG_CONFIG_HOME": "/home/u/.config", "HOME": "/home/other"},
			want: "/home/u/.config/autostart/alarm-timer.desktop",
		},
		{
			name: "home fallback",
			env:  map[string]string{"HOME": "/home/u"},
			want: "/home/u/.config/autostart/alarm-timer.desktop",
		},
		{
			name: "empty xdg falls back",
			env:  map[string]string{"XDG_CONFIG_HOME": "", "HOME": "/home/u"},
			want: "/home/u/.config/autostart/alarm-timer.desktop",
		},
		{
			name:    "nothing set",
			env:     map[string]string{},
			wantErr: ErrConfigDirUnresolvable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &DesktopFileBackend{LookupEnv: func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			}}
			got, err := b.Location()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Location() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got != filepath.FromSlash(tt.want) {
				t.Errorf("Location() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDesktopFile_ConfigDirUnresolvable(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	m := NewWithBackend(NewDesktopFileBackend(), nil)

	for _, enabled := range []bool{true, false} {
		if err := m.SetAutostart(enabled); !errors.Is(err, ErrConfigDirUnresolvable) {
			t.Errorf("SetAutostart(%v) = %v, want ErrConfigDirUnresolvable", enabled, err)
		}
	}
	if _, err := m.GetAutostart(); !errors.Is(err, ErrConfigDirUnresolvable) {
		t.Errorf("GetAutostart() error = %v, want ErrConfigDirUnresolvable", err)
	}
}

func TestDesktopFile_WriteFailed(t *testing.T) {
	base := t.TempDir()
	// A regular file where the autostart directory should be.
	if err := os.WriteFile(filepath.Join(base, "autostart"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", base)

	m := NewWithBackend(NewDesktopFileBackend(), nil)
	if err := m.SetAutostart(true); !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("SetAutostart(true) = %v, want ErrWriteFailed", err)
	}
	// Disabling a location that cannot hold a record still succeeds.
	if err := m.SetAutostart(false); err != nil {
		t.Errorf("SetAutostart(false) = %v, want nil", err)
	}
}
