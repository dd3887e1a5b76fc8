package autostart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/process"
)

// ExecutablePath returns the absolute path of the running binary. It is
// resolved on every call so a moved binary is picked up on re-enable.
func ExecutablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		// Fall back to the process table entry for our own pid.
		exe, err = processExe(os.Getpid())
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrPathResolution, err)
		}
	}

	abs, err := filepath.Abs(exe)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathResolution, err)
	}
	return abs, nil
}

func processExe(pid int) (string, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", fmt.Errorf("opening process %d: %w", pid, err)
	}
	exe, err := p.Exe()
	if err != nil {
		return "", fmt.Errorf("reading process %d executable: %w", pid, err)
	}
	if exe == "" {
		return "", fmt.Errorf("process %d reports no executable", pid)
	}
	return exe, nil
}
