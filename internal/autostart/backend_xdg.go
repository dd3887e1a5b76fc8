//go:build (linux && !android) || freebsd || netbsd || openbsd || dragonfly

package autostart

func DefaultBackend() Backend { return NewDesktopFileBackend() }
