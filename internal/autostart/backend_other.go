//go:build !windows && (android || !(linux || freebsd || netbsd || openbsd || dragonfly))

package autostart

// DefaultBackend reports autostart as unsupported (macOS, mobile and the rest).
func DefaultBackend() Backend { return Unsupported{} }
