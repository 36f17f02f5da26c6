//go:build linux
// +build linux

package diag

import (
	"os"

	"golang.org/x/sys/unix"
)

const supportsColorEscapes = true

func isTerminal(file *os.File) bool {
	_, err := unix.IoctlGetTermios(int(file.Fd()), unix.TCGETS)
	return err == nil
}
