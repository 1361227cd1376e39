//go:build linux

package thread

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin locks the calling goroutine to its OS thread and restricts that
// thread to coreID. The goroutine should call Unpin before returning.
func Pin(coreID int) error {
	runtime.LockOSThread()
	var set unix.CPUSet
	set.Zero()
	set.Set(coreID)
	return unix.SchedSetaffinity(0, &set)
}

func Unpin() {
	runtime.UnlockOSThread()
}
