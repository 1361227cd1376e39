//go:build !linux

package thread

import (
	"runtime"

	"github.com/pkg/errors"
)

func Pin(coreID int) error {
	runtime.LockOSThread()
	return errors.Errorf("CPU pinning is not supported on %s", runtime.GOOS)
}

func Unpin() {
	runtime.UnlockOSThread()
}
