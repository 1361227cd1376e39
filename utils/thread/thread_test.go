//go:build linux

package thread

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestPin(t *testing.T) {
	var current unix.CPUSet
	if err := unix.SchedGetaffinity(0, &current); err != nil {
		t.Skipf("SchedGetaffinity: %v", err)
	}
	core := -1
	for i := 0; i < 1024; i++ {
		if current.IsSet(i) {
			core = i
			break
		}
	}
	if core < 0 {
		t.Skip("no usable core")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := Pin(core); err != nil {
			t.Errorf("Pin(%d): %v", core, err)
			return
		}
		defer Unpin()

		var got unix.CPUSet
		if err := unix.SchedGetaffinity(0, &got); err != nil {
			t.Errorf("SchedGetaffinity: %v", err)
			return
		}
		if got.Count() != 1 || !got.IsSet(core) {
			t.Errorf("affinity after Pin has %d cores", got.Count())
		}
	}()
	<-done
}
