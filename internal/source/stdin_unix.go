//go:build unix

package source

import (
	"os"

	"golang.org/x/sys/unix"
)

// ready polls f with a zero timeout. A hung-up pipe counts as ready; the
// read that follows returns nothing.
func ready(f *os.File) bool {
	fds := []unix.PollFd{{Fd: int32(f.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil || n == 0 {
		return false
	}
	return fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0
}
