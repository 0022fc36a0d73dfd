//go:build !unix

package source

import "os"

// ready only trusts redirected regular files, since a pipe cannot be
// probed without blocking.
func ready(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
