//go:build !unix

package live

import "os"

// inode is unavailable; modification time alone identifies the file.
func inode(os.FileInfo) uint64 {
	return 0
}
