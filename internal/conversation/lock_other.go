//go:build !unix

package conversation

// lockFile is a no-op where flock is unavailable; the in-process key lock still applies.
func lockFile(string) (func() error, error) {
	return func() error { return nil }, nil
}
