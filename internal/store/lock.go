package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// lockFileName is the advisory lock inside the store directory. One holder
// per store directory keeps two processes from racing renumber operations
// against the same board.
const lockFileName = "LOCK"

const (
	lockFilePerm = 0o600
	lockTimeout  = 2 * time.Second
	lockBackoff  = 5 * time.Millisecond
)

// dirLock is an exclusive flock(2) on the store directory's lock file.
// flock is advisory and inode-based; the lock file is never replaced or
// unlinked while the store is open, so holding the descriptor is enough.
type dirLock struct {
	file *os.File
}

// acquireDirLock takes the exclusive lock, polling with a short backoff
// until the timeout expires. Returns ErrLocked when another process holds
// the lock past the deadline.
func acquireDirLock(path string) (*dirLock, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, lockFilePerm)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	deadline := time.Now().Add(lockTimeout)

	for {
		err = flockRetryEINTR(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &dirLock{file: file}, nil
		}

		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			_ = file.Close()

			return nil, fmt.Errorf("flock: %w", err)
		}

		if time.Now().After(deadline) {
			_ = file.Close()

			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}

		time.Sleep(lockBackoff)
	}
}

// release unlocks and closes the descriptor. Idempotent.
func (l *dirLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}

	unlockErr := flockRetryEINTR(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil

	return errors.Join(unlockErr, closeErr)
}

// flockRetryEINTR wraps flock, retrying when a signal interrupts the
// syscall. Bounded so a pathological signal storm cannot spin forever.
func flockRetryEINTR(fd, how int) error {
	const maxRetries = 10000

	var err error

	for i := 0; i < maxRetries; i++ {
		err = unix.Flock(fd, how)
		if err == nil || !errors.Is(err, unix.EINTR) {
			return err
		}
	}

	return err
}
