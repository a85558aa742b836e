// Package lockfile guards a batch output location against concurrent runs
// through an advisory flock(2) lease paired with the owner's PID written into
// the lock file. flock alone is not enough across some container setups, so
// callers are expected to cross-check the recorded PID for liveness.
package lockfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
)

var (
	ErrHeld   = fmt.Errorf("lock is held by another process")
	ErrClosed = fmt.Errorf("lock file has already been released")
)

type Lock struct {
	mu     sync.Mutex
	file   *os.File
	path   string
	closed bool
}

// Acquire opens (or creates) the lock file at path and takes a non-blocking
// exclusive lease on it. Returns ErrHeld when another process holds the
// lease.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if err == syscall.EWOULDBLOCK {
			return nil, ErrHeld
		}
		return nil, err
	}
	return &Lock{file: f, path: path}, nil
}

// OwnerPID reads the PID previously recorded in the lock file. Returns 0 when
// the file is empty.
func (l *Lock) OwnerPID() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	data := make([]byte, 8)
	n, err := l.file.ReadAt(data, 0)
	if err != nil && err != io.EOF {
		return 0, err
	}
	if n < 8 {
		return 0, nil
	}
	return int(binary.BigEndian.Uint64(data)), nil
}

// WriteOwnerPID records pid as the lock owner.
func (l *Lock) WriteOwnerPID(pid int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(pid))
	if _, err := l.file.WriteAt(data, 0); err != nil {
		return err
	}
	return l.file.Sync()
}

// Release drops the lease, closes the descriptor, and removes the lock file.
func (l *Lock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.closed = true
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		_ = l.file.Close()
		return err
	}
	if err := l.file.Close(); err != nil {
		return err
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
