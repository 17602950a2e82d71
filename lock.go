package disksearch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// destLock is an exclusive advisory lock held for the duration of a run.
// The lock file lives in the OS temp directory, named after the absolute
// destination path, so nothing extra is written into the destination.
type destLock struct {
	fl   *flock.Flock
	dest string
}

// DestLockPath returns the lock file guarding dest. A run holds an
// exclusive flock on it unless [WithoutDestLock] is given.
func DestLockPath(dest string) (string, error) {
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(os.TempDir(), "disksearch-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// acquireDestLock takes the lock without blocking. It returns
// [ErrDestLocked] when another run holds it.
func acquireDestLock(dest string) (*destLock, error) {
	path, err := DestLockPath(dest)
	if err != nil {
		return nil, fmt.Errorf("resolve destination %s: %w", dest, err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock destination %s: %w", dest, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDestLocked, dest)
	}
	return &destLock{fl: fl, dest: dest}, nil
}

func (l *destLock) release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("unlock destination %s: %w", l.dest, err)
	}
	return nil
}
