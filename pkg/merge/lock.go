package merge

import (
	"os"

	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/gofrs/flock"
)

// LockSuffix is appended to the output archive path to form the lock file.
const LockSuffix = ".lock"

// acquireLock takes an exclusive lock next to the output archive so two
// runs cannot write the same composite at once. The returned func releases
// the lock and removes the lock file.
func acquireLock(output string) (func(), error) {
	lockPath := output + LockSuffix
	l := flock.New(lockPath)
	locked, err := l.TryLock()
	if err != nil {
		return func() {}, errors.Wrap(err, errors.ErrLocked, "cannot acquire merge lock").
			WithDetail("path", lockPath)
	}
	if !locked {
		return func() {}, errors.New(errors.ErrLocked, "another merge is writing this archive").
			WithDetail("path", lockPath)
	}
	return func() {
		_ = l.Unlock()
		_ = os.Remove(lockPath)
	}, nil
}
