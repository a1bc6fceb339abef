// Package lock guards the data file against two interactive sessions
// writing at once. The lockfile records "pid|executable|created" and is
// considered abandoned when that process is gone.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/logger"
)

// ErrLocked is returned when another live process holds the lock.
var ErrLocked = errors.New("another dentaplan session is running")

var (
	findProcessFunc = ps.FindProcess
	nowFunc         = time.Now
)

// Holder describes the owner recorded in a lockfile.
type Holder struct {
	PID        int
	Executable string
	Created    time.Time
}

// Lock is an acquired lockfile.
type Lock struct {
	path string
	pid  int
}

// Path returns the lockfile location for dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Acquire takes the lock in dir. A lockfile left by a dead process, by a
// process that is not dentaplan, or one older than LockStaleAfter is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := Path(dir)

	if holder, err := Inspect(dir); err == nil {
		if holder.PID != os.Getpid() && isActive(holder) {
			return nil, fmt.Errorf("%w (pid %d since %s)", ErrLocked, holder.PID, holder.Created.Format(time.RFC3339))
		}
		logger.Warn("Replacing abandoned lockfile", "pid", holder.PID, "path", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	} else if !os.IsNotExist(err) {
		logger.Warn("Replacing unreadable lockfile", "path", path, "error", err)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove malformed lockfile: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	defer f.Close()

	exe := constants.AppName
	if p, err := os.Executable(); err == nil {
		exe = filepath.Base(p)
	}
	pid := os.Getpid()
	if _, err := fmt.Fprintf(f, "%d|%s|%s", pid, exe, nowFunc().UTC().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path, pid: pid}, nil
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := read(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Inspect reads the lockfile in dir. A missing file yields an error
// satisfying os.IsNotExist.
func Inspect(dir string) (Holder, error) {
	return read(Path(dir))
}

// IsHeld reports whether a live process other than this one holds the lock in dir.
func IsHeld(dir string) (Holder, bool) {
	holder, err := Inspect(dir)
	if err != nil {
		return Holder{}, false
	}
	return holder, holder.PID != os.Getpid() && isActive(holder)
}

func read(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return Holder{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	created, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return Holder{}, errors.New("invalid timestamp in lockfile")
	}
	return Holder{PID: pid, Executable: parts[1], Created: created}, nil
}

func isActive(h Holder) bool {
	if nowFunc().Sub(h.Created) > constants.LockStaleAfter {
		return false
	}
	process, err := findProcessFunc(h.PID)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
