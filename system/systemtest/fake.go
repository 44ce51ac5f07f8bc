// Package systemtest provides a scripted in-memory System for tests.
package systemtest

import (
	"strings"
	"sync"

	"github.com/storemask/storemask/system"
)

// Fake implements system.System from canned responses and records every
// call in order. The zero value reports an empty mount table, an empty
// closure and succeeding mounts.
type Fake struct {
	mu    sync.Mutex
	calls []string

	// MountTableOut and MountTableErr script MountTable.
	MountTableOut []byte
	MountTableErr error

	// ClosureOut and ClosureErr script QueryClosure. ClosureFunc takes
	// precedence when set.
	ClosureOut  []byte
	ClosureErr  error
	ClosureFunc func(roots []string) ([]byte, error)

	UnmountErr error
	MountErr   error
}

var _ system.System = &Fake{}

func (f *Fake) MountTable() ([]byte, error) {
	f.record("mounttable")
	return f.MountTableOut, f.MountTableErr
}

func (f *Fake) Unmount(target string) error {
	f.record("umount " + target)
	return f.UnmountErr
}

func (f *Fake) MountOverlay(options string, target string) error {
	f.record("mount " + options + " " + target)
	return f.MountErr
}

func (f *Fake) QueryClosure(roots []string) ([]byte, error) {
	f.record("closure " + strings.Join(roots, " "))
	if f.ClosureFunc != nil {
		return f.ClosureFunc(roots)
	}
	return f.ClosureOut, f.ClosureErr
}

// Calls returns the operations run so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fake) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}
