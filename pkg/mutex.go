package pkg

import "sync"

type HasLocker interface{ GetLocker() *sync.RWMutex }

func LockWrap(i HasLocker, f func()) {
	i.GetLocker().Lock()
	defer i.GetLocker().Unlock()
	f()
}

func RLockWrap(i HasLocker, f func()) {
	i.GetLocker().RLock()
	defer i.GetLocker().RUnlock()
	f()
}

// LockWrapErr runs f in the write critical section and returns its error.
func LockWrapErr(i HasLocker, f func() error) error {
	var err error
	LockWrap(i, func() { err = f() })
	return err
}
