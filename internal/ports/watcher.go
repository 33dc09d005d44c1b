package ports

// ChangeWatcher reports writes to a key made by other processes or
// instances sharing the same KVStore. The favorites store re-hydrates and
// notifies its subscribers when onChange fires.
type ChangeWatcher interface {
	// Watch starts monitoring key. onChange may be invoked from any
	// goroutine and may fire for the caller's own writes; receivers must
	// treat it as "something may have changed". Only one Watch call should
	// be active per watcher.
	Watch(key string, onChange func()) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
