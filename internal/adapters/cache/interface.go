package cache

type hitResult[T any] struct {
	data    T
	valid   bool
	claimed bool
}

type Cache[T any] interface {
	// getOrClaim returns the current entry, or claims the key for the caller
	// when no entry exists. A claimed entry is invalid until set.
	getOrClaim(key string) hitResult[T]
	set(key string, data T)
	delete(key string)
	wait()
}
