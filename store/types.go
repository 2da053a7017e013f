package store

import estate "github.com/iov-one/estate"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = estate.ReadOnlyKVStore
	SetDeleter       = estate.SetDeleter
	KVStore          = estate.KVStore
	Iterator         = estate.Iterator
	CacheableKVStore = estate.CacheableKVStore
	KVCacheWrap      = estate.KVCacheWrap
	CommitKVStore    = estate.CommitKVStore
	CommitID         = estate.CommitID
	Model            = estate.Model
)

// Batch can write multiple ops atomically to an underlying KVStore
type Batch interface {
	SetDeleter
	Write() error
}
