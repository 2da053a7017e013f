package estatetest

import (
	"io/ioutil"
	"os"
	"testing"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db estate.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "estate-store-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	commit, err := iavl.NewCommitStore(dbpath, "db")
	if err != nil {
		t.Fatalf("cannot open store: %s", err)
	}
	return commit, func() {
		commit.Close()
		os.RemoveAll(dbpath)
	}
}
