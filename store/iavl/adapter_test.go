package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/estate/estatetest/assert"
	"github.com/iov-one/estate/store"
)

func makeCommitStore(t testing.TB) (CommitStore, string, func()) {
	t.Helper()
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		t.Fatalf("cannot create temp dir: %s", err)
	}
	commit, err := NewCommitStore(tmpDir, "base")
	if err != nil {
		t.Fatalf("cannot open store: %s", err)
	}
	cleanup := func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
	return commit, tmpDir, cleanup
}

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// TestCacheGetSet does basic sanity checks on our cache
func TestCacheGetSet(t *testing.T) {
	commit, _, cleanup := makeCommitStore(t)
	defer cleanup()
	base := commit.Adapter()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Delete(k))
	discarded.Discard()
	assertGetHas(t, base, k, v, true)

	assert.Nil(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)
}

func TestCommitAndReload(t *testing.T) {
	commit, dir, cleanup := makeCommitStore(t)
	defer cleanup()

	k, v := []byte("claimed"), []byte("30")
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(k, v))
	assert.Nil(t, cache.Write())

	// Nothing is visible in the committed state until commit.
	got, err := commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, []byte(nil), got)

	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("commit hash expected")
	}

	got, err = commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)
	commit.Close()

	reopened, err := NewCommitStore(dir, "base")
	assert.Nil(t, err)
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())
	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id.Version, latest.Version)
	assert.Equal(t, id.Hash, latest.Hash)
	got, err = reopened.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)
}

func TestIteration(t *testing.T) {
	commit := MockCommitStore()
	base := commit.Adapter()
	for _, k := range []string{"a", "b", "c", "d"} {
		assert.Nil(t, base.Set([]byte(k), []byte(k)))
	}
	cache := base.CacheWrap()
	assert.Nil(t, cache.Delete([]byte("b")))
	assert.Nil(t, cache.Set([]byte("bb"), []byte("bb")))

	it, err := cache.Iterator([]byte("a"), []byte("d"))
	assert.Nil(t, err)
	var got []string
	for ; it.Valid(); assert.Nil(t, it.Next()) {
		got = append(got, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"a", "bb", "c"}, got)

	rit, err := cache.ReverseIterator(nil, nil)
	assert.Nil(t, err)
	got = nil
	for ; rit.Valid(); assert.Nil(t, rit.Next()) {
		got = append(got, string(rit.Key()))
	}
	rit.Close()
	assert.Equal(t, []string{"d", "c", "bb", "a"}, got)
}
