package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	assertGet(t, base, k, nil)
	require.NoError(t, base.Set(k, v))
	assertGet(t, base, k, v)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGet(t, cache, k, v)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGet(t, cache, k2, v2)
	assertGet(t, base, k2, nil)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertGet(t, base, k, v)
	assertGet(t, base, k2, v2)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assertGet(t, base, k3, nil)

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())

	assertGet(t, base, k, nil)
	assertGet(t, base, k2, v2)
	assertGet(t, base, k3, nil)

	// and to test devnull....
	require.NoError(t, base.Write())
	assertGet(t, devnull, k2, nil)
}

func assertGet(t *testing.T, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, want != nil, has)
}

func TestBTreeCacheIteration(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte(k+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("bb")))
	require.NoError(t, cache.Set([]byte("c"), []byte("CC")))
	require.NoError(t, cache.Delete([]byte("e")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []string
	}{
		"full ascending": {
			want: []string{"a=aa", "b=bb", "c=CC", "g=gg"},
		},
		"full descending": {
			reverse: true,
			want:    []string{"g=gg", "c=CC", "b=bb", "a=aa"},
		},
		"bounded ascending": {
			start: []byte("b"),
			end:   []byte("g"),
			want:  []string{"b=bb", "c=CC"},
		},
		"bounded descending": {
			start:   []byte("b"),
			end:     []byte("g"),
			reverse: true,
			want:    []string{"c=CC", "b=bb"},
		},
		"open end": {
			start: []byte("d"),
			want:  []string{"g=gg"},
		},
		"deleted only": {
			start: []byte("e"),
			end:   []byte("f"),
			want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer it.Close()

			var got []string
			for ; it.Valid(); require.NoError(t, it.Next()) {
				got = append(got, string(it.Key())+"="+string(it.Value()))
			}
			assert.Equal(t, tc.want, got)
		})
	}
}
