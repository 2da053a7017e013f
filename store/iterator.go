package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/estate/errors"
)

// collect copies all cached items within [start, end) out of the tree, in
// the requested order. A nil start or end leaves that side open.
func collect(bt *btree.BTree, start, end []byte, reverse bool) []keyer {
	var items []keyer
	insert := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// mergeIterator joins the cached items with those of the parent,
// taking into consideration overwrites and deletes.
type mergeIterator struct {
	items   []keyer
	idx     int
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []keyer, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.skipAllDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

// Valid implements Iterator and returns true iff it can be read
func (i *mergeIterator) Valid() bool {
	return i.ourValid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
func (i *mergeIterator) Next() error {
	// advance either us, parent, or both
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		return errors.ErrHuman.New("advanced past the end")
	}

	// keep advancing over all deleted entries
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *mergeIterator) Key() (key []byte) {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].Key()
	case parent:
		return i.parent.Key()
	default:
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *mergeIterator) Value() (value []byte) {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("Advanced past the end!")
	}
}

// Close releases the Iterator.
func (i *mergeIterator) Close() {
	i.parent.Close()
	i.items = nil
}

// skipAllDeleted jumps over every deleted item we currently point at.
func (i *mergeIterator) skipAllDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if _, ok := i.items[i.idx].(deletedItem); !ok {
			return nil
		}
		i.idx++
		// if parent had the same key, advance parent as well
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey selects the iterator with the key that comes first in the
// iteration order, if any
func (i *mergeIterator) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if !i.parentValid() {
		if !i.ourValid() {
			return none
		}
		return us
	} else if !i.ourValid() {
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.items[i.idx].Key())
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *mergeIterator) ourValid() bool {
	return i.idx < len(i.items)
}

// makes sure the parent is non-nil before checking if it is valid
func (i *mergeIterator) parentValid() bool {
	return (i.parent != nil) && i.parent.Valid()
}
