package dicom

import (
	"bytes"
	"container/list"
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

type internEntry struct {
	key uint64
	e   *Element
}

// InternTable shares identical primitive elements between data sets.
// It holds at most `capacity` elements and evicts the least recently used.
// An InternTable is safe for concurrent use.
type InternTable struct {
	mu       sync.Mutex
	lru      *list.List // front is most recent
	byKey    map[uint64]*list.Element
	capacity int
	hits     uint64
	misses   uint64
}

// NewInternTable returns a table holding up to `capacity` elements.
func NewInternTable(capacity int) *InternTable {
	if capacity < 1 {
		capacity = 1
	}
	return &InternTable{
		lru:      list.New(),
		byKey:    make(map[uint64]*list.Element, capacity),
		capacity: capacity,
	}
}

func internKey(e *Element) uint64 {
	var hdr [6]byte
	binary.LittleEndian.PutUint32(hdr[:4], uint32(e.tag))
	hdr[4] = byte(e.vr)
	if e.bigEndian {
		hdr[5] = 1
	}
	d := xxhash.New()
	d.Write(hdr[:])
	d.Write(e.value)
	return d.Sum64()
}

func sameContent(a, b *Element) bool {
	return a.tag == b.tag && a.vr == b.vr && a.bigEndian == b.bigEndian && bytes.Equal(a.value, b.value)
}

// Intern returns a previously interned element equal to `e`, or records and
// returns `e`. Sequences and fragments are returned unchanged.
func (it *InternTable) Intern(e *Element) *Element {
	if e == nil || e.kind != primitive {
		return e
	}
	key := internKey(e)
	it.mu.Lock()
	defer it.mu.Unlock()
	if le, ok := it.byKey[key]; ok {
		entry := le.Value.(*internEntry)
		if sameContent(entry.e, e) {
			it.hits++
			it.lru.MoveToFront(le)
			return entry.e
		}
		// hash collision: the newer element takes the slot
		it.misses++
		entry.e = e
		it.lru.MoveToFront(le)
		return e
	}
	it.misses++
	for it.lru.Len() >= it.capacity {
		oldest := it.lru.Back()
		delete(it.byKey, oldest.Value.(*internEntry).key)
		it.lru.Remove(oldest)
	}
	it.byKey[key] = it.lru.PushFront(&internEntry{key: key, e: e})
	return e
}

// Len returns the number of interned elements.
func (it *InternTable) Len() int {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.lru.Len()
}

// Stats returns the lookup counters.
func (it *InternTable) Stats() (hits, misses uint64) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.hits, it.misses
}

// Reset drops every interned element and clears the counters.
func (it *InternTable) Reset() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.lru.Init()
	it.byKey = make(map[uint64]*list.Element, it.capacity)
	it.hits, it.misses = 0, 0
}
