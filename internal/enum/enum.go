// Package enum implements the optional enum-LRU string dictionary: a
// string-to-index cache keyed by value payloads, admitting a string only
// after it has been observed min_freq times, with a fixed capacity and LRU
// eviction.
//
// Dict is shared code between the encoder (which decides whether a string
// should be emitted by reference) and the decoder (which mirrors every
// literal-string occurrence back into the same dict so both sides stay
// synchronized).
package enum

import "container/list"

// MinLRUSize and MaxLRUSize bound the wire-representable lru_size values:
// powers of two whose log2-5 fits the 4-bit wire field.
const (
	MinLRUSize = 32
	MaxLRUSize = 1 << (5 + 15)
)

// Config carries the two enum-dictionary parameters negotiated on the wire.
type Config struct {
	// LRUSize is the dictionary capacity; must be a power of two in
	// [MinLRUSize, MaxLRUSize].
	LRUSize int
	// MinFreq is the number of literal occurrences (inclusive of the one
	// that triggers admission) a string must accumulate before it is
	// admitted into the dictionary.
	MinFreq int
}

// WireParam returns the aaaa nibble (log2(LRUSize)-5) written in the enum
// config marker's parameter byte.
func (c Config) WireParam() byte {
	size := c.LRUSize
	shift := byte(0)

	for size > MinLRUSize {
		size >>= 1
		shift++
	}

	return shift
}

// LRUSizeFromWireParam reconstructs lru_size from the aaaa nibble read off
// the wire.
func LRUSizeFromWireParam(aaaa byte) int {
	return 1 << (5 + int(aaaa))
}

// Dict is a capacity-bounded, frequency-gated, LRU-evicting string interning
// table. It is not safe for concurrent use; one Dict belongs to one document
// and is discarded with it.
//
// Index-reuse policy (the wire contract leaves this open by design): capacity fills
// slots 0..LRUSize-1 in admission order; once full, admitting a new string
// evicts the least-recently-used entry and immediately reuses its slot index
// for the new string. This keeps index assignment dense and deterministic as
// long as both encoder and decoder run the identical admission/eviction
// sequence, which holds by construction since every literal string
// occurrence is mirrored into both sides' Dict.
type Dict struct {
	capacity int
	minFreq  int

	pending map[string]int

	slotOf   map[string]int
	valueOf  []string
	used     []bool
	nextSlot int

	order  *list.List
	nodeOf map[int]*list.Element
}

// NewDict creates a Dict with the given capacity and admission threshold.
func NewDict(cfg Config) *Dict {
	return &Dict{
		capacity: cfg.LRUSize,
		minFreq:  cfg.MinFreq,
		pending:  make(map[string]int),
		slotOf:   make(map[string]int),
		valueOf:  make([]string, cfg.LRUSize),
		used:     make([]bool, cfg.LRUSize),
		order:    list.New(),
		nodeOf:   make(map[int]*list.Element),
	}
}

// Add records one occurrence of text. If text is already admitted, its index
// is returned and it is marked most-recently-used. Otherwise the occurrence
// is counted toward admission; once the count reaches minFreq the string is
// admitted (and evicts the least-recently-used entry if the dict is full),
// but this occurrence is still reported as "not yet admitted" (returns -1) -
// only strictly later occurrences are encoded by reference.
func (d *Dict) Add(text string) int {
	if slot, ok := d.slotOf[text]; ok {
		d.touch(slot)
		return slot
	}

	d.pending[text]++
	if d.pending[text] < d.minFreq {
		return -1
	}

	delete(d.pending, text)

	slot := d.allocSlot()
	d.slotOf[text] = slot
	d.valueOf[slot] = text
	d.used[slot] = true
	d.pushFront(slot)

	return -1
}

// Get returns the string admitted at index, marking it most-recently-used.
// ok is false if index was never admitted (or was evicted).
func (d *Dict) Get(index int) (string, bool) {
	if index < 0 || index >= d.capacity || !d.used[index] {
		return "", false
	}

	d.touch(index)

	return d.valueOf[index], true
}

func (d *Dict) allocSlot() int {
	if d.nextSlot < d.capacity {
		slot := d.nextSlot
		d.nextSlot++

		return slot
	}

	return d.evictLRU()
}

func (d *Dict) evictLRU() int {
	back := d.order.Back()
	slot := back.Value.(int)

	d.order.Remove(back)
	delete(d.nodeOf, slot)

	delete(d.slotOf, d.valueOf[slot])
	d.used[slot] = false
	d.valueOf[slot] = ""

	return slot
}

func (d *Dict) pushFront(slot int) {
	d.nodeOf[slot] = d.order.PushFront(slot)
}

func (d *Dict) touch(slot int) {
	d.order.MoveToFront(d.nodeOf[slot])
}
