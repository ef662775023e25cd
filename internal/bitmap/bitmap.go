// Package bitmap provides a compact bitset over non-negative row indexes.
// The load path uses it to track which rows of an entity set the storage
// backend rejected, so key sets can be built without re-querying the
// database.
package bitmap

// Bitmap is a bitset backed by a slice of uint64 words. Each bit corresponds
// to one row index.
type Bitmap struct {
	data []uint64
	n    int
}

// New allocates a bitmap covering indexes in the range [0, max).
//
// If max <= 0, no backing storage is allocated and the bitmap behaves as an
// empty set.
func New(max int) *Bitmap {
	if max <= 0 {
		return &Bitmap{}
	}
	return &Bitmap{data: make([]uint64, (max+63)/64)}
}

// Add sets the bit for index i. Out-of-range indexes are ignored.
func (b *Bitmap) Add(i int) {
	if i < 0 || i/64 >= len(b.data) {
		return
	}
	word := i / 64
	bit := uint64(1) << uint(i%64)
	if b.data[word]&bit == 0 {
		b.data[word] |= bit
		b.n++
	}
}

// Has reports whether the bit for index i is set.
func (b *Bitmap) Has(i int) bool {
	if i < 0 || i/64 >= len(b.data) {
		return false
	}
	return b.data[i/64]&(1<<uint(i%64)) != 0
}

// Count returns the number of set bits.
func (b *Bitmap) Count() int {
	return b.n
}
