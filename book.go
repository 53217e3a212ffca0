package netcodec

import "sort"

// Book is a name-sorted collection of nets, the unit a whole program
// compiles to. Definitions are kept in a slice rather than a map so
// iteration order is always the canonical sorted order the wire format
// requires.
type Book struct {
	entries []bookEntry
}

type bookEntry struct {
	name string
	net  *Net
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{}
}

// Put inserts or replaces the definition named name, keeping entries
// sorted by name.
func (b *Book) Put(name string, n *Net) {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].name >= name })
	if i < len(b.entries) && b.entries[i].name == name {
		b.entries[i].net = n
		return
	}
	b.entries = append(b.entries, bookEntry{})
	copy(b.entries[i+1:], b.entries[i:])
	b.entries[i] = bookEntry{name: name, net: n}
}

// Get looks up a definition by name.
func (b *Book) Get(name string) (*Net, bool) {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].name >= name })
	if i < len(b.entries) && b.entries[i].name == name {
		return b.entries[i].net, true
	}
	return nil, false
}

// Keys returns every definition name in ascending order.
func (b *Book) Keys() []string {
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.name
	}
	return out
}

// Len reports the number of definitions in the book.
func (b *Book) Len() int { return len(b.entries) }

// EncodeBook serializes a book as an Elias-gamma entry count followed
// by each entry's length-prefixed name and encoded net, in ascending
// name order. Every net must be well-formed.
func EncodeBook(b *Book, order Order, refMode RefMode) ([]byte, error) {
	w := NewWriter(order)
	writeVarLen(w, VarLenNumber(len(b.entries)))
	for _, e := range b.entries {
		wiring, err := e.net.CurrentWiring()
		if err != nil {
			return nil, err
		}
		writeString(w, e.name)
		writeTreeTo(w, e.net.Root, treeShape, treeChildren, refMode)
		writeVarLen(w, VarLenNumber(len(e.net.Redexes)))
		for _, rx := range e.net.Redexes {
			writeTreeTo(w, rx.A, treeShape, treeChildren, refMode)
			writeTreeTo(w, rx.B, treeShape, treeChildren, refMode)
		}
		writeWiringTo(w, wiring)
	}
	return w.Bytes(), nil
}

// maxPreallocEntries bounds how far DecodeBook/DecodeNet will size a
// slice up front from an untrusted count. Counts above this still
// decode correctly; they just grow the backing slice incrementally via
// append instead of allocating it all at once, so a bogus huge count
// costs a failed read on the first missing element rather than a huge
// allocation.
const maxPreallocEntries = 4096

// DecodeBook reconstructs a book from bytes produced by EncodeBook. It
// returns ErrBookKeyDisorder if the decoded names are not strictly
// ascending, which rejects corrupt input early.
func DecodeBook(data []byte, order Order, refMode RefMode) (*Book, error) {
	r := NewReader(data, order)
	count, err := readVarLen(r)
	if err != nil {
		return nil, err
	}
	b := &Book{entries: make([]bookEntry, 0, clampPrealloc(uint64(count)))}
	prev := ""
	for i := 0; i < int(count); i++ {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		if i > 0 && name <= prev {
			return nil, ErrBookKeyDisorder
		}
		prev = name

		root, err := readTreeFrom(r, buildTree, refMode)
		if err != nil {
			return nil, err
		}
		redexCount, err := readVarLen(r)
		if err != nil {
			return nil, err
		}
		redexes := make([]Redex, 0, clampPrealloc(uint64(redexCount)))
		for j := uint64(0); j < uint64(redexCount); j++ {
			a, err := readTreeFrom(r, buildTree, refMode)
			if err != nil {
				return nil, err
			}
			bb, err := readTreeFrom(r, buildTree, refMode)
			if err != nil {
				return nil, err
			}
			redexes = append(redexes, Redex{A: a, B: bb})
		}

		n := &Net{Root: root, Redexes: redexes}
		vars := n.allVars()
		if len(vars)%2 != 0 {
			return nil, ErrOddVariableCount
		}
		wiring, err := readWiringFrom(r, len(vars)/2)
		if err != nil {
			return nil, err
		}
		n.ApplyWiring(wiring)

		b.entries = append(b.entries, bookEntry{name: name, net: n})
	}
	return b, nil
}

func clampPrealloc(n uint64) int {
	if n > maxPreallocEntries {
		return maxPreallocEntries
	}
	return int(n)
}
