package netcodec

import "sort"

// Redex is a pair of trees marked as an active interaction site.
type Redex struct {
	A, B *Tree
}

// Net is a root tree plus an ordered sequence of redexes. It is
// well-formed iff every variable name occurring anywhere in it occurs
// exactly twice.
type Net struct {
	Root    *Tree
	Redexes []Redex
}

// trees returns every top-level tree in traversal order: root first,
// then each redex's two trees, matching the order EncodeNet writes
// them and the order variable occurrences are numbered in.
func (n *Net) trees() []*Tree {
	out := make([]*Tree, 0, 1+2*len(n.Redexes))
	out = append(out, n.Root)
	for _, rx := range n.Redexes {
		out = append(out, rx.A, rx.B)
	}
	return out
}

// allVars returns pointers to every VAR node's name, across the whole
// net, in pre-order (root, then each redex pair in order).
func (n *Net) allVars() []*string {
	var out []*string
	for _, t := range n.trees() {
		out = gatherVars(t, out)
	}
	return out
}

// CurrentWiring computes the matching induced by the net's variable
// names: group occurrences by name, require exactly two per name, and
// pair their indices.
func (n *Net) CurrentWiring() (Wiring, error) {
	vars := n.allVars()
	groups := make(map[string][]int, len(vars)/2)
	for i, vp := range vars {
		groups[*vp] = append(groups[*vp], i)
	}
	pairs := make([]Pair, 0, len(vars)/2)
	for _, idxs := range groups {
		if len(idxs) != 2 {
			return Wiring{}, ErrMalformedVariables
		}
		a, b := idxs[0], idxs[1]
		if a > b {
			a, b = b, a
		}
		pairs = append(pairs, Pair{A: a, B: b})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].A < pairs[j].A })
	return Wiring{Pairs: pairs}, nil
}

// ApplyWiring renames every VAR occurrence to its pair position,
// written as a decimal string.
func (n *Net) ApplyWiring(w Wiring) {
	vars := n.allVars()
	for i, p := range w.Pairs {
		name := itoa(i)
		*vars[p.A] = name
		*vars[p.B] = name
	}
}

// itoa avoids importing strconv solely for base-10 non-negative ints;
// decimal names are the only string form normalization ever produces.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}

// cloneTree deep-copies a tree so Normalize never mutates its input.
func cloneTree(t *Tree) *Tree {
	c := *t
	if t.Children != nil {
		c.Children = make([]*Tree, len(t.Children))
		for i, ch := range t.Children {
			c.Children[i] = cloneTree(ch)
		}
	}
	return &c
}

// Normalize returns a new Net with every variable renamed to its pair
// position in pre-order; the receiver is left untouched. Normalization
// is idempotent and maps every net that differs only by a consistent
// renaming of variable names to the same representative, which is what
// makes Equal a structural comparison.
func (n *Net) Normalize() (*Net, error) {
	clone := &Net{Root: cloneTree(n.Root), Redexes: make([]Redex, len(n.Redexes))}
	for i, rx := range n.Redexes {
		clone.Redexes[i] = Redex{A: cloneTree(rx.A), B: cloneTree(rx.B)}
	}
	wiring, err := clone.CurrentWiring()
	if err != nil {
		return nil, err
	}
	clone.ApplyWiring(wiring)
	return clone, nil
}

func treeEqual(a, b *Tree) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagVar:
		if a.Var != b.Var {
			return false
		}
	case TagRef:
		if a.Ref != b.Ref || a.RefID != b.RefID {
			return false
		}
	case TagNum:
		if a.NumValue != b.NumValue || a.NumFloat != b.NumFloat {
			return false
		}
	case TagOpr:
		if a.OprCode != b.OprCode {
			return false
		}
	case TagCtr:
		if a.Label != b.Label {
			return false
		}
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !treeEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two nets are identical after normalization —
// i.e. whether they differ only by a consistent renaming of variable
// names.
func (n *Net) Equal(other *Net) bool {
	na, err := n.Normalize()
	if err != nil {
		return false
	}
	nb, err := other.Normalize()
	if err != nil {
		return false
	}
	if len(na.Redexes) != len(nb.Redexes) {
		return false
	}
	if !treeEqual(na.Root, nb.Root) {
		return false
	}
	for i := range na.Redexes {
		if !treeEqual(na.Redexes[i].A, nb.Redexes[i].A) || !treeEqual(na.Redexes[i].B, nb.Redexes[i].B) {
			return false
		}
	}
	return true
}

// EncodeNet serializes a net as one continuous bitstream: root tree,
// redex count, redex tree pairs, then the wiring induced by the live
// variable names. Fails only if the net is not well-formed (some
// variable name occurs other than exactly twice); a well-formed net
// always encodes.
func EncodeNet(n *Net, order Order, refMode RefMode) ([]byte, error) {
	wiring, err := n.CurrentWiring()
	if err != nil {
		return nil, err
	}
	w := NewWriter(order)
	writeTreeTo(w, n.Root, treeShape, treeChildren, refMode)
	writeVarLen(w, VarLenNumber(len(n.Redexes)))
	for _, rx := range n.Redexes {
		writeTreeTo(w, rx.A, treeShape, treeChildren, refMode)
		writeTreeTo(w, rx.B, treeShape, treeChildren, refMode)
	}
	writeWiringTo(w, wiring)
	return w.Bytes(), nil
}

// DecodeNet reconstructs a net from bytes produced by EncodeNet: read
// the root tree and redex trees, count the resulting VAR occurrences
// (failing with ErrOddVariableCount if that count is odd), read a
// wiring sized to match, and apply it.
func DecodeNet(data []byte, order Order, refMode RefMode) (*Net, error) {
	r := NewReader(data, order)
	root, err := readTreeFrom(r, buildTree, refMode)
	if err != nil {
		return nil, err
	}
	redexCount, err := readVarLen(r)
	if err != nil {
		return nil, err
	}
	redexes := make([]Redex, 0, clampPrealloc(uint64(redexCount)))
	for i := uint64(0); i < uint64(redexCount); i++ {
		a, err := readTreeFrom(r, buildTree, refMode)
		if err != nil {
			return nil, err
		}
		b, err := readTreeFrom(r, buildTree, refMode)
		if err != nil {
			return nil, err
		}
		redexes = append(redexes, Redex{A: a, B: b})
	}

	net := &Net{Root: root, Redexes: redexes}
	vars := net.allVars()
	if len(vars)%2 != 0 {
		return nil, ErrOddVariableCount
	}
	wiring, err := readWiringFrom(r, len(vars)/2)
	if err != nil {
		return nil, err
	}
	net.ApplyWiring(wiring)
	return net, nil
}
