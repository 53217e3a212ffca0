package netcodec

import (
	"testing"

	"pgregory.net/rapid"
)

func drawBool(t *rapid.T, label string) bool {
	return rapid.IntRange(0, 1).Draw(t, label).(int) == 1
}

// genTree builds a random well-formed tree, collecting every VAR leaf
// it creates into vars so the caller can pair them up afterward into a
// well-formed net (every generated VAR must occur exactly twice).
func genTree(t *rapid.T, depth int, vars *[]*Tree) *Tree {
	if depth <= 0 || drawBool(t, "leaf") {
		switch rapid.IntRange(0, 2).Draw(t, "leafKind").(int) {
		case 0:
			return &Tree{Tag: TagEra}
		case 1:
			v := &Tree{Tag: TagVar}
			*vars = append(*vars, v)
			return v
		default:
			return &Tree{Tag: TagNum, NumValue: uint64(rapid.IntRange(0, 1000).Draw(t, "numValue").(int))}
		}
	}
	arity := rapid.IntRange(1, 3).Draw(t, "arity").(int)
	children := make([]*Tree, arity)
	for i := range children {
		children[i] = genTree(t, depth-1, vars)
	}
	return &Tree{Tag: TagCtr, Label: uint64(rapid.IntRange(0, 7).Draw(t, "label").(int)), Children: children}
}

// genNet builds a random well-formed net: a root tree plus some
// redexes, with every VAR leaf paired up two-by-two so CurrentWiring
// always succeeds.
func genNet(t *rapid.T) *Net {
	var vars []*Tree
	root := genTree(t, 4, &vars)

	redexCount := rapid.IntRange(0, 3).Draw(t, "redexCount").(int)
	redexes := make([]Redex, redexCount)
	for i := range redexes {
		redexes[i] = Redex{A: genTree(t, 2, &vars), B: genTree(t, 2, &vars)}
	}

	if len(vars)%2 != 0 {
		// Drop the odd one out by turning it into an erasure node.
		*vars[len(vars)-1] = Tree{Tag: TagEra}
		vars = vars[:len(vars)-1]
	}
	for i := 0; i+1 < len(vars); i += 2 {
		name := itoa(i / 2)
		vars[i].Var = name
		vars[i+1].Var = name
	}

	return &Net{Root: root, Redexes: redexes}
}

func TestPropertyNetRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		net := genNet(rt)
		order := LittleEndian
		if drawBool(rt, "bigEndian") {
			order = BigEndian
		}
		data, err := EncodeNet(net, order, RefString)
		if err != nil {
			rt.Fatalf("encode failed on well-formed net: %v", err)
		}
		decoded, err := DecodeNet(data, order, RefString)
		if err != nil {
			rt.Fatalf("decode failed: %v", err)
		}
		if !net.Equal(decoded) {
			rt.Fatalf("round trip changed net structure")
		}
	})
}

func TestPropertyNormalizeIsIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		net := genNet(rt)
		once, err := net.Normalize()
		if err != nil {
			rt.Fatalf("normalize failed: %v", err)
		}
		twice, err := once.Normalize()
		if err != nil {
			rt.Fatalf("re-normalize failed: %v", err)
		}
		if !once.Equal(twice) {
			rt.Fatalf("normalization is not idempotent")
		}
	})
}

func TestPropertyVarLenRoundTripAndExactWidth(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := uint64(rapid.IntRange(0, 1<<30).Draw(rt, "n").(int))
		w := NewWriter(LittleEndian)
		writeVarLen(w, VarLenNumber(n))
		if w.Len() != varLenWidth(n) {
			rt.Fatalf("width mismatch for n=%d: wrote %d bits, expected %d", n, w.Len(), varLenWidth(n))
		}
		r := NewReader(w.Bytes(), LittleEndian)
		got, err := readVarLen(r)
		if err != nil {
			rt.Fatalf("decode failed: %v", err)
		}
		if uint64(got) != n {
			rt.Fatalf("round trip mismatch: wrote %d, read %d", n, got)
		}
	})
}

// genMatching builds a uniformly shuffled perfect matching on 2*k ports
// using only rapid.IntRange draws, via a Fisher-Yates shuffle driven by
// the generator instead of math/rand.
func genMatching(t *rapid.T, k int) []Pair {
	n := 2 * k
	ports := make([]int, n)
	for i := range ports {
		ports[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rapid.IntRange(0, i).Draw(t, "shuffle").(int)
		ports[i], ports[j] = ports[j], ports[i]
	}
	pairs := make([]Pair, 0, k)
	for i := 0; i < n; i += 2 {
		a, b := ports[i], ports[i+1]
		if a > b {
			a, b = b, a
		}
		pairs = append(pairs, Pair{A: a, B: b})
	}
	sortPairsByA(pairs)
	return pairs
}

func TestPropertyWiringRoundTripAndSizeBound(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := rapid.IntRange(0, 12).Draw(rt, "k").(int)
		pairs := genMatching(rt, k)

		w := Wiring{Pairs: pairs}
		writer := NewWriter(LittleEndian)
		writeWiringTo(writer, w)
		if writer.Len() != wiringBitCost(k) {
			rt.Fatalf("bit cost mismatch for k=%d: got %d want %d", k, writer.Len(), wiringBitCost(k))
		}
		decoded, err := DecodeWiring(writer.Bytes(), k, LittleEndian)
		if err != nil {
			rt.Fatalf("decode failed: %v", err)
		}
		if len(decoded.Pairs) != len(w.Pairs) {
			rt.Fatalf("pair count mismatch")
		}
		for i := range w.Pairs {
			if decoded.Pairs[i] != w.Pairs[i] {
				rt.Fatalf("pair %d mismatch: got %v want %v", i, decoded.Pairs[i], w.Pairs[i])
			}
		}
	})
}

func sortPairsByA(pairs []Pair) {
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairs[j-1].A > pairs[j].A; j-- {
			pairs[j-1], pairs[j] = pairs[j], pairs[j-1]
		}
	}
}
