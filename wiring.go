package netcodec

import "math/bits"

// Pair is one matched pair of port occurrences, A < B.
type Pair struct{ A, B int }

// Wiring is a perfect matching on 2k labeled ports, stored as the k
// pairs sorted ascending by the smaller element — the canonical
// representation used on the wire and by equality comparisons.
type Wiring struct {
	Pairs []Pair
}

// ceilLog2 returns ceil(log2(n)) for n >= 1, with ceilLog2(1) == 0.
func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

func isCanonicalWiring(w Wiring) bool {
	for i := 1; i < len(w.Pairs); i++ {
		if w.Pairs[i-1].A > w.Pairs[i].A {
			return false
		}
	}
	return true
}

// writeWiringTo writes w's bits into an existing Writer, so a net can
// pack a root tree, redex trees, and wiring into one continuous stream
// with no padding except at the very end. Encoding is total for a
// well-formed matching; a caller-supplied Wiring that is not sorted
// ascending by A, or is not a perfect matching on [0, 2k), is a
// programmer error and panics rather than returning an error.
func writeWiringTo(w *Writer, wiring Wiring) {
	k := len(wiring.Pairs)
	if k == 0 {
		return
	}
	if !isCanonicalWiring(wiring) {
		panic("netcodec: wiring pairs not sorted ascending by A")
	}
	n := 2 * k
	filled := make([]bool, n)
	partner := make([]int, n)
	for _, p := range wiring.Pairs {
		if p.A < 0 || p.B < 0 || p.A >= n || p.B >= n || p.A >= p.B {
			panic("netcodec: wiring pair out of range or unordered")
		}
		partner[p.A] = p.B
		partner[p.B] = p.A
	}

	for i := 0; i < n; i++ {
		if filled[i] {
			continue
		}
		remaining := make([]int, 0, n-i)
		for j := i + 1; j < n; j++ {
			if !filled[j] {
				remaining = append(remaining, j)
			}
		}
		width := ceilLog2(len(remaining))
		p := partner[i]
		local := -1
		for idx, g := range remaining {
			if g == p {
				local = idx
				break
			}
		}
		if local < 0 {
			panic("netcodec: wiring is not a perfect matching")
		}
		w.WriteUint(uint64(local), width)
		filled[i] = true
		filled[p] = true
	}
}

// EncodeWiring serializes a standalone matching, byte-padding the tail.
func EncodeWiring(w Wiring, order Order) []byte {
	writer := NewWriter(order)
	writeWiringTo(writer, w)
	return writer.Bytes()
}

// readWiringFrom reads a matching on 2*k ports by consuming bits from
// an existing Reader. Unlike writeWiringTo, a malformed stream here is
// untrusted input, so failures return ErrWiringViolation/ErrTruncated
// instead of panicking.
func readWiringFrom(r *Reader, k int) (Wiring, error) {
	if k == 0 {
		return Wiring{}, nil
	}
	n := 2 * k
	filled := make([]bool, n)
	pairs := make([]Pair, 0, k)

	for step := 0; step < k; step++ {
		this := -1
		for i := 0; i < n; i++ {
			if !filled[i] {
				this = i
				break
			}
		}
		if this < 0 {
			return Wiring{}, ErrWiringViolation
		}
		filled[this] = true

		remaining := make([]int, 0, n)
		for j := 0; j < n; j++ {
			if !filled[j] {
				remaining = append(remaining, j)
			}
		}
		width := ceilLog2(len(remaining))
		local, err := r.ReadUint(width)
		if err != nil {
			return Wiring{}, err
		}
		if int(local) >= len(remaining) {
			return Wiring{}, ErrWiringViolation
		}
		other := remaining[local]
		filled[other] = true
		pairs = append(pairs, Pair{A: this, B: other})
	}
	return Wiring{Pairs: pairs}, nil
}

// DecodeWiring reads a standalone matching on 2*k ports from data. k
// must be supplied by the caller, since a matching's wire form carries
// no count of its own.
func DecodeWiring(data []byte, k int, order Order) (Wiring, error) {
	r := NewReader(data, order)
	return readWiringFrom(r, k)
}

// wiringBitCost computes the exact bit length EncodeWiring would
// produce for a matching on 2k ports, without running the encoder: the
// sum, over each of the k pairing decisions, of ceil(log2(remaining
// ports)). Rounding each decision up to whole bits puts this within one
// bit per pair of the information-theoretic minimum, log2((2k-1)!!),
// but not at it (k=6 costs 16 bits against a minimum of 14).
func wiringBitCost(k int) int {
	total := 0
	for j := 0; j < k; j++ {
		total += ceilLog2(2*k - 2*j - 1)
	}
	return total
}

// WiringBitCost is the exported form of wiringBitCost, used by the CLI
// to report how many bits a net's wiring occupies in the stream.
func WiringBitCost(k int) int { return wiringBitCost(k) }
