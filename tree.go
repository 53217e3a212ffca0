package netcodec

import "fmt"

// NodeShape is the host-independent view of one tree node: its tag and
// whatever payload that tag carries on the wire. Arity only matters
// for TagCtr — every other tag's child count is implied by its tag.
//
// Host trees participate by supplying closures rather than implementing
// an interface: shapeOf and childrenOf to EncodeTree, build to
// DecodeTree. Go generics let the codec stay parameterized over the
// host's own AST type without requiring it to satisfy anything.
type NodeShape struct {
	Tag      Tag
	Ref      string // REF, RefString mode
	RefID    uint64 // REF, RefID mode
	NumValue uint64
	NumFloat bool
	OprCode  uint8
	Label    uint64 // TagCtr only
	Arity    int    // TagCtr only; ignored for every other tag
}

// RefMode selects how TagRef payloads are encoded: as a length-prefixed
// string, or as a fixed-width integer id. Different hosts name book
// definitions differently, so this is a runtime choice rather than a
// fixed wire format.
type RefMode struct {
	stringMode bool
	idWidth    int
}

// RefString encodes REF payloads as an Elias-gamma length followed by
// that many UTF-8 bytes.
var RefString = RefMode{stringMode: true}

// RefIDMode encodes REF payloads as a fixed-width unsigned integer.
// width must be in [1, 60]; 28 bits is the conventional default for a
// book with under 2^28 definitions.
func RefIDMode(width int) RefMode {
	if width < 1 || width > 60 {
		panic("netcodec: RefID width out of range")
	}
	return RefMode{stringMode: false, idWidth: width}
}

const defaultRefIDWidth = 28

// DefaultRefIDMode is RefIDMode(28).
var DefaultRefIDMode = RefIDMode(defaultRefIDWidth)

// oprCodeBits is the width of an OPR node's operator sub-code,
// including its OP1/OP2 flag bit.
const oprCodeBits = 5

func writeString(w *Writer, s string) {
	writeVarLen(w, VarLenNumber(len(s)))
	for i := 0; i < len(s); i++ {
		w.WriteUint(uint64(s[i]), 8)
	}
}

func readString(r *Reader) (string, error) {
	n, err := readVarLen(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	for i := range buf {
		v, err := r.ReadUint(8)
		if err != nil {
			return "", err
		}
		buf[i] = byte(v)
	}
	return string(buf), nil
}

func writeShapePayload(w *Writer, s NodeShape, refMode RefMode) {
	switch s.Tag {
	case TagRef:
		if refMode.stringMode {
			writeString(w, s.Ref)
		} else {
			w.WriteUint(s.RefID, refMode.idWidth)
		}
	case TagNum:
		w.WriteBit(s.NumFloat)
		writeVarLen(w, VarLenNumber(s.NumValue))
	case TagOpr:
		w.WriteUint(uint64(s.OprCode), oprCodeBits)
	case TagCtr:
		writeVarLen(w, VarLenNumber(s.Arity))
		writeVarLen(w, VarLenNumber(s.Label))
	}
}

// readShapePayload reads tag's payload (if any) and reports how many
// children follow it in the stream.
func readShapePayload(r *Reader, tag Tag, refMode RefMode) (NodeShape, int, error) {
	s := NodeShape{Tag: tag}
	switch tag {
	case TagEra, TagVar:
		return s, 0, nil
	case TagRef:
		if refMode.stringMode {
			str, err := readString(r)
			if err != nil {
				return s, 0, err
			}
			s.Ref = str
		} else {
			v, err := r.ReadUint(refMode.idWidth)
			if err != nil {
				return s, 0, err
			}
			s.RefID = v
		}
		return s, 0, nil
	case TagNum:
		fb, err := r.ReadBit()
		if err != nil {
			return s, 0, err
		}
		s.NumFloat = fb
		v, err := readVarLen(r)
		if err != nil {
			return s, 0, err
		}
		s.NumValue = uint64(v)
		return s, 0, nil
	case TagOpr:
		v, err := r.ReadUint(oprCodeBits)
		if err != nil {
			return s, 0, err
		}
		s.OprCode = uint8(v)
		return s, 2, nil
	case TagMat:
		return s, 2, nil
	case TagCtr:
		a, err := readVarLen(r)
		if err != nil {
			return s, 0, err
		}
		l, err := readVarLen(r)
		if err != nil {
			return s, 0, err
		}
		s.Arity = int(a)
		s.Label = uint64(l)
		return s, int(a), nil
	default:
		return s, 0, ErrUnknownTag
	}
}

// writeTreeTo serializes a host tree in pre-order into an existing
// Writer, using an explicit stack so depth is bounded only by heap
// size rather than goroutine stack size; encoding mirrors decoding's
// shape for symmetry. Writing into a shared Writer, rather than
// returning a byte-padded fragment, is what lets a net pack its root
// tree, its redex trees, and its wiring into one continuous bitstream
// with no padding except at the very end.
func writeTreeTo[T any](w *Writer, root T, shapeOf func(T) NodeShape, childrenOf func(T) []T, refMode RefMode) {
	stack := []T{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		shape := shapeOf(node)
		writeTag(w, shape.Tag)
		writeShapePayload(w, shape, refMode)
		children := childrenOf(node)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// EncodeTree serializes a host tree on its own, byte-padding the tail.
// shapeOf/childrenOf let any host tree type participate without
// implementing a netcodec-specific interface.
func EncodeTree[T any](root T, shapeOf func(T) NodeShape, childrenOf func(T) []T, order Order, refMode RefMode) []byte {
	w := NewWriter(order)
	writeTreeTo(w, root, shapeOf, childrenOf, refMode)
	return w.Bytes()
}

// pendingNode is one incomplete ancestor on DecodeTree's explicit stack:
// a node whose shape is known but whose children are still arriving.
type pendingNode[T any] struct {
	shape    NodeShape
	children []T
	filled   int
}

// attachDecoded places a freshly completed value into its parent's
// child slot, completing and re-attaching ancestors all the way up the
// stack as each one fills, and returns (result, true) once the root
// itself completes.
func attachDecoded[T any](stack *[]*pendingNode[T], build func(NodeShape, []T) T, val T) (T, bool) {
	for {
		if len(*stack) == 0 {
			return val, true
		}
		top := (*stack)[len(*stack)-1]
		top.children[top.filled] = val
		top.filled++
		if top.filled < len(top.children) {
			var zero T
			return zero, false
		}
		*stack = (*stack)[:len(*stack)-1]
		val = build(top.shape, top.children)
	}
}

// readTreeFrom reconstructs a host tree by consuming bits from an
// existing Reader. build receives each node's shape together with its
// already-decoded children, in the order readShapePayload reported
// them, and returns the host's own node value — netcodec never
// allocates a host node itself.
func readTreeFrom[T any](r *Reader, build func(NodeShape, []T) T, refMode RefMode) (T, error) {
	var zero T
	var stack []*pendingNode[T]
	for {
		tag, err := readTag(r)
		if err != nil {
			return zero, err
		}
		shape, arity, err := readShapePayload(r, tag, refMode)
		if err != nil {
			return zero, err
		}
		if arity == 0 {
			val, done := attachDecoded(&stack, build, build(shape, nil))
			if done {
				return val, nil
			}
			continue
		}
		stack = append(stack, &pendingNode[T]{shape: shape, children: make([]T, arity)})
	}
}

// DecodeTree reconstructs a single, standalone tree from data.
func DecodeTree[T any](data []byte, build func(NodeShape, []T) T, order Order, refMode RefMode) (T, error) {
	r := NewReader(data, order)
	return readTreeFrom(r, build, refMode)
}

// Tree is netcodec's own concrete host AST: a binary-and-n-ary mix
// covering ERA/REF/VAR/NUM/OPR/MAT/CTR nodes. Any other host tree can
// use EncodeTree/DecodeTree directly with its own shape/children
// closures; Tree exists so this package is independently testable and
// so the CLI has a concrete type to round-trip.
type Tree struct {
	Tag      Tag
	Var      string
	Ref      string
	RefID    uint64
	NumValue uint64
	NumFloat bool
	OprCode  uint8
	Label    uint64
	Children []*Tree
}

func treeShape(t *Tree) NodeShape {
	return NodeShape{
		Tag: t.Tag, Ref: t.Ref, RefID: t.RefID,
		NumValue: t.NumValue, NumFloat: t.NumFloat,
		OprCode: t.OprCode, Label: t.Label, Arity: len(t.Children),
	}
}

func treeChildren(t *Tree) []*Tree { return t.Children }

func buildTree(s NodeShape, children []*Tree) *Tree {
	t := &Tree{
		Tag: s.Tag, Ref: s.Ref, RefID: s.RefID,
		NumValue: s.NumValue, NumFloat: s.NumFloat,
		OprCode: s.OprCode, Label: s.Label, Children: children,
	}
	if s.Tag == TagVar {
		t.Var = "?" // sentinel, overwritten by Net.ApplyWiring / normalization
	}
	return t
}

// EncodeTreeOnly serializes a single tree with no variable identity
// resolution: VAR nodes carry no wire payload at all.
func EncodeTreeOnly(t *Tree, order Order, refMode RefMode) []byte {
	return EncodeTree(t, treeShape, treeChildren, order, refMode)
}

// DecodeTreeOnly reconstructs a single tree. Every VAR node in the
// result carries the same sentinel name; callers working with a Net
// resolve variable identity separately via wiring.
func DecodeTreeOnly(data []byte, order Order, refMode RefMode) (*Tree, error) {
	return DecodeTree(data, buildTree, order, refMode)
}

// gatherVars returns pointers to every VAR node's Var field, in
// pre-order. Its length is the tree's variable-occurrence count.
func gatherVars(t *Tree, out []*string) []*string {
	stack := []*Tree{t}
	// Pre-order with an explicit stack, pushing children in reverse so
	// they pop left-to-right, matching EncodeTree/DecodeTree's order.
	var order []*Tree
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	for _, n := range order {
		if n.Tag == TagVar {
			out = append(out, &n.Var)
		}
	}
	return out
}

func (t *Tree) String() string {
	switch t.Tag {
	case TagEra:
		return "*"
	case TagVar:
		return t.Var
	case TagRef:
		if t.Ref != "" {
			return "@" + t.Ref
		}
		return fmt.Sprintf("@%d", t.RefID)
	case TagNum:
		if t.NumFloat {
			return fmt.Sprintf("#%d.0", t.NumValue)
		}
		return fmt.Sprintf("#%d", t.NumValue)
	case TagOpr:
		return fmt.Sprintf("$(%d %s %s)", t.OprCode, t.Children[0], t.Children[1])
	case TagMat:
		return fmt.Sprintf("?(%s %s)", t.Children[0], t.Children[1])
	default:
		parts := make([]string, len(t.Children))
		for i, c := range t.Children {
			parts[i] = c.String()
		}
		return fmt.Sprintf("CTR[%d](%v)", t.Label, parts)
	}
}
