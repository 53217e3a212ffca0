// Package netcodec implements a bit-level binary codec for HVM-family
// interaction nets.
//
// # Overview
//
// A net is a root tree plus an ordered list of active-pair redexes,
// drawn from a small fixed set of node shapes (erasure, book
// reference, shared variable, numeric literal, operator, pattern
// match, and n-ary constructor). netcodec packs a net into a compact
// bitstream: nodes are tagged with a 3-bit discriminant, scalars use
// shifted Elias-gamma coding so small values cost few bits, and the
// variable-sharing structure is packed separately as a bit-optimal
// perfect matching rather than as repeated names.
//
// # When to Use netcodec
//
// netcodec is for:
//   - Serializing interaction nets for storage or transmission between
//     an HVM-family runtime and its tooling
//   - Any tree-shaped host AST that can supply a NodeShape view of its
//     own nodes, via EncodeTree/DecodeTree's host-adapter closures
//   - Books: sorted collections of named net definitions, the unit a
//     whole program compiles to
//
// # When NOT to Use netcodec
//
// netcodec is not suitable for:
//   - General-purpose tree serialization unrelated to interaction
//     nets (use encoding/gob or a schema-based codec instead)
//   - Data that needs random access without a full decode; the
//     bitstream is read sequentially front to back
//
// # Basic Usage
//
//	root := &netcodec.Tree{Tag: netcodec.TagVar, Var: "x"}
//	other := &netcodec.Tree{Tag: netcodec.TagEra}
//	net := &netcodec.Net{Root: root, Redexes: []netcodec.Redex{{A: root, B: other}}}
//
//	data, err := netcodec.EncodeNet(net, netcodec.LittleEndian, netcodec.RefString)
//	if err != nil {
//	    // net is not well-formed: some variable occurs other than twice
//	}
//
//	decoded, err := netcodec.DecodeNet(data, netcodec.LittleEndian, netcodec.RefString)
//
// # Performance Characteristics
//
// Tree encoding and decoding are linear in the number of nodes; both
// use an explicit stack rather than recursion so depth is bounded only
// by available memory, not goroutine stack size. The wiring codec
// rescans the unmatched ports for every pair, so its time is quadratic
// in the number of variable occurrences. Its bit cost is the sum of
// ceil(log2(remaining)) over the k pairing decisions, within one bit
// per pair of the information-theoretic minimum for a matching on 2k
// labeled ports.
package netcodec
