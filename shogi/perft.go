package shogi

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Positions are cloned per branch, so the receiver is left untouched.
func Perft(pos *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := NewMoveGen(pos).GenerateAll()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		child := pos.Clone()
		child.ApplyMove(m)
		nodes += Perft(child, depth-1)
	}
	return nodes
}

// DivideEntry pairs a root move with its subtree leaf count.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// PerftDivide returns the per-root-move leaf counts, in generation order.
func PerftDivide(pos *Position, depth int) []DivideEntry {
	moves := NewMoveGen(pos).GenerateAll()
	entries := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		child := pos.Clone()
		child.ApplyMove(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: Perft(child, depth-1)})
	}
	return entries
}
