package engine

import (
	"time"

	sg "github.com/SH11235/shogi/shogi"
)

// MateResult reports a tsume search. Line holds the mating sequence starting
// with the attacker's move; it is empty when no mate was found.
type MateResult struct {
	Mate    bool
	Line    []sg.Move
	Nodes   uint64
	Elapsed time.Duration
}

// MateSearcher looks for a forced mate by the side to move. Only checking
// moves are tried for the attacker, and every defender reply must lose:
// classic and/or tsume search over the full legal move generator.
type MateSearcher struct {
	// MaxDepth is the deepest mating line length to try, in plies. Even
	// values are rounded down to the next odd depth; zero searches mate in
	// one only.
	MaxDepth int

	// Timeout bounds the wall clock. Zero means no limit.
	Timeout time.Duration

	nodes       uint64
	stopped     bool
	deadline    time.Time
	hasDeadline bool

	line    [MaxPly + 1][MaxPly + 1]sg.Move
	lineLen [MaxPly + 1]int
}

// Search deepens over odd depths 1, 3, 5, ... so that a short mate is always
// reported at its true length.
func (s *MateSearcher) Search(pos *sg.Position) MateResult {
	start := time.Now()
	s.nodes = 0
	s.stopped = false
	s.hasDeadline = s.Timeout > 0
	if s.hasDeadline {
		s.deadline = start.Add(s.Timeout)
	}

	maxDepth := Max(1, Min(s.MaxDepth, MaxPly))
	if maxDepth%2 == 0 {
		maxDepth--
	}

	result := MateResult{}
	for depth := 1; depth <= maxDepth; depth += 2 {
		found := s.attackNode(pos, depth, 0)
		if s.stopped {
			break
		}
		if found {
			result.Mate = true
			result.Line = append(result.Line, s.line[0][:s.lineLen[0]]...)
			break
		}
	}
	result.Nodes = s.nodes
	result.Elapsed = time.Since(start)
	return result
}

// attackNode tries every legal move that gives check. It succeeds when some
// check leaves the defender without a reply, or when every reply runs into a
// shorter mate.
func (s *MateSearcher) attackNode(pos *sg.Position, depth, ply int) bool {
	if s.timedOut() {
		return false
	}
	s.nodes++
	s.lineLen[ply] = 0

	moves := sg.NewMoveGen(pos).GenerateAll()
	for _, m := range moves {
		child := pos.Clone()
		child.ApplyMove(m)

		gen := sg.NewMoveGen(child)
		if !gen.InCheck() {
			continue
		}
		replies := gen.GenerateAll()
		if len(replies) == 0 {
			s.line[ply][0] = m
			s.lineLen[ply] = 1
			return true
		}
		if depth >= 3 && s.defendNode(child, replies, depth-1, ply+1) {
			s.line[ply][0] = m
			childLen := s.lineLen[ply+1]
			copy(s.line[ply][1:1+childLen], s.line[ply+1][:childLen])
			s.lineLen[ply] = childLen + 1
			return true
		}
		if s.stopped {
			return false
		}
	}
	return false
}

// defendNode succeeds only when every defender reply still gets mated. The
// reported line continues through the first reply.
func (s *MateSearcher) defendNode(pos *sg.Position, replies []sg.Move, depth, ply int) bool {
	var firstLine []sg.Move
	for i, m := range replies {
		child := pos.Clone()
		child.ApplyMove(m)
		if !s.attackNode(child, depth-1, ply+1) {
			return false
		}
		if i == 0 {
			firstLine = append(firstLine, m)
			firstLine = append(firstLine, s.line[ply+1][:s.lineLen[ply+1]]...)
		}
	}
	copy(s.line[ply][:], firstLine)
	s.lineLen[ply] = len(firstLine)
	return true
}

func (s *MateSearcher) timedOut() bool {
	if s.stopped {
		return true
	}
	if s.hasDeadline && s.nodes&255 == 0 && time.Now().After(s.deadline) {
		s.stopped = true
		return true
	}
	return false
}
