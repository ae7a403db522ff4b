package engine

import (
	"fmt"
	"io"
	"strings"
	"time"

	sg "github.com/SH11235/shogi/shogi"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// MateScore bounds the search window. Mates found at ply p score
	// MateScore-p, so shallower mates always win the comparison.
	MateScore int32 = 30000
	DrawScore int32 = 0

	// MaxPly caps the search stack and the principal variation buffers.
	MaxPly = 64
)

// Limits bounds a search. Zero values mean unlimited; a search with no limit
// at all runs the full MaxPly iterative deepening.
type Limits struct {
	Depth    int
	MoveTime time.Duration
	Nodes    uint64
}

// Result is the outcome of the deepest fully completed iteration.
type Result struct {
	BestMove sg.Move
	Score    int32
	Depth    int
	Nodes    uint64
	Elapsed  time.Duration
	PV       []sg.Move
}

// Searcher runs iterative-deepening negamax with alpha-beta pruning. Child
// positions are cloned per branch, so the caller's position is never mutated.
// A Searcher is single-use state: reuse is fine, concurrency is not.
type Searcher struct {
	Limits Limits

	// Trace, when set, receives one info line per completed iteration.
	Trace io.Writer

	nodes       uint64
	stopped     bool
	deadline    time.Time
	hasDeadline bool

	pv    [MaxPly + 1][MaxPly + 1]sg.Move
	pvLen [MaxPly + 1]int
}

// Search drives iterative deepening from depth 1 and keeps the result of the
// last iteration that ran to completion. An aborted iteration never
// overwrites it.
func (s *Searcher) Search(pos *sg.Position) Result {
	start := time.Now()
	s.nodes = 0
	s.stopped = false
	s.hasDeadline = s.Limits.MoveTime > 0
	if s.hasDeadline {
		s.deadline = start.Add(s.Limits.MoveTime)
	}

	maxDepth := s.Limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	result := Result{BestMove: sg.NullMove}
	for depth := 1; depth <= maxDepth; depth++ {
		score := s.negamax(pos, depth, 0, -MateScore, MateScore)
		if s.stopped {
			break
		}

		if s.pvLen[0] > 0 {
			result.BestMove = s.pv[0][0]
		} else {
			// No legal move at the root: mated or stalemated.
			result.BestMove = sg.NullMove
		}
		result.Score = score
		result.Depth = depth
		result.PV = append(result.PV[:0], s.pv[0][:s.pvLen[0]]...)
		result.Nodes = s.nodes
		result.Elapsed = time.Since(start)

		if s.Trace != nil {
			s.traceIteration(result)
		}
		// A forced mate cannot improve at greater depth.
		if _, mate := MateIn(score); mate {
			break
		}
	}
	result.Nodes = s.nodes
	result.Elapsed = time.Since(start)
	return result
}

func (s *Searcher) negamax(pos *sg.Position, depth, ply int, alpha, beta int32) int32 {
	if s.shouldStop() {
		return 0
	}
	s.nodes++
	s.pvLen[ply] = 0

	if ply > 0 && pos.IsRepetition() {
		return DrawScore
	}
	if depth <= 0 || ply >= MaxPly {
		return Evaluate(pos)
	}

	gen := sg.NewMoveGen(pos)
	moves := gen.GenerateAll()
	if len(moves) == 0 {
		if gen.InCheck() {
			return -MateScore + int32(ply)
		}
		return DrawScore
	}
	orderMoves(pos, moves)

	for _, m := range moves {
		child := pos.Clone()
		child.ApplyMove(m)
		score := -s.negamax(child, depth-1, ply+1, -beta, -alpha)
		if s.stopped {
			return 0
		}
		if score > alpha {
			alpha = score
			s.savePV(ply, m)
			if alpha >= beta {
				break
			}
		}
	}
	return alpha
}

// savePV prepends m to the child's principal variation.
func (s *Searcher) savePV(ply int, m sg.Move) {
	s.pv[ply][0] = m
	childLen := s.pvLen[ply+1]
	copy(s.pv[ply][1:1+childLen], s.pv[ply+1][:childLen])
	s.pvLen[ply] = childLen + 1
}

// shouldStop latches once any limit trips; the unwinding iteration is then
// discarded by the caller. The node ceiling is exact, but the clock is only
// sampled every 1024 nodes to keep time.Now off the hot path, so a move time
// limit can overrun by up to that many nodes.
func (s *Searcher) shouldStop() bool {
	if s.stopped {
		return true
	}
	if s.Limits.Nodes > 0 && s.nodes >= s.Limits.Nodes {
		s.stopped = true
		return true
	}
	if s.hasDeadline && s.nodes&1023 == 0 && time.Now().After(s.deadline) {
		s.stopped = true
		return true
	}
	return false
}

// MateIn converts a score into moves-to-mate. The boolean is false for
// ordinary material scores. Negative plies mean the side to move is mated.
func MateIn(score int32) (int, bool) {
	if abs32(score) < MateScore-MaxPly {
		return 0, false
	}
	plies := int(MateScore - abs32(score))
	if score < 0 {
		plies = -plies
	}
	return plies, true
}

func (s *Searcher) traceIteration(r Result) {
	line := make([]string, len(r.PV))
	for i, m := range r.PV {
		line[i] = m.String()
	}
	if plies, mate := MateIn(r.Score); mate {
		fmt.Fprintf(s.Trace, "info depth %d score mate %d nodes %d time %d pv %s\n",
			r.Depth, plies, r.Nodes, r.Elapsed.Milliseconds(), strings.Join(line, " "))
		return
	}
	fmt.Fprintf(s.Trace, "info depth %d score cp %d nodes %d time %d pv %s\n",
		r.Depth, r.Score, r.Nodes, r.Elapsed.Milliseconds(), strings.Join(line, " "))
}
