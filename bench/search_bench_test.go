package bench

import (
	"testing"

	"github.com/SH11235/shogi/engine"
	sg "github.com/SH11235/shogi/shogi"
)

func BenchmarkEvaluateStart(b *testing.B) {
	pos := sg.StartPosition()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if engine.Evaluate(pos) != engine.KingSafetyBonus {
			b.Fatal("unexpected evaluation of the start position")
		}
	}
}

func BenchmarkEvaluateMidgame(b *testing.B) {
	pos := midgamePosition()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Evaluate(pos)
	}
}

func benchSearchDepth(b *testing.B, depth int) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := &engine.Searcher{Limits: engine.Limits{Depth: depth}}
		if s.Search(sg.StartPosition()).BestMove.IsNull() {
			b.Fatal("search returned no move")
		}
	}
}

func BenchmarkSearchDepth2(b *testing.B) { benchSearchDepth(b, 2) }
func BenchmarkSearchDepth4(b *testing.B) { benchSearchDepth(b, 4) }
