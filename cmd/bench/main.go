package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/SH11235/shogi/engine"
	sg "github.com/SH11235/shogi/shogi"
)

func main() {
	depth := flag.Int("depth", 6, "search depth in plies")
	moveTime := flag.Duration("movetime", 0, "wall clock budget per search (0 = none)")
	repeat := flag.Int("repeat", 1, "number of searches to run")
	quiet := flag.Bool("quiet", false, "suppress per-depth info lines")
	cpuProf := flag.String("cpuprofile", "", "write CPU profile to file")
	memProf := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depth <= 0 {
		log.Fatalf("depth must be positive, got %d", *depth)
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	s := &engine.Searcher{
		Limits: engine.Limits{Depth: *depth, MoveTime: *moveTime},
	}
	if !*quiet {
		s.Trace = os.Stdout
	}

	var totalNodes uint64
	var totalTime time.Duration
	for i := 0; i < *repeat; i++ {
		result := s.Search(sg.StartPosition())
		totalNodes += result.Nodes
		totalTime += result.Elapsed
		fmt.Printf("bestmove %s score %d depth %d nodes %d time %v\n",
			result.BestMove, result.Score, result.Depth, result.Nodes, result.Elapsed)
	}

	nps := float64(totalNodes) / totalTime.Seconds()
	fmt.Printf("total %d nodes in %v (%.0f nps)\n", totalNodes, totalTime, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Fatalf("could not create heap profile: %v", err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write heap profile: %v", err)
		}
		f.Close()
	}
}
