// riddle.go
//
// Copyright (C) 2025 Vilhjálmur Þorsteinsson / Miðeind ehf.
//
// This file implements the riddle generation logic.

package skrafl

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// GenerationParams holds the parameters for riddle generation.
type GenerationParams struct {
	Variant       *Variant
	Dict          *Dictionary
	TimeLimit     time.Duration
	NumWorkers    int
	NumCandidates int // Number of candidates to generate
}

// HeuristicConfig defines the parameters for what constitutes a "good" riddle.
type HeuristicConfig struct {
	MinTiles       int     // Minimum number of tiles on the board
	MaxTiles       int     // Maximum number of tiles on the board
	MinMoves       int     // Minimum number of valid tile moves available
	MinBestScore   int     // Minimum score for the best move
	MinWordLength  int     // Minimum length of the solution word
	BingoBonus     float64 // Bonus for bingo moves (all tiles used)
	ScoreGapBonus  float64 // Bonus factor for the gap between the best and second-best move scores
	NumCoversBonus float64 // Bonus factor for the number of tiles in the move
	SolutionFilter *Dictionary // Optional: a dictionary to filter solution words against
}

// DefaultHeuristics provides a baseline configuration.
var DefaultHeuristics = HeuristicConfig{
	MinTiles:       50,
	MaxTiles:       70,
	MinMoves:       16,
	MinBestScore:   30,
	MinWordLength:  3,
	BingoBonus:     15.0,
	ScoreGapBonus:  1.2,
	NumCoversBonus: 2.0,
	SolutionFilter: nil,
}

// Solution holds the answer to the riddle.
type Solution struct {
	Move        string `json:"move"`
	Coord       string `json:"coord"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// Analysis provides metrics about the riddle's move possibilities.
type Analysis struct {
	TotalMoves          int     `json:"totalMoves"`
	BestMoveScore       int     `json:"bestMoveScore"`
	SecondBestMoveScore int     `json:"secondBestMoveScore"`
	AverageScore        float64 `json:"averageScore"`
	IsBingo             bool    `json:"isBingo"`
}

// Riddle is the final structure returned by the API.
type Riddle struct {
	Board    []string `json:"board"`
	Rack     string   `json:"rack"`
	Solution Solution `json:"solution"`
	Analysis Analysis `json:"analysis"`
}

// RiddleCandidate holds a potential riddle and its evaluated metrics.
type RiddleCandidate struct {
	Riddle *Riddle
	Score  float64
}

type Stats struct {
	Candidates int64 // Number of candidates generated
	// The following are rejection statistics
	NoValidMove      int // No valid move available
	GameEnded        int // Game already ended, no riddle possible
	ContextCancelled int // Context was cancelled before a riddle could be generated
	TooFewMoves      int // Unacceptable number of tile moves available
	TooLowBestScore  int // Best move score too low
	TooShortWord     int // Best move word too short
	WordNotCommon    int // Solution word not in the common words dictionary
}

// generateCandidate creates a single riddle candidate by playing two
// HighScoreRobots against each other until the board carries a random
// number of tiles within the heuristic's range, then evaluating the
// resulting position.
func generateCandidate(
	ctx context.Context,
	params GenerationParams,
	heuristics HeuristicConfig,
	stats *Stats,
) (*RiddleCandidate, error) {
	p1 := NewHighScoreRobot()
	p2 := NewHighScoreRobot()

	game := NewGame(params.Variant, params.Dict, rand.New(rand.NewSource(rand.Int63())),
		[]string{"P1", "P2"}, []PlayerKind{ComputerPlayer, ComputerPlayer})

	minTiles := heuristics.MinTiles + rand.Intn(heuristics.MaxTiles-heuristics.MinTiles+1)
	moveIndex := 0
	for game.Board.NumTiles() < minTiles {
		moves := game.LegalMoves()
		var robot Robot = p1
		if moveIndex%2 != 0 {
			robot = p2
		}
		if len(moves) == 0 {
			stats.NoValidMove++
			return nil, nil
		}
		TakeTurn(game, robot)
		moveIndex++

		if game.IsOver {
			stats.GameEnded++
			return nil, nil
		}

		select {
		case <-ctx.Done():
			stats.ContextCancelled++
			return nil, ctx.Err()
		default:
		}
	}

	rack := game.CurrentPlayerObj().Rack.String()
	moves := game.LegalMoves() // already sorted descending by score

	numMoves := len(moves)
	if numMoves < heuristics.MinMoves {
		stats.TooFewMoves++
		return nil, nil
	}

	best := moves[0]
	if best.Score < heuristics.MinBestScore {
		stats.TooLowBestScore++
		return nil, nil
	}
	// The solution word is the main word the best move forms: the
	// board's letters along its line with the move's tiles filled in.
	var wordBytes []byte
	it, tileIdx := game.Board.MoveIterator(best.Anchor, best.Direction), 0
	for _, mc, ok := it.Next(); ok; _, mc, ok = it.Next() {
		if mc.Kind == FilledCell {
			wordBytes = append(wordBytes, mc.Letter.Byte())
		} else if tileIdx < len(best.Tiles) {
			wordBytes = append(wordBytes, best.Tiles[tileIdx].EffectiveLetter().Byte())
			tileIdx++
		} else {
			break
		}
	}
	word := string(wordBytes)
	if len([]rune(word)) < heuristics.MinWordLength {
		stats.TooShortWord++
		return nil, nil
	}

	if heuristics.SolutionFilter != nil {
		if !heuristics.SolutionFilter.Exists(word) {
			stats.WordNotCommon++
			return nil, nil
		}
	}

	secondBestScore := best.Score
	if numMoves > 1 {
		secondBestScore = moves[1].Score
	}

	totalScore := 0
	for _, m := range moves {
		totalScore += m.Score
	}

	isBingo := len(best.Tiles) == RackSize

	analysis := Analysis{
		TotalMoves:          numMoves,
		BestMoveScore:       best.Score,
		SecondBestMoveScore: secondBestScore,
		AverageScore:        float64(totalScore) / float64(numMoves),
		IsBingo:             isBingo,
	}

	solution := Solution{
		Move:        TileListString(best.Tiles),
		Coord:       best.Anchor.String() + best.Direction.String(),
		Score:       best.Score,
		Description: fmt.Sprintf("%d points %s", best.Score, word),
	}

	riddle := &Riddle{
		Board:    game.Board.Rows(),
		Rack:     rack,
		Solution: solution,
		Analysis: analysis,
	}

	rankScore := float64(best.Score)
	rankScore += float64(len(best.Tiles)) * heuristics.NumCoversBonus
	rankScore += float64(best.Score-secondBestScore) * heuristics.ScoreGapBonus
	if isBingo {
		rankScore += heuristics.BingoBonus
	}

	return &RiddleCandidate{
		Riddle: riddle,
		Score:  rankScore,
	}, nil
}

// GenerateRiddle orchestrates the generation and selection of the best riddle.
func GenerateRiddle(params GenerationParams, heuristics HeuristicConfig) (*Riddle, *Stats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), params.TimeLimit)
	defer cancel()

	var wg sync.WaitGroup
	candidateChan := make(chan *RiddleCandidate, 100)

	stats := &Stats{}

	numWorkers := params.NumWorkers
	wg.Add(numWorkers)

	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for atomic.LoadInt64(&stats.Candidates) < int64(params.NumCandidates) {
				select {
				case <-ctx.Done():
					return
				default:
					candidate, err := generateCandidate(ctx, params, heuristics, stats)
					if err == nil && candidate != nil {
						candidateChan <- candidate
						atomic.AddInt64(&stats.Candidates, 1)
					}
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(candidateChan)
	}()

	var bestCandidates []*RiddleCandidate
	for candidate := range candidateChan {
		bestCandidates = append(bestCandidates, candidate)
	}
	numCandidates := len(bestCandidates)

	if numCandidates == 0 {
		return nil, nil, fmt.Errorf("could not generate a suitable riddle in the allotted time")
	}

	sort.Slice(bestCandidates, func(i, j int) bool {
		return bestCandidates[i].Score > bestCandidates[j].Score
	})

	return bestCandidates[0].Riddle, stats, nil
}
