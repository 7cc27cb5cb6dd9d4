// robot.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson
// This file implements a SCRABBLE(tm) playing robot,
// and is a part of the Go 'skrafl' package.

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package skrafl

// Robot is an interface for automatic players that implement a playing
// strategy: given the legal moves available to the current player of g,
// pick one to play. An empty moves slice means no placement is legal at
// all; a Robot is still asked in that case so it can be swapped out
// without the caller special-casing "no moves".
type Robot interface {
	PickMove(g *Game, moves []LegalMove) (LegalMove, bool)
}

// HighScoreRobot always plays the single highest-scoring legal move
// available. moves is assumed already sorted by descending score, which
// is what Game.LegalMoves returns; PickMove does not re-sort it, so a
// caller handing it an unsorted slice gets the wrong answer.
type HighScoreRobot struct{}

// NewHighScoreRobot returns a fresh HighScoreRobot
func NewHighScoreRobot() *HighScoreRobot {
	return &HighScoreRobot{}
}

// PickMove returns the first (highest-scoring) entry of moves, or false
// if moves is empty
func (r *HighScoreRobot) PickMove(g *Game, moves []LegalMove) (LegalMove, bool) {
	if len(moves) == 0 {
		return LegalMove{}, false
	}
	return moves[0], true
}

// TakeTurn plays one turn for the current player of g using r: applies
// r's chosen move if one exists, otherwise falls back to g's own
// exchange-or-pass handling. It is the Robot-driven counterpart to
// HumanMove, used wherever a game needs to be advanced by an automatic
// player rather than by g.ComputerMove's built-in greedy search (the
// riddle generator, for one, needs the candidate moves it passed to r
// to score the resulting position afterwards).
func TakeTurn(g *Game, r Robot) {
	move, ok := r.PickMove(g, g.LegalMoves())
	if !ok {
		g.computerNoMove()
		return
	}
	score, err := g.ValidateMove(move.Anchor, move.Direction, move.Tiles)
	if err != nil {
		// The move came from LegalMoves, which only emits moves that
		// already passed ValidateMove once; a second failure here means
		// the rack changed between the two calls.
		g.computerNoMove()
		return
	}
	g.ApplyMove(move.Anchor, move.Direction, move.Tiles, score)
}
