// game.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson
// This file implements the Game class: turn/player state, the
// first-move rule, move validation and application, pass/exchange,
// the computer move search, and end-game settlement.

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

import (
	"math/rand"
	"sort"
)

// PlayerKind is a tagged enum, not a subclass: the game loop selects the
// move source by tag. There is no virtual dispatch in the core.
type PlayerKind int

const (
	HumanPlayer PlayerKind = iota
	ComputerPlayer
)

// Player holds one seat's mutable state. Rack is itself a TileBag — the
// same type used for the shared draw pool, not a distinct Rack type.
type Player struct {
	Kind      PlayerKind
	Name      string
	Rack      *TileBag
	Score     int
	Passes    int
	Exchanges int
	Timer     Timer
	LastMove  int
}

// Game is the top-level state machine: variant, players, board, bag,
// turn order and move history.
type Game struct {
	variant *Variant

	NumPlayers    int
	Players       []*Player
	Board         *Board
	Bag           *TileBag
	CurrentPlayer int
	FirstMove     bool
	IsOver        bool
	Winner        int // -1 means a draw
	NonScoring    int // consecutive non-scoring plays (passes + exchanges)
	Moves         []GameMoveRecord

	rng *rand.Rand
}

// NewGame constructs a Game for the given variant, dictionary and
// random source, with numPlayers seats named per playerNames and typed
// per playerKinds.
func NewGame(v *Variant, dict *Dictionary, rng *rand.Rand, playerNames []string, playerKinds []PlayerKind) *Game {
	n := len(playerNames)
	g := &Game{
		variant:       v,
		NumPlayers:    n,
		Board:         NewBoard(v, dict),
		Bag:           NewTileBag(v),
		CurrentPlayer: 0,
		FirstMove:     true,
		Winner:        -1,
		rng:           rng,
	}
	g.Players = make([]*Player, n)
	for i := 0; i < n; i++ {
		g.Players[i] = &Player{
			Kind: playerKinds[i],
			Name: playerNames[i],
			Rack: NewEmptyTileBag(),
		}
	}
	for i := 0; i < n; i++ {
		g.Players[i].Rack.FillRack(g.Bag, g.rng)
	}
	g.Players[0].Timer.Start()
	return g
}

// CurrentPlayerObj returns the player whose turn it is
func (g *Game) CurrentPlayerObj() *Player {
	return g.Players[g.CurrentPlayer]
}

// ValidatePosition determines the minimum and maximum number of new
// tiles a placement starting at (start, d) could legally use,
// independent of which letters are played. See §4.6.
func (g *Game) ValidatePosition(start Position, d Direction) (minTiles, maxTiles int, err error) {
	it := g.Board.MoveIterator(start, d)
	tilesPlaced := 0
	for {
		pos, mc, ok := it.Next()
		if !ok {
			break
		}
		switch mc.Kind {
		case OpenCell:
			tilesPlaced++
		case ConnectingCell:
			if mc.LetterSet.AllowsRack(g.CurrentPlayerObj().Rack) {
				tilesPlaced++
				if minTiles == 0 {
					minTiles = tilesPlaced
				}
			} else {
				// blocked: no letter in rack can satisfy this gap
				goto done
			}
		case FilledCell:
			if minTiles == 0 {
				if tilesPlaced == 0 {
					minTiles = 1
				} else {
					minTiles = tilesPlaced
				}
			}
		}
		if minTiles == 0 && pos == CenterSquare {
			minTiles = tilesPlaced
		}
	}
done:
	maxTiles = tilesPlaced
	if minTiles == 0 {
		return 0, 0, &MoveError{Kind: TilesDoNotConnect}
	}
	return minTiles, maxTiles, nil
}

// ValidateMove validates a proposed placement of tiles starting at
// (start, d) and returns its score. It is pure: it never mutates game
// state, win or lose. See §4.7.
func (g *Game) ValidateMove(start Position, d Direction, tiles []Tile) (int, error) {
	if err := g.CurrentPlayerObj().Rack.ConfirmContainsTileList(tiles); err != nil {
		return 0, err
	}

	crossDir := d.Cross()
	mainWordScore := 0
	crossWordScores := 0
	wordMultiplier := 1
	tileIdx := 0
	var word []byte

	it := g.Board.MoveIterator(start, d)
	for {
		pos, mc, ok := it.Next()
		if !ok {
			break
		}
		switch mc.Kind {
		case OpenCell, ConnectingCell:
			if tileIdx >= len(tiles) {
				goto done
			}
			tile := tiles[tileIdx]
			tileIdx++
			letter := tile.EffectiveLetter()
			word = append(word, letter.Byte())

			cell := g.Board.CellAt(pos.X, pos.Y)
			letterMult := cell.Type.LetterMultiplier()
			mainWordScore += tile.Score(g.variant) * letterMult
			wordMultiplier *= cell.Type.WordMultiplier()

			if mc.Kind == ConnectingCell {
				if !mc.LetterSet.Contains(letter) {
					return 0, &MoveError{Kind: LetterNotAllowedInPosition}
				}
				crossScore, err := g.Board.scoreCrossWord(pos, crossDir, tile, letter)
				if err != nil {
					return 0, err
				}
				crossWordScores += crossScore
			}
		case FilledCell:
			word = append(word, mc.Letter.Byte())
			mainWordScore += mc.Score
		}
	}
done:
	mainWord := string(word)
	if !g.Board.dict.Exists(mainWord) {
		return 0, &MoveError{Kind: InvalidWord, Word: mainWord}
	}
	score := mainWordScore*wordMultiplier + crossWordScores
	if tileIdx == RackSize {
		score += g.variant.BingoBonus
	}
	return score, nil
}

// ApplyMove places tiles starting at (start, d), a move already produced
// by ValidateMove with the given score. It assumes the move is valid;
// callers must not call it on an unvalidated move. See §4.8.
func (g *Game) ApplyMove(start Position, d Direction, tiles []Tile, score int) {
	g.Board.resetLastMoveFlags()

	player := g.CurrentPlayerObj()
	crossDir := d.Cross()

	remaining := append([]Tile(nil), tiles...)
	idx := 0

	cur := start
	for {
		cell := g.Board.cellAtPos(cur)
		if !cell.Value.Filled {
			if idx >= len(remaining) {
				break
			}
			played := remaining[idx]
			idx++
			cell.setTile(played)
			player.Rack.RemoveTile(played)
			g.Board.updateWordGaps(cur, crossDir)
		}
		if next, ok := cur.StepForward(d); ok {
			cur = next
		} else {
			break
		}
	}

	g.Board.updateWordGaps(start, d)

	g.Moves = append(g.Moves, GameMoveRecord{
		Player:     g.CurrentPlayer,
		PlayerName: player.Name,
		Kind:       PlacementRecord,
		Anchor:     start,
		Direction:  d,
		Tiles:      tiles,
		Score:      score,
		Word:       g.Board.ReadWordAt(start, d),
	})
	player.LastMove = len(g.Moves) - 1

	player.Rack.FillRack(g.Bag, g.rng)
	player.Score += score
	player.Timer.Stop()

	if player.Rack.IsEmpty() {
		g.endGame()
		return
	}
	g.resetCurrentPlayerStats()
	g.NonScoring = 0
	g.CurrentPlayer = (g.CurrentPlayer + 1) % g.NumPlayers
	g.Players[g.CurrentPlayer].Timer.Start()
	g.FirstMove = false
}

// HumanMove validates and, on success, applies a placement in one step.
func (g *Game) HumanMove(start Position, d Direction, tiles []Tile) error {
	player := g.CurrentPlayerObj()
	if err := player.Rack.ConfirmContainsTileList(tiles); err != nil {
		return err
	}
	minTiles, maxTiles, err := g.ValidatePosition(start, d)
	if err != nil {
		return err
	}
	if len(tiles) < minTiles || len(tiles) > maxTiles {
		return &MoveError{Kind: TilesDoNotFit}
	}
	score, err := g.ValidateMove(start, d, tiles)
	if err != nil {
		return err
	}
	g.ApplyMove(start, d, tiles, score)
	g.resetCurrentPlayerStats()
	return nil
}

// ExchangeTiles returns the given tiles to the bag and refills the rack.
// Fails with NotEnoughTilesInBag if the bag holds fewer than RackSize
// tiles. See §4.9.
func (g *Game) ExchangeTiles(tiles []Tile) error {
	if g.Bag.Total() < RackSize {
		return &MoveError{Kind: NotEnoughTilesInBag}
	}
	player := g.CurrentPlayerObj()
	if err := player.Rack.ConfirmContainsTileList(tiles); err != nil {
		return err
	}
	player.Rack.RemoveTileList(tiles)
	g.Bag.AddTileList(tiles)
	player.Rack.FillRack(g.Bag, g.rng)
	player.Exchanges++
	g.NonScoring++

	g.Moves = append(g.Moves, GameMoveRecord{
		Player:     g.CurrentPlayer,
		PlayerName: player.Name,
		Kind:       ExchangeRecord,
		Tiles:      tiles,
	})
	player.LastMove = len(g.Moves) - 1
	player.Timer.Stop()

	if g.NonScoring >= 6 {
		g.endGame()
		return nil
	}
	g.CurrentPlayer = (g.CurrentPlayer + 1) % g.NumPlayers
	g.Players[g.CurrentPlayer].Timer.Start()
	return nil
}

// Pass records a pass and advances the turn, ending the game once six
// consecutive non-scoring plays have accumulated. See §4.9.
func (g *Game) Pass() {
	player := g.CurrentPlayerObj()
	g.Moves = append(g.Moves, GameMoveRecord{
		Player:     g.CurrentPlayer,
		PlayerName: player.Name,
		Kind:       PassRecord,
	})
	player.LastMove = len(g.Moves) - 1
	player.Timer.Stop()
	player.Passes++
	g.NonScoring++
	if g.NonScoring >= 6 {
		g.endGame()
		return
	}
	g.CurrentPlayer = (g.CurrentPlayer + 1) % g.NumPlayers
	g.Players[g.CurrentPlayer].Timer.Start()
}

// Quit ends the game immediately, as if by resignation
func (g *Game) Quit() {
	g.endGame()
}

func (g *Game) resetCurrentPlayerStats() {
	for _, p := range g.Players {
		p.Exchanges = 0
		p.Passes = 0
	}
}

// computerMovePosition is the recursive backtracking search over rack
// letter arrangements at one (anchor, direction), pruned by the
// cross-check sets already embedded in ValidateMove's move iterator.
// See §4.10.
func (g *Game) computerMovePosition(best *candidateMove, start Position, d Direction, minTiles, maxTiles int, currentTiles []Tile, currentRack *TileBag) {
	if len(currentTiles) >= maxTiles {
		return
	}
	if len(currentTiles) >= minTiles {
		if score, err := g.ValidateMove(start, d, currentTiles); err == nil {
			if score > best.Score {
				best.Anchor = start
				best.Direction = d
				best.Tiles = append([]Tile(nil), currentTiles...)
				best.Score = score
			}
		}
	}
	if len(currentTiles) < maxTiles && !currentRack.IsEmpty() {
		for _, l := range Alphabet {
			if currentRack.ContainsLetter(l) {
				newTiles := append(append([]Tile(nil), currentTiles...), NewLetterTile(l))
				newRack := currentRack.Clone()
				newRack.RemoveLetter(l)
				g.computerMovePosition(best, start, d, minTiles, maxTiles, newTiles, newRack)
			}
			if currentRack.Blanks > 0 {
				newTiles := append(append([]Tile(nil), currentTiles...), NewBlankTile(l))
				newRack := currentRack.Clone()
				newRack.RemoveBlank()
				g.computerMovePosition(best, start, d, minTiles, maxTiles, newTiles, newRack)
			}
		}
	}
}

// ComputerMove runs the one-ply greedy maximiser: every (anchor,
// direction) pair is searched, in the fixed order Vertical-then-
// Horizontal, y outer, x inner; on ties the first maximum encountered
// wins. If no playable move is found, the rack is exchanged (bag
// permitting) or the player passes. See §4.10.
func (g *Game) ComputerMove() {
	best := &candidateMove{Anchor: CenterSquare, Direction: Horizontal}

	for _, d := range [2]Direction{Vertical, Horizontal} {
		for y := 0; y < BoardSize; y++ {
			for x := 0; x < BoardSize; x++ {
				start := NewPosition(x, y)
				minTiles, maxTiles, err := g.ValidatePosition(start, d)
				if err != nil {
					continue
				}
				g.computerMovePosition(best, start, d, minTiles, maxTiles, nil, g.CurrentPlayerObj().Rack.Clone())
			}
		}
	}

	if best.Score == 0 {
		g.computerNoMove()
		return
	}
	g.ApplyMove(best.Anchor, best.Direction, best.Tiles, best.Score)
}

// LegalMove is one fully-scored placement a rack could make, as found by
// LegalMoves. It shares its field shape with candidateMove but is
// exported for callers outside the package (the riddle generator, the
// HTTP transport) that want more than just the single best move.
type LegalMove struct {
	Anchor    Position
	Direction Direction
	Tiles     []Tile
	Score     int
}

// LegalMoves enumerates every legal placement available to the current
// player, across every anchor and direction, ranked by descending score.
// It performs the same backtracking search as ComputerMove but collects
// every move that clears ValidateMove instead of keeping only the best,
// so callers can reason about the shape of the position (how many
// replies exist, the score gap between the best and the rest) rather
// than just the single move the robot would play.
func (g *Game) LegalMoves() []LegalMove {
	var found []LegalMove
	rack := g.CurrentPlayerObj().Rack

	var search func(start Position, d Direction, minTiles, maxTiles int, currentTiles []Tile, currentRack *TileBag)
	search = func(start Position, d Direction, minTiles, maxTiles int, currentTiles []Tile, currentRack *TileBag) {
		if len(currentTiles) >= minTiles && len(currentTiles) > 0 {
			if score, err := g.ValidateMove(start, d, currentTiles); err == nil {
				found = append(found, LegalMove{
					Anchor:    start,
					Direction: d,
					Tiles:     append([]Tile(nil), currentTiles...),
					Score:     score,
				})
			}
		}
		if len(currentTiles) < maxTiles && !currentRack.IsEmpty() {
			for _, l := range Alphabet {
				if currentRack.ContainsLetter(l) {
					newTiles := append(append([]Tile(nil), currentTiles...), NewLetterTile(l))
					newRack := currentRack.Clone()
					newRack.RemoveLetter(l)
					search(start, d, minTiles, maxTiles, newTiles, newRack)
				}
				if currentRack.Blanks > 0 {
					newTiles := append(append([]Tile(nil), currentTiles...), NewBlankTile(l))
					newRack := currentRack.Clone()
					newRack.RemoveBlank()
					search(start, d, minTiles, maxTiles, newTiles, newRack)
				}
			}
		}
	}

	for _, d := range [2]Direction{Vertical, Horizontal} {
		for y := 0; y < BoardSize; y++ {
			for x := 0; x < BoardSize; x++ {
				start := NewPosition(x, y)
				minTiles, maxTiles, err := g.ValidatePosition(start, d)
				if err != nil {
					continue
				}
				search(start, d, minTiles, maxTiles, nil, rack.Clone())
			}
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Score > found[j].Score })
	return found
}

// computerNoMove handles the case where the search found no playable
// move: exchange the whole rack if the bag can support it, else pass.
func (g *Game) computerNoMove() {
	if g.Bag.Total() >= RackSize {
		tiles := g.CurrentPlayerObj().Rack.ToTileList()
		// ExchangeTiles cannot fail here: Total() >= RackSize was just
		// checked and the tiles come straight from the player's own rack.
		_ = g.ExchangeTiles(tiles)
		return
	}
	g.Pass()
}

// endGame settles scores once the game is over: if the current player
// just emptied their rack, they receive the sum of every rack's tile
// values (their own included, which is zero); independently, every
// player has their own rack's value deducted (nothing, for a player who
// went out). After a stalemate or resignation nobody receives the sum
// and every player's rack is deducted. These two rules are not
// symmetric opposites of one another — see DESIGN.md.
func (g *Game) endGame() {
	g.IsOver = true

	racksTotal := 0
	for _, p := range g.Players {
		racksTotal += p.Rack.SumTileValues(g.variant)
	}

	current := g.Players[g.CurrentPlayer]
	if current.Rack.IsEmpty() {
		current.Score += racksTotal
	}
	for _, p := range g.Players {
		p.Score -= p.Rack.SumTileValues(g.variant)
	}

	winner := 0
	maxScore := g.Players[0].Score
	draw := false
	for i := 1; i < len(g.Players); i++ {
		s := g.Players[i].Score
		if s > maxScore {
			maxScore = s
			winner = i
			draw = false
		} else if s == maxScore {
			draw = true
		}
	}
	if draw {
		g.Winner = -1
	} else {
		g.Winner = winner
	}
}

// LastMove returns the most recent move history entry, if any
func (g *Game) LastMove() (GameMoveRecord, bool) {
	if len(g.Moves) == 0 {
		return GameMoveRecord{}, false
	}
	return g.Moves[len(g.Moves)-1], true
}
