// board.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson

// This file implements the Board: its cells, their premium types and
// cross-check sets, incremental cross-check maintenance, word reading,
// cross-word scoring, and the move iterator used by move validation.

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
	"strings"
)

// CellValue is either the pair of cross-check sets an empty cell caches,
// or the letter an irrevocably filled cell holds.
type CellValue struct {
	Filled             bool
	Letter             Letter
	IsBlank            bool
	PopulatedLastMove  bool
	HorizontalLetters  LetterSet // cross-check set consulted when playing Horizontal through this cell
	VerticalLetters    LetterSet // cross-check set consulted when playing Vertical through this cell
}

func (v CellValue) isEmpty() bool {
	return !v.Filled
}

// letterSet returns the cross-check set that constrains a tile placed
// here while playing in d
func (v CellValue) letterSet(d Direction) LetterSet {
	if d == Horizontal {
		return v.HorizontalLetters
	}
	return v.VerticalLetters
}

func (v *CellValue) setLetterSet(d Direction, ls LetterSet) {
	if v.Filled {
		return
	}
	if d == Horizontal {
		v.HorizontalLetters = ls
	} else {
		v.VerticalLetters = ls
	}
}

// Cell pairs a CellValue with its immutable CellType
type Cell struct {
	Value CellValue
	Type  CellType
}

func (c Cell) isEmpty() bool {
	return c.Value.isEmpty()
}

func (c *Cell) setTile(t Tile) {
	c.Value = CellValue{
		Filled:            true,
		Letter:            t.EffectiveLetter(),
		IsBlank:           t.IsBlank,
		PopulatedLastMove: true,
	}
}

// Board is a 15×15 grid of cells under a fixed Variant, plus the
// dictionary oracle and cross-check memoization cache its cross-check
// maintenance consults.
type Board struct {
	variant *Variant
	cells   [BoardSize * BoardSize]Cell
	dict    *Dictionary
	cache   *crossCheckCache
}

// NewBoard allocates an empty board for the given variant, mirroring its
// 18-entry quadrant layout four ways across the full grid.
func NewBoard(v *Variant, dict *Dictionary) *Board {
	b := &Board{variant: v, dict: dict, cache: newCrossCheckCache(2048)}
	for i := range b.cells {
		b.cells[i] = Cell{
			Value: CellValue{
				HorizontalLetters: FullLetterSet(),
				VerticalLetters:   FullLetterSet(),
			},
			Type: Plain,
		}
	}
	for _, e := range v.Layout {
		b.setCellType(e.X, e.Y, e.Type)
		b.setCellType(BoardSize-1-e.X, e.Y, e.Type)
		b.setCellType(e.X, BoardSize-1-e.Y, e.Type)
		b.setCellType(BoardSize-1-e.X, BoardSize-1-e.Y, e.Type)
	}
	return b
}

func index(x, y int) int {
	return y*BoardSize + x
}

func (b *Board) setCellType(x, y int, t CellType) {
	b.cells[index(x, y)].Type = t
}

// CellAt returns a read-only copy of the cell at (x, y)
func (b *Board) CellAt(x, y int) Cell {
	return b.cells[index(x, y)]
}

func (b *Board) cellAtPos(p Position) *Cell {
	return &b.cells[index(p.X, p.Y)]
}

// IsEnabler reports whether pos is eligible as an anchor: the centre
// square always is; otherwise a cell qualifies if it is connected to at
// least one neighbour (non-full cross-check set, or already filled).
func (b *Board) IsEnabler(pos Position) bool {
	if pos == CenterSquare {
		return true
	}
	cell := b.cellAtPos(pos)
	if cell.Value.Filled {
		return true
	}
	return !cell.Value.HorizontalLetters.IsFull() || !cell.Value.VerticalLetters.IsFull()
}

// PlaceTile sets the cell at (x, y) to a filled tile, for board setup
// from an external representation (e.g. the HTTP transport). Returns
// false if the cell was already filled.
func (b *Board) PlaceTile(x, y int, t Tile) bool {
	cell := &b.cells[index(x, y)]
	if cell.Value.Filled {
		return false
	}
	cell.setTile(t)
	return true
}

// NumTiles counts the filled cells on the board
func (b *Board) NumTiles() int {
	n := 0
	for _, c := range b.cells {
		if c.Value.Filled {
			n++
		}
	}
	return n
}

// readWord reads the contiguous filled run starting at pos and running
// forward in d. Assumes pos is the start of the run.
func (b *Board) readWord(pos Position, d Direction) string {
	var sb strings.Builder
	for {
		cell := b.cellAtPos(pos)
		if !cell.Value.Filled {
			break
		}
		sb.WriteByte(cell.Value.Letter.Byte())
		next, ok := pos.StepForward(d)
		if !ok {
			break
		}
		pos = next
	}
	return sb.String()
}

// startOfWord walks backward from ref over filled cells and returns the
// position of the start of the contiguous word containing ref
func (b *Board) startOfWord(ref Position, d Direction) Position {
	start := ref
	cur := ref
	for {
		next, ok := cur.StepBackward(d)
		if !ok {
			break
		}
		if !b.cellAtPos(next).Value.Filled {
			break
		}
		start = next
		cur = next
	}
	return start
}

// endOfWord walks forward from ref over filled cells and returns the
// position of the end of the contiguous word containing ref
func (b *Board) endOfWord(ref Position, d Direction) Position {
	end := ref
	cur := ref
	for {
		next, ok := cur.StepForward(d)
		if !ok {
			break
		}
		if !b.cellAtPos(next).Value.Filled {
			break
		}
		end = next
		cur = next
	}
	return end
}

// ReadWordAt reads the whole contiguous filled word running through ref
// in direction d (rewinding to its start first).
func (b *Board) ReadWordAt(ref Position, d Direction) string {
	return b.readWord(b.startOfWord(ref, d), d)
}

// updateWordGaps refreshes the two one-cell gaps bracketing the
// contiguous word containing ref along d. The refreshed cross-check set
// is stored against the cross direction (d.Cross()), since that is the
// direction a play through the gap cell would need to respect.
func (b *Board) updateWordGaps(ref Position, d Direction) {
	central := b.readWord(b.startOfWord(ref, d), d)
	start := b.startOfWord(ref, d)
	end := b.endOfWord(ref, d)

	if previousGap, ok := start.StepBackward(d); ok {
		previousWord := ""
		if before, ok := previousGap.StepBackward(d); ok && b.cellAtPos(before).Value.Filled {
			previousWord = b.readWord(b.startOfWord(before, d), d)
		}
		key := "<" + previousWord + "|" + central
		ls := b.cache.lookup(key, func() LetterSet {
			set := EmptyLetterSet()
			for _, l := range Alphabet {
				if b.dict.Exists(previousWord + string(l.Byte()) + central) {
					set = set.Add(l)
				}
			}
			return set
		})
		b.cellAtPos(previousGap).Value.setLetterSet(d.Cross(), ls)
	}

	if nextGap, ok := end.StepForward(d); ok {
		nextWord := ""
		if after, ok := nextGap.StepForward(d); ok && b.cellAtPos(after).Value.Filled {
			nextWord = b.readWord(b.startOfWord(after, d), d)
		}
		key := ">" + central + "|" + nextWord
		ls := b.cache.lookup(key, func() LetterSet {
			set := EmptyLetterSet()
			for _, l := range Alphabet {
				if b.dict.Exists(central + string(l.Byte()) + nextWord) {
					set = set.Add(l)
				}
			}
			return set
		})
		b.cellAtPos(nextGap).Value.setLetterSet(d.Cross(), ls)
	}
}

// scoreCrossWord computes the perpendicular word through centralPos
// including the newly placed tile, and its score under the variant's
// multipliers. Called only when centralPos is a Connecting cell — an
// Open cell has no neighbours and so no cross-word to score.
func (b *Board) scoreCrossWord(centralPos Position, d Direction, centralTile Tile, centralLetter Letter) (int, error) {
	cell := b.cellAtPos(centralPos)

	var previousLetters []Letter
	var previousIsBlank []bool
	cur := centralPos
	for {
		next, ok := cur.StepBackward(d)
		if !ok {
			break
		}
		nc := b.cellAtPos(next)
		if !nc.Value.Filled {
			break
		}
		previousLetters = append(previousLetters, nc.Value.Letter)
		previousIsBlank = append(previousIsBlank, nc.Value.IsBlank)
		cur = next
	}

	var sb strings.Builder
	for i := len(previousLetters) - 1; i >= 0; i-- {
		sb.WriteByte(previousLetters[i].Byte())
	}
	crossScore := 0
	for i, l := range previousLetters {
		if !previousIsBlank[i] {
			crossScore += b.variant.LetterValues[l]
		}
	}

	sb.WriteByte(centralLetter.Byte())
	crossScore += centralTile.Score(b.variant) * cell.Type.LetterMultiplier()

	cur = centralPos
	for {
		next, ok := cur.StepForward(d)
		if !ok {
			break
		}
		nc := b.cellAtPos(next)
		if !nc.Value.Filled {
			break
		}
		sb.WriteByte(nc.Value.Letter.Byte())
		if !nc.Value.IsBlank {
			crossScore += b.variant.LetterValues[nc.Value.Letter]
		}
		cur = next
	}

	crossWord := sb.String()
	if !b.dict.Exists(crossWord) {
		return 0, &MoveError{Kind: InvalidWord, Word: crossWord}
	}
	return crossScore * cell.Type.WordMultiplier(), nil
}

// Rows renders the board as BoardSize strings, one per row, with '.' for
// an empty cell, the upper-case letter for a filled cell, or its
// lower-case form if it was played as a blank.
func (b *Board) Rows() []string {
	rows := make([]string, BoardSize)
	for y := 0; y < BoardSize; y++ {
		var sb strings.Builder
		for x := 0; x < BoardSize; x++ {
			cell := b.CellAt(x, y)
			if !cell.Value.Filled {
				sb.WriteByte('.')
				continue
			}
			ch := cell.Value.Letter.Byte()
			if cell.Value.IsBlank {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
		rows[y] = sb.String()
	}
	return rows
}

// resetLastMoveFlags clears PopulatedLastMove on every filled cell,
// called at the start of each apply_move.
func (b *Board) resetLastMoveFlags() {
	for i := range b.cells {
		b.cells[i].Value.PopulatedLastMove = false
	}
}

// MoveCell is the per-position classification a MoveIterator yields
type MoveCell struct {
	Kind      MoveCellKind
	LetterSet LetterSet // valid when Kind == ConnectingCell
	Letter    Letter    // valid when Kind == FilledCell
	Score     int       // valid when Kind == FilledCell
}

// MoveCellKind names the three shapes a move-iterator step can take
type MoveCellKind int

const (
	// OpenCell is an empty cell with a full cross-check set
	OpenCell MoveCellKind = iota
	// ConnectingCell is an empty cell with a non-full, non-empty
	// cross-check set
	ConnectingCell
	// FilledCell is a pre-existing tile
	FilledCell
)

// MoveIterator walks cells from a starting position in one direction,
// yielding at most RackSize placeable cells and stopping at the board
// edge or an impassable (empty, empty-cross-check) cell.
type MoveIterator struct {
	board        *Board
	direction    Direction
	pos          Position
	tilesPlaced  int
	done         bool
}

// MoveIterator returns an iterator starting from the word containing
// startPos (rewound to its actual start) and running forward in d.
func (b *Board) MoveIterator(startPos Position, d Direction) *MoveIterator {
	return &MoveIterator{
		board:     b,
		direction: d,
		pos:       b.startOfWord(startPos, d),
	}
}

// Next returns the next (position, MoveCell) pair, or ok == false when
// the iterator is exhausted.
func (it *MoveIterator) Next() (Position, MoveCell, bool) {
	if it.done {
		return Position{}, MoveCell{}, false
	}
	pos := it.pos
	cell := it.board.cellAtPos(pos)
	var result MoveCell
	var yield bool
	if cell.Value.Filled {
		score := 0
		if !cell.Value.IsBlank {
			score = it.board.variant.LetterValues[cell.Value.Letter]
		}
		result = MoveCell{Kind: FilledCell, Letter: cell.Value.Letter, Score: score}
		yield = true
	} else {
		ls := cell.Value.letterSet(it.direction)
		if ls.IsEmpty() {
			yield = false
		} else if it.tilesPlaced == RackSize {
			yield = false
		} else {
			it.tilesPlaced++
			if ls.IsFull() {
				result = MoveCell{Kind: OpenCell}
			} else {
				result = MoveCell{Kind: ConnectingCell, LetterSet: ls}
			}
			yield = true
		}
	}
	if !yield {
		it.done = true
		return Position{}, MoveCell{}, false
	}
	if next, ok := pos.StepForward(it.direction); ok {
		it.pos = next
	} else {
		it.done = true
	}
	return pos, result, true
}
