// move.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson

// This file implements the move history: one GameMoveRecord per turn,
// covering placements, exchanges and passes.

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

import "fmt"

// RecordKind names the shape of one GameMoveRecord's detail
type RecordKind int

const (
	// PlacementRecord is a tile placement
	PlacementRecord RecordKind = iota
	// ExchangeRecord is a tile exchange
	ExchangeRecord
	// PassRecord is a pass
	PassRecord
)

// GameMoveRecord is one entry in a Game's move history
type GameMoveRecord struct {
	Player     int
	PlayerName string
	Kind       RecordKind

	// Valid when Kind == PlacementRecord
	Anchor    Position
	Direction Direction
	Tiles     []Tile
	Score     int
	Word      string
}

func (r GameMoveRecord) String() string {
	switch r.Kind {
	case PlacementRecord:
		return fmt.Sprintf("%3d points %s", r.Score, r.Word)
	case ExchangeRecord:
		return fmt.Sprintf("Exchange: tiles - %s", TileListString(r.Tiles))
	default:
		return "Pass"
	}
}

// candidateMove is the (anchor, direction, tiles, score) tuple the
// computer search tracks as its current best candidate.
type candidateMove struct {
	Anchor    Position
	Direction Direction
	Tiles     []Tile
	Score     int
}
