// tiles.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements Letter, LetterSet, Tile, TileBag and TileList:
// the alphabet and the multisets of tiles drawn from it.

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
	"strings"
)

// NumLetters is the size of the alphabet
const NumLetters = 26

// Letter is a value in [0, 25], mapped 1-1 to 'A'..'Z'
type Letter int8

// NoLetter marks an unassigned blank
const NoLetter Letter = -1

// LetterFromByte maps an upper-case ASCII byte to a Letter
func LetterFromByte(b byte) Letter {
	return Letter(b - 'A')
}

// Byte renders the letter as an upper-case ASCII byte
func (l Letter) Byte() byte {
	return byte(l) + 'A'
}

func (l Letter) String() string {
	if l == NoLetter {
		return "*"
	}
	return string(l.Byte())
}

// Alphabet lists every Letter in ascending order
var Alphabet = func() [NumLetters]Letter {
	var a [NumLetters]Letter
	for i := range a {
		a[i] = Letter(i)
	}
	return a
}()

// LetterSet is a 26-bit packed subset of the alphabet
type LetterSet uint32

const fullLetterSetBits LetterSet = (1 << NumLetters) - 1

// EmptyLetterSet returns a set containing no letters
func EmptyLetterSet() LetterSet {
	return 0
}

// FullLetterSet returns a set containing every letter
func FullLetterSet() LetterSet {
	return fullLetterSetBits
}

// Add returns the set with l included
func (s LetterSet) Add(l Letter) LetterSet {
	return s | (1 << uint(l))
}

// Remove returns the set with l excluded
func (s LetterSet) Remove(l Letter) LetterSet {
	return s &^ (1 << uint(l))
}

// Contains reports whether l is a member of the set
func (s LetterSet) Contains(l Letter) bool {
	return s&(1<<uint(l)) != 0
}

// IsEmpty reports whether the set has no members
func (s LetterSet) IsEmpty() bool {
	return s == 0
}

// IsFull reports whether the set contains every letter
func (s LetterSet) IsFull() bool {
	return s == fullLetterSetBits
}

// Letters returns the set's members in ascending alphabetical order
func (s LetterSet) Letters() []Letter {
	letters := make([]Letter, 0, NumLetters)
	for _, l := range Alphabet {
		if s.Contains(l) {
			letters = append(letters, l)
		}
	}
	return letters
}

// AllowsRack reports whether the set and the rack share at least one
// plain (non-blank) letter; blanks in the rack do not widen this test.
func (s LetterSet) AllowsRack(rack *TileBag) bool {
	for _, l := range s.Letters() {
		if rack.ContainsLetter(l) {
			return true
		}
	}
	return false
}

func (s LetterSet) String() string {
	var b strings.Builder
	for _, l := range s.Letters() {
		b.WriteByte(l.Byte())
	}
	return b.String()
}

// Tile is either a lettered scoring tile or a blank, which scores zero
// and, once placed, carries the letter it was assigned to act as.
type Tile struct {
	IsBlank bool
	Letter  Letter // for a Lettered tile, the letter; for a placed Blank, the assignment
}

// NewLetterTile constructs a plain, scoring tile
func NewLetterTile(l Letter) Tile {
	return Tile{Letter: l}
}

// NewBlankTile constructs a blank, optionally already assigned a letter
// (assigned == NoLetter means an unassigned blank, as held in a bag or rack)
func NewBlankTile(assigned Letter) Tile {
	return Tile{IsBlank: true, Letter: assigned}
}

// EffectiveLetter returns the letter the tile reads as on the board. For
// an unassigned blank it returns NoLetter.
func (t Tile) EffectiveLetter() Letter {
	return t.Letter
}

// Score returns the tile's point value under the given variant; blanks
// always score zero, regardless of assignment.
func (t Tile) Score(v *Variant) int {
	if t.IsBlank {
		return 0
	}
	return v.LetterValues[t.Letter]
}

func (t Tile) String() string {
	if t.IsBlank {
		if t.Letter == NoLetter {
			return "*"
		}
		return t.Letter.String()
	}
	return t.Letter.String()
}

// TileBag is a multiset over the 26 letters plus a blank count. It is
// used both as the shared draw pool and, identically, as a player's rack.
type TileBag struct {
	Counts [NumLetters]int
	Blanks int
}

// NewTileBag builds a bag pre-filled from a variant's distribution
func NewTileBag(v *Variant) *TileBag {
	bag := &TileBag{Blanks: v.Blanks}
	bag.Counts = v.LetterDistribution
	return bag
}

// NewEmptyTileBag builds a bag with nothing in it
func NewEmptyTileBag() *TileBag {
	return &TileBag{}
}

// Clone returns an independent copy
func (b *TileBag) Clone() *TileBag {
	c := *b
	return &c
}

// AddLetter adds one plain tile for the given letter
func (b *TileBag) AddLetter(l Letter) {
	b.Counts[l]++
}

// RemoveLetter removes one plain tile for the given letter
func (b *TileBag) RemoveLetter(l Letter) {
	b.Counts[l]--
}

// AddBlank adds one blank
func (b *TileBag) AddBlank() {
	b.Blanks++
}

// RemoveBlank removes one blank
func (b *TileBag) RemoveBlank() {
	b.Blanks--
}

// ContainsLetter reports whether the bag has at least one plain tile of
// the given letter
func (b *TileBag) ContainsLetter(l Letter) bool {
	return b.Counts[l] > 0
}

// Total returns the number of tiles in the bag, blanks included
func (b *TileBag) Total() int {
	total := b.Blanks
	for _, c := range b.Counts {
		total += c
	}
	return total
}

// IsEmpty reports whether the bag holds no tiles
func (b *TileBag) IsEmpty() bool {
	return b.Total() == 0
}

func (b *TileBag) countTile(t Tile) int {
	if t.IsBlank {
		return b.Blanks
	}
	return b.Counts[t.Letter]
}

// AddTile adds one instance of the given tile (a blank's assignment, if
// any, is not tracked by the bag — only its blank-ness is)
func (b *TileBag) AddTile(t Tile) {
	if t.IsBlank {
		b.AddBlank()
	} else {
		b.AddLetter(t.Letter)
	}
}

// RemoveTile removes one instance of the given tile
func (b *TileBag) RemoveTile(t Tile) {
	if t.IsBlank {
		b.RemoveBlank()
	} else {
		b.RemoveLetter(t.Letter)
	}
}

// tryRemoveTile removes one instance of t if present, else reports
// TilesNotInRack
func (b *TileBag) tryRemoveTile(t Tile) error {
	if b.countTile(t) <= 0 {
		return &MoveError{Kind: TilesNotInRack, Tile: t}
	}
	b.RemoveTile(t)
	return nil
}

// ConfirmContainsTileList reports whether the bag's multiset contains at
// least the given tiles, without mutating the bag.
func (b *TileBag) ConfirmContainsTileList(tiles []Tile) error {
	probe := b.Clone()
	for _, t := range tiles {
		if err := probe.tryRemoveTile(t); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTileList removes every tile in the list from the bag
func (b *TileBag) RemoveTileList(tiles []Tile) {
	for _, t := range tiles {
		b.RemoveTile(t)
	}
}

// AddTileList adds every tile in the list to the bag
func (b *TileBag) AddTileList(tiles []Tile) {
	for _, t := range tiles {
		b.AddTile(t)
	}
}

// SumTileValues is the sum of letter values of the bag's plain tiles;
// blanks contribute zero. Used for end-of-game rack settlement.
func (b *TileBag) SumTileValues(v *Variant) int {
	sum := 0
	for l, count := range b.Counts {
		sum += count * v.LetterValues[l]
	}
	return sum
}

// randomTile draws one tile uniformly at random, weighted by count, using
// the supplied random source
func (b *TileBag) randomTile(rng *rand.Rand) Tile {
	total := b.Total()
	r := rng.Intn(total)
	if r < b.Blanks {
		return NewBlankTile(NoLetter)
	}
	sum := b.Blanks
	for l, count := range b.Counts {
		sum += count
		if r < sum {
			return NewLetterTile(Letter(l))
		}
	}
	panic("randomTile: inconsistent tile bag")
}

// FillRack draws tiles at random from bag into the receiver until the
// receiver holds RackSize tiles or bag is exhausted.
func (b *TileBag) FillRack(bag *TileBag, rng *rand.Rand) {
	for !bag.IsEmpty() && b.Total() < RackSize {
		t := bag.randomTile(rng)
		b.AddTile(t)
		bag.RemoveTile(t)
	}
}

// ToTileList expands the bag into an explicit slice of tiles (letters in
// alphabetical order, followed by unassigned blanks)
func (b *TileBag) ToTileList() []Tile {
	tiles := make([]Tile, 0, b.Total())
	for l, count := range b.Counts {
		for i := 0; i < count; i++ {
			tiles = append(tiles, NewLetterTile(Letter(l)))
		}
	}
	for i := 0; i < b.Blanks; i++ {
		tiles = append(tiles, NewBlankTile(NoLetter))
	}
	return tiles
}

func (b *TileBag) String() string {
	var sb strings.Builder
	for l, count := range b.Counts {
		for i := 0; i < count; i++ {
			sb.WriteByte(Letter(l).Byte())
		}
	}
	for i := 0; i < b.Blanks; i++ {
		sb.WriteByte('*')
	}
	return sb.String()
}

// ParseTileList parses the "*X denotes a blank assigned to X" grammar:
// upper-case letters stand for themselves; '*' followed by an upper-case
// letter denotes a blank assigned that letter; anything else is rejected.
func ParseTileList(s string) ([]Tile, error) {
	tiles := make([]Tile, 0, len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '*':
			if i+1 >= len(runes) || runes[i+1] < 'A' || runes[i+1] > 'Z' {
				return nil, &MoveError{Kind: InvalidTile, Char: c}
			}
			tiles = append(tiles, NewBlankTile(LetterFromByte(byte(runes[i+1]))))
			i++
		case c >= 'A' && c <= 'Z':
			tiles = append(tiles, NewLetterTile(LetterFromByte(byte(c))))
		default:
			return nil, &MoveError{Kind: InvalidTile, Char: c}
		}
	}
	return tiles, nil
}

// TileListString renders a slice of tiles back into parser-compatible form.
// An unassigned blank renders as a bare '*', which ParseTileList rejects.
func TileListString(tiles []Tile) string {
	var sb strings.Builder
	for _, t := range tiles {
		if t.IsBlank {
			sb.WriteByte('*')
			if t.Letter != NoLetter {
				sb.WriteByte(t.Letter.Byte())
			}
		} else {
			sb.WriteByte(t.Letter.Byte())
		}
	}
	return sb.String()
}
