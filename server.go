// server.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.
//
// This file implements a compact HTTP server that receives
// JSON encoded requests and returns JSON encoded responses.

package skrafl

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode"
)

// MovesRequest describes an incoming /moves request: a rule variant, the
// board state as BoardSize row strings ('.' for empty, upper-case for a
// played letter, lower-case for a letter played from a blank), the
// requesting player's rack ('*' for an unassigned blank), and an
// optional cap on the number of moves returned.
type MovesRequest struct {
	Variant string   `json:"variant"`
	Board   []string `json:"board"`
	Rack    string   `json:"rack"`
	Limit   int      `json:"limit"`
}

// MoveResponse is one scored legal move, rendered for JSON transport
type MoveResponse struct {
	Tiles string `json:"tiles"` // parser-compatible tile list, e.g. "CA*T"
	Coord string `json:"coord"` // e.g. "H8H"
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// HeaderJson is the /moves response envelope
type HeaderJson struct {
	Version string         `json:"version"`
	Count   int            `json:"count"`
	Moves   []MoveResponse `json:"moves"`
}

// boardFromRows reconstructs a Board from the row-string representation
// Board.Rows produces, for a variant and dictionary already resolved.
func boardFromRows(v *Variant, dict *Dictionary, rows []string) (*Board, error) {
	if len(rows) != BoardSize {
		return nil, fmt.Errorf("invalid board: must have %d rows", BoardSize)
	}
	b := NewBoard(v, dict)
	for y, rowString := range rows {
		row := []rune(rowString)
		if len(row) != BoardSize {
			return nil, fmt.Errorf("invalid board row (#%d): must be %d characters long", y, BoardSize)
		}
		for x, ch := range row {
			if ch == '.' || ch == ' ' {
				continue
			}
			isBlank := unicode.IsLower(ch)
			up := byte(unicode.ToUpper(ch))
			if up < 'A' || up > 'Z' {
				return nil, fmt.Errorf("invalid letter '%c' at %d,%d", ch, y, x)
			}
			t := Tile{Letter: LetterFromByte(up), IsBlank: isBlank}
			if ok := b.PlaceTile(x, y, t); !ok {
				return nil, fmt.Errorf("square already occupied: %d,%d", x, y)
			}
		}
	}
	// Rebuild the cross-check sets around every placed tile, as ApplyMove
	// does incrementally during play.
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.CellAt(x, y).Value.Filled {
				b.updateWordGaps(NewPosition(x, y), Horizontal)
				b.updateWordGaps(NewPosition(x, y), Vertical)
			}
		}
	}
	return b, nil
}

// rackFromString builds a TileBag from a rack string; '*' denotes an
// unassigned blank, everything else must be an upper-case letter.
func rackFromString(s string) (*TileBag, error) {
	rack := NewEmptyTileBag()
	runes := []rune(s)
	if len(runes) == 0 || len(runes) > RackSize {
		return nil, fmt.Errorf("invalid rack")
	}
	for _, c := range runes {
		switch {
		case c == '*':
			rack.AddBlank()
		case c >= 'A' && c <= 'Z':
			rack.AddLetter(LetterFromByte(byte(c)))
		default:
			return nil, fmt.Errorf("invalid rack letter '%c'", c)
		}
	}
	return rack, nil
}

// gameFromPosition assembles a single-player Game wrapping an
// already-built board and rack, for querying legal moves over a
// position submitted from outside rather than one the package itself
// has been playing. Its Bag is never drawn from: LegalMoves and
// ValidateMove only read the board and the current player's rack.
func gameFromPosition(v *Variant, board *Board, rack *TileBag) *Game {
	return &Game{
		variant:       v,
		NumPlayers:    1,
		Board:         board,
		Bag:           NewEmptyTileBag(),
		CurrentPlayer: 0,
		Winner:        -1,
		Players:       []*Player{{Kind: ComputerPlayer, Name: "query", Rack: rack}},
	}
}

// HandleMovesRequest handles an incoming /moves request: it resolves the
// named variant, rebuilds the submitted board and rack, and returns
// every legal move ranked by descending score.
func HandleMovesRequest(w http.ResponseWriter, req MovesRequest) {
	v, ok := VariantByName(req.Variant)
	if !ok {
		http.Error(w, "Unknown variant.\n", http.StatusBadRequest)
		return
	}

	rack, err := rackFromString(req.Rack)
	if err != nil {
		http.Error(w, err.Error()+".\n", http.StatusBadRequest)
		return
	}

	board, err := boardFromRows(v, DefaultDictionary(), req.Board)
	if err != nil {
		http.Error(w, err.Error()+".\n", http.StatusBadRequest)
		return
	}

	game := gameFromPosition(v, board, rack)
	legal := game.LegalMoves() // already sorted descending by score

	if req.Limit > 0 && req.Limit < len(legal) {
		legal = legal[:req.Limit]
	}

	moves := make([]MoveResponse, len(legal))
	for i, m := range legal {
		moves[i] = MoveResponse{
			Tiles: TileListString(m.Tiles),
			Coord: m.Anchor.String() + m.Direction.String(),
			Word:  board.ReadWordAt(m.Anchor, m.Direction),
			Score: m.Score,
		}
	}

	result := HeaderJson{
		Version: "1.0",
		Count:   len(moves),
		Moves:   moves,
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// okFalseResponse is the canned reply to a malformed /wordcheck request
var okFalseResponse = map[string]bool{"ok": false}

// WordCheckRequest describes an incoming /wordcheck request: the
// dictionary used is the process-wide default (there is only one
// word_exists oracle per process, unlike /moves' per-request variant).
type WordCheckRequest struct {
	Word  string   `json:"word"`
	Words []string `json:"words"`
}

// WordCheckResultPair pairs a checked word with its validity
type WordCheckResultPair [2]interface{}

// HandleWordCheckRequest handles a /wordcheck request: each word in
// req.Words is checked against the default dictionary.
func HandleWordCheckRequest(w http.ResponseWriter, req WordCheckRequest) {
	words := req.Words

	// A major-axis word plus up to BoardSize cross-axis words is the most
	// a single move could ever need checked.
	if len(words) == 0 || len(words) > BoardSize+1 {
		json.NewEncoder(w).Encode(okFalseResponse)
		return
	}

	dict := DefaultDictionary()
	allValid := true
	valid := make([]WordCheckResultPair, len(words))
	for i, word := range words {
		wordLen := len([]rune(word))
		if wordLen == 0 || wordLen > BoardSize {
			json.NewEncoder(w).Encode(okFalseResponse)
			return
		}
		found := dict.Exists(word)
		valid[i] = WordCheckResultPair{word, found}
		if !found {
			allValid = false
		}
	}

	result := map[string]interface{}{
		"word":  req.Word,
		"ok":    allValid,
		"valid": valid,
	}
	json.NewEncoder(w).Encode(result)
}
