// main.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson

// Example main program for exercising the skrafl module

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	skrafl "github.com/jsigurd/skraflcore"
)

// simulateGame plays robot A against robot B to completion, printing
// each move record as it goes unless verbose is false.
func simulateGame(v *skrafl.Variant, dict *skrafl.Dictionary,
	robotA, robotB skrafl.Robot, verbose bool) (scoreA, scoreB int) {

	var p func(string, ...interface{}) (int, error)
	if verbose {
		p = fmt.Printf
	} else {
		p = func(format string, a ...interface{}) (int, error) { return 0, nil }
	}

	game := skrafl.NewGame(v, dict, rand.New(rand.NewSource(rand.Int63())),
		[]string{"Robot A", "Robot B"},
		[]skrafl.PlayerKind{skrafl.ComputerPlayer, skrafl.ComputerPlayer})

	for i := 0; ; i++ {
		robot := robotA
		if i%2 != 0 {
			robot = robotB
		}
		skrafl.TakeTurn(game, robot)
		if move, ok := game.LastMove(); ok {
			p("%v\n", move)
		}
		if game.IsOver {
			p("Game over!\n\n")
			break
		}
	}
	return game.Players[0].Score, game.Players[1].Score
}

func main() {
	variantName := flag.String("v", "official", "Rule variant to use (official, wordfeud)")
	dictPath := flag.String("d", "sowpods.txt", "Path to the dictionary word list")
	num := flag.Int("n", 10, "Number of games to simulate")
	quiet := flag.Bool("q", false, "Suppress output of game state and moves")
	flag.Parse()

	variant, ok := skrafl.VariantByName(*variantName)
	if !ok {
		fmt.Printf("Unknown variant '%v'. Specify one of 'official' or 'wordfeud'.\n", *variantName)
		os.Exit(1)
	}
	dict := skrafl.LoadDictionary(*dictPath)

	robotA := skrafl.NewHighScoreRobot()
	robotB := skrafl.NewHighScoreRobot()
	var winsA, winsB int
	for i := 0; i < *num; i++ {
		scoreA, scoreB := simulateGame(variant, dict, robotA, robotB, !*quiet)
		switch {
		case scoreA > scoreB:
			winsA++
		case scoreB > scoreA:
			winsB++
		}
	}
	fmt.Printf("%v games were played using the '%v' variant.\n"+
		"Robot A won %v games, and Robot B won %v games; %v games were draws.\n",
		*num, *variantName,
		winsA, winsB, *num-winsA-winsB)
}
