// dictionary.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the word_exists oracle: a process-wide,
// lazily-initialised, read-only set of legal words, plus the LRU cache
// that memoizes the repeated per-letter dictionary probes
// update_word_gaps performs while refreshing cross-check sets.

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
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// Dictionary is a read-only membership oracle over a word list, built
// once from a whitespace-separated word file (reference corpus:
// SOWPODS). All queries are case-sensitive upper-case, per §6.2.
type Dictionary struct {
	words map[string]struct{}
}

// LoadDictionary reads path (whitespace-separated words) into a
// Dictionary. It panics on a missing or unreadable file: a dictionary
// that fails to load is an unrecoverable startup configuration error,
// the same way the teacher's makeDawg panics on a bad DAWG file.
func LoadDictionary(path string) *Dictionary {
	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	words := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		words[strings.ToUpper(scanner.Text())] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		panic(err)
	}
	return &Dictionary{words: words}
}

// NewDictionary builds a Dictionary directly from a word list, bypassing
// LoadDictionary's file I/O. Every word is upper-cased, matching the
// case-sensitivity LoadDictionary applies to a word file.
func NewDictionary(words []string) *Dictionary {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[strings.ToUpper(w)] = struct{}{}
	}
	return &Dictionary{words: m}
}

// Exists reports whether word, upper-case ASCII, is in the dictionary
func (d *Dictionary) Exists(word string) bool {
	_, ok := d.words[word]
	return ok
}

// dictionaryPathEnv names the environment variable the lazily-loaded
// package dictionary globals read their word file path from.
const dictionaryPathEnv = "SKRAFL_DICTIONARY_PATH"

var (
	defaultDictionaryOnce sync.Once
	defaultDictionary     *Dictionary
)

// DefaultDictionary lazily loads, once per process, the dictionary
// named by SKRAFL_DICTIONARY_PATH (or "sowpods.txt" if unset), mirroring
// the teacher's lazy package-level Dawg globals (OtcwlDictionary,
// SowpodsDictionary, ...).
func DefaultDictionary() *Dictionary {
	defaultDictionaryOnce.Do(func() {
		path := os.Getenv(dictionaryPathEnv)
		if path == "" {
			path = "sowpods.txt"
		}
		defaultDictionary = LoadDictionary(path)
	})
	return defaultDictionary
}

// crossCheckCache memoizes the LetterSet a gap refresh computes for a
// given (side, centralWord, neighbourWord) triple, exactly as the
// teacher's dawg.go crossCache memoizes a DAWG traversal for a given
// matching pattern — same concern (a small, repeatedly recomputed local
// lookup), same library.
type crossCheckCache struct {
	mu  sync.Mutex
	lru *simplelru.LRU
}

func newCrossCheckCache(size int) *crossCheckCache {
	lru, _ := simplelru.NewLRU(size, nil)
	return &crossCheckCache{lru: lru}
}

// lookup returns the cached LetterSet for key, computing and storing it
// via fetch on a miss.
func (c *crossCheckCache) lookup(key string, fetch func() LetterSet) LetterSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.lru.Get(key); ok {
		return v.(LetterSet)
	}
	ls := fetch()
	c.lru.Add(key, ls)
	return ls
}
