// go-app/main.go
// App Engine main package for the skrafl moves/wordcheck server
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"

	"github.com/joho/godotenv"

	skrafl "github.com/jsigurd/skraflcore"
)

// Bearer authorization token, if any
var ACCESS_KEY string

// Corresponding Authorization header (or "" if no auth required)
var AUTH_HEADER string

func withAuth(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
			return
		}
		if AUTH_HEADER != "" {
			authHeader := r.Header.Get("Authorization")
			if authHeader != AUTH_HEADER {
				http.Error(w,
					fmt.Sprintf("Authorization header mismatch: got '%s'", authHeader),
					http.StatusUnauthorized,
				)
				return
			}
		}
		h(w, r)
	}
}

func movesHandler(w http.ResponseWriter, r *http.Request) {
	var req skrafl.MovesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	skrafl.HandleMovesRequest(w, req)
}

func wordCheckHandler(w http.ResponseWriter, r *http.Request) {
	var req skrafl.WordCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	skrafl.HandleWordCheckRequest(w, req)
}

func warmup(w http.ResponseWriter, r *http.Request) {
	log.Println("Warmup request received")
}

func main() {
	log.SetOutput(os.Stderr)
	log.Printf("Moves service starting, Go version %s", runtime.Version())

	// .env is optional: in App Engine the environment is already
	// populated, so a missing file here is not an error.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	ACCESS_KEY = os.Getenv("ACCESS_KEY")
	if ACCESS_KEY != "" {
		AUTH_HEADER = "Bearer " + ACCESS_KEY
	}

	// Force-load the default dictionary now rather than on first request,
	// so a bad SKRAFL_DICTIONARY_PATH fails fast at startup.
	skrafl.DefaultDictionary()

	http.HandleFunc("/_ah/warmup", warmup)
	http.HandleFunc("/moves", withAuth(movesHandler))
	http.HandleFunc("/wordcheck", withAuth(wordCheckHandler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Listening on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}
