package content

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"vocabville/internal/models"
)

const fetchTimeout = 10 * time.Second

// Loader resolves per-(dimension, biome) word-list documents. It tries a
// local directory first, then an optional remote base URL, and falls back
// to a small built-in list so a session can always run.
type Loader struct {
	dir     string
	baseURL string
	client  *http.Client
}

// NewLoader creates a word content loader
func NewLoader(dir, baseURL string) *Loader {
	return &Loader{
		dir:     dir,
		baseURL: baseURL,
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

// Words returns the word cards for a scope. The second result is true when
// the built-in placeholder list was used because no document could be
// loaded.
func (l *Loader) Words(dimension, biome string) ([]models.WordCard, bool) {
	if cards, err := l.fromFile(dimension, biome); err == nil {
		return cards, false
	} else if !os.IsNotExist(err) {
		log.Printf("Warning: could not read words for %s/%s: %v", dimension, biome, err)
	}

	if l.baseURL != "" {
		cards, err := l.fromURL(dimension, biome)
		if err == nil {
			return cards, false
		}
		log.Printf("Warning: could not fetch words for %s/%s: %v", dimension, biome, err)
	}

	return PlaceholderWords(), true
}

func (l *Loader) fromFile(dimension, biome string) ([]models.WordCard, error) {
	path := filepath.Join(l.dir, dimension, biome+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeCards(data)
}

func (l *Loader) fromURL(dimension, biome string) ([]models.WordCard, error) {
	url := fmt.Sprintf("%s/words/%s/%s.json", l.baseURL, dimension, biome)

	resp, err := l.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return decodeCards(data)
}

func decodeCards(data []byte) ([]models.WordCard, error) {
	var raw []models.WordCard
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode word list: %w", err)
	}
	return Normalize(raw), nil
}

// Normalize cleans an authored word list: entries without a term are
// dropped, missing fields default to empty, and option lists are clipped
// to four entries. Fewer than four options is tolerated.
func Normalize(raw []models.WordCard) []models.WordCard {
	out := make([]models.WordCard, 0, len(raw))
	for _, w := range raw {
		if w.Term == "" {
			continue
		}
		w.Synonyms.Options = clipOptions(w.Synonyms.Options)
		w.Antonyms.Options = clipOptions(w.Antonyms.Options)
		out = append(out, w)
	}
	return out
}

func clipOptions(opts []string) []string {
	if opts == nil {
		return []string{}
	}
	if len(opts) > 4 {
		return opts[:4]
	}
	return opts
}

// PlaceholderWords is the built-in fallback list used when the word
// content for a biome cannot be loaded.
func PlaceholderWords() []models.WordCard {
	return []models.WordCard{
		{
			Term:       "courage",
			Definition: "The ability to face fear or danger.",
			Synonyms: models.MCQ{
				Correct: "bravery",
				Options: []string{"bravery", "fear", "panic", "doubt"},
			},
			Antonyms: models.MCQ{
				Correct: "fear",
				Options: []string{"fear", "valor", "boldness", "pluck"},
			},
		},
		{
			Term:       "ancient",
			Definition: "Belonging to the very distant past.",
			Synonyms: models.MCQ{
				Correct: "old",
				Options: []string{"old", "modern", "current", "new"},
			},
			Antonyms: models.MCQ{
				Correct: "modern",
				Options: []string{"modern", "elderly", "antique", "archaic"},
			},
		},
	}
}
