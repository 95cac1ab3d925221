package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/punchcard/internal/card"
)

// Deck is a named set of cards defined in one deck.toml
type Deck struct {
	Name        string
	Description string
	Path        string

	// Cards in file order, and by ID for lookup
	Cards []Entry
	byID  map[string]int
}

// Entry is one card of a deck
type Entry struct {
	ID   string
	Card card.Card
}

// LoadDeck loads a deck file. path may name the file itself or a directory
// containing deck.toml.
func LoadDeck(path string) (*Deck, error) {
	deckTomlPath := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		deckTomlPath = filepath.Join(path, "deck.toml")
	}
	if _, err := os.Stat(deckTomlPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("deck file not found: %s", deckTomlPath)
	}

	var config DeckConfig
	if _, err := toml.DecodeFile(deckTomlPath, &config); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", deckTomlPath, err)
	}

	d := &Deck{
		Name:        config.Deck.Name,
		Description: config.Deck.Description,
		Path:        deckTomlPath,
		byID:        make(map[string]int),
	}
	if d.Name == "" {
		d.Name = filepath.Base(filepath.Dir(deckTomlPath))
	}

	for i, cc := range config.Cards {
		id := strings.TrimSpace(cc.ID)
		if id == "" {
			return nil, fmt.Errorf("card %d: id is required", i+1)
		}
		if strings.ContainsAny(id, `/\`) {
			return nil, fmt.Errorf("card %q: id must not contain path separators", id)
		}
		if _, dup := d.byID[id]; dup {
			return nil, fmt.Errorf("card %q: duplicate id", id)
		}

		c, err := card.New(cc.Header, cc.Footer)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", id, err)
		}

		d.byID[id] = len(d.Cards)
		d.Cards = append(d.Cards, Entry{ID: id, Card: c})
	}

	if len(d.Cards) == 0 {
		return nil, fmt.Errorf("deck %s has no cards", deckTomlPath)
	}

	return d, nil
}

// GetCard gets a card by its ID
func (d *Deck) GetCard(id string) (card.Card, error) {
	i, ok := d.byID[id]
	if !ok {
		return card.Card{}, fmt.Errorf("card not found: %s", id)
	}
	return d.Cards[i].Card, nil
}

// Deck configuration structures
type DeckConfig struct {
	Deck  DeckSection  `toml:"deck"`
	Cards []CardConfig `toml:"cards"`
}

type DeckSection struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

type CardConfig struct {
	ID     string `toml:"id"`
	Header string `toml:"header"`
	Footer string `toml:"footer"`
}
