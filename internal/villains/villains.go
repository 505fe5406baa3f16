// internal/villains/villains.go
//
// Provides the villain catalog for the game engine.
//
// Responsibilities:
//   - Load the catalog from an environment-provided file or fall back to the
//     embedded default set.
//   - Validate catalog integrity (non-empty, unique IDs, unique names).
//   - Supply lookup helpers: All, ByID, ByName, FilterPrefix, Count.
//
// Catalog:
//   - Ordered and immutable for the lifetime of a day's session; the order of
//     entries feeds the daily selector, so it must stay stable across calls.
//   - Identity is the ID field only. Names are for user-facing matching and
//     are normalized (trimmed, lowercased) before lookup.
//
// Initialization behavior (Init):
//   1. If CATALOG_FILE is set, load the catalog from that JSON file.
//   2. Otherwise, fall back to the embedded default catalog.
//
// Environment variables:
//   CATALOG_FILE=/path/to/catalog.json

package villains

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

//go:embed catalog.json
var embeddedCatalog []byte

// OrganizationNone is the sentinel value for villains without an affiliation.
// The comparator treats it as a plain categorical value rather than running
// the substring rule against it.
const OrganizationNone = "None"

// Villain is one catalog entry the player may guess.
type Villain struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Universe            string   `json:"universe"`
	Gender              string   `json:"gender"`
	Species             string   `json:"species"`
	Type                string   `json:"type"`
	Organization        string   `json:"organization"`
	Powers              []string `json:"powers"`
	Weaknesses          []string `json:"weaknesses"`
	FirstAppearanceYear int      `json:"firstAppearanceYear"`
	Alignment           string   `json:"alignment"`
}

var (
	mu      sync.RWMutex
	catalog []Villain
	byID    map[string]Villain
	byName  map[string]Villain // keyed by normalized name
)

// Init loads the catalog from CATALOG_FILE or the embedded default.
// Returns an error if the resulting catalog is empty or inconsistent;
// that error is fatal to game start.
func Init() error {
	if path := os.Getenv("CATALOG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read catalog %s: %w", path, err)
		}
		return loadRaw(raw)
	}
	return loadRaw(embeddedCatalog)
}

// loadRaw parses JSON catalog bytes and installs them via Load.
func loadRaw(raw []byte) error {
	var list []Villain
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}
	return Load(list)
}

// Load replaces the active catalog after validating it.
// Validation rules:
//   - catalog must be non-empty
//   - IDs must be non-empty and unique
//   - names must be non-empty and unique after normalization
func Load(list []Villain) error {
	if len(list) == 0 {
		return errors.New("villains: catalog is empty")
	}
	ids := make(map[string]Villain, len(list))
	names := make(map[string]Villain, len(list))
	for _, v := range list {
		if v.ID == "" {
			return fmt.Errorf("villains: %q has no id", v.Name)
		}
		if _, dup := ids[v.ID]; dup {
			return fmt.Errorf("villains: duplicate id %q", v.ID)
		}
		key := normalizeName(v.Name)
		if key == "" {
			return fmt.Errorf("villains: %q has no name", v.ID)
		}
		if _, dup := names[key]; dup {
			return fmt.Errorf("villains: duplicate name %q", v.Name)
		}
		ids[v.ID] = v
		names[key] = v
	}

	mu.Lock()
	defer mu.Unlock()
	catalog = append([]Villain(nil), list...)
	byID = ids
	byName = names
	return nil
}

// normalizeName trims and lowercases a display name for lookup.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// All returns the catalog in its stable order.
// The returned slice is a copy; callers cannot mutate the catalog.
func All() []Villain {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Villain(nil), catalog...)
}

// Count reports the number of catalog entries.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(catalog)
}

// ByID looks up a villain by its stable identifier.
func ByID(id string) (Villain, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := byID[id]
	return v, ok
}

// ByName looks up a villain by display name, case-insensitively.
// Leading/trailing whitespace in the query is ignored.
func ByName(name string) (Villain, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := byName[normalizeName(name)]
	return v, ok
}

// FilterPrefix returns catalog entries whose name starts with prefix,
// case-insensitively, preserving catalog order. An empty prefix returns
// the full catalog. Used by the autocomplete widget.
func FilterPrefix(prefix string) []Villain {
	p := normalizeName(prefix)
	mu.RLock()
	defer mu.RUnlock()
	if p == "" {
		return append([]Villain(nil), catalog...)
	}
	var out []Villain
	for _, v := range catalog {
		if strings.HasPrefix(strings.ToLower(v.Name), p) {
			out = append(out, v)
		}
	}
	return out
}
