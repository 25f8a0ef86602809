package models

import "fmt"

// Selection identifies a product slot in the vending machine.
// The set of selections is closed; the catalog may not introduce new ones.
type Selection string

const (
	Soda        Selection = "Soda"
	DietSoda    Selection = "DietSoda"
	Chips       Selection = "Chips"
	Cookie      Selection = "Cookie"
	Sandwich    Selection = "Sandwich"
	Wrap        Selection = "Wrap"
	CandyBar    Selection = "CandyBar"
	PopTart     Selection = "PopTart"
	Water       Selection = "Water"
	FruitJuice  Selection = "FruitJuice"
	SportsDrink Selection = "SportsDrink"
	Gum         Selection = "Gum"
)

// displayOrder is the order in which selections appear on the machine front.
var displayOrder = []Selection{
	Soda, DietSoda, Chips, Cookie, Sandwich, Wrap,
	CandyBar, PopTart, Water, FruitJuice, SportsDrink, Gum,
}

var knownSelections = func() map[Selection]int {
	m := make(map[Selection]int, len(displayOrder))
	for i, s := range displayOrder {
		m[s] = i
	}
	return m
}()

// Selections returns every known selection in display order.
// The returned slice is a copy and may be modified by the caller.
func Selections() []Selection {
	out := make([]Selection, len(displayOrder))
	copy(out, displayOrder)
	return out
}

// ParseSelection converts a catalog or request key into a Selection
func ParseSelection(key string) (Selection, error) {
	s := Selection(key)
	if !s.Valid() {
		return "", fmt.Errorf("unknown selection %q", key)
	}
	return s, nil
}

// Valid reports whether s is one of the known selections.
func (s Selection) Valid() bool {
	_, ok := knownSelections[s]
	return ok
}

// DisplayIndex returns the position of s on the machine front, or -1.
func (s Selection) DisplayIndex() int {
	if i, ok := knownSelections[s]; ok {
		return i
	}
	return -1
}

func (s Selection) String() string {
	return string(s)
}
