// internal/market/future.go
package market

import (
	"github.com/jason-s-yu/cattledrive/internal/models"
)

// FutureRows is the fixed number of rows in the future area.
const FutureRows = 2

// DefaultFutureColumns are the categories of the three future-area columns.
func DefaultFutureColumns() []models.Category {
	return []models.Category{models.CategoryActionA, models.CategoryActionB, models.CategoryActionC}
}

// FutureArea is a grid of face-up cards. Each column is fed by one category and a
// taken card is replaced at once from that column's category.
type FutureArea struct {
	Columns []models.Category          `json:"columns"`
	Grid    [FutureRows][]*models.Card `json:"grid"`
}

// NewFutureArea returns an empty area with one column per category.
func NewFutureArea(columns []models.Category) *FutureArea {
	f := &FutureArea{Columns: append([]models.Category{}, columns...)}
	for r := range f.Grid {
		f.Grid[r] = make([]*models.Card, len(columns))
	}
	return f
}

// Initialize fills both rows of every column.
func (f *FutureArea) Initialize(decks Decks) {
	for col, cat := range f.Columns {
		cards := decks.Draw(cat, FutureRows)
		for row := range cards {
			c := cards[row]
			f.Grid[row][col] = &c
		}
	}
}

func (f *FutureArea) inBounds(row, col int) bool {
	return row >= 0 && row < FutureRows && col >= 0 && col < len(f.Columns)
}

// Card returns the card at (row, col), or nil.
func (f *FutureArea) Card(row, col int) *models.Card {
	if !f.inBounds(row, col) {
		return nil
	}
	return f.Grid[row][col]
}

// TakeCard removes the card at (row, col) and refills the cell from the column's
// category. An empty cell returns nil and draws nothing.
func (f *FutureArea) TakeCard(row, col int, decks Decks) *models.Card {
	taken := f.Card(row, col)
	if taken == nil {
		return nil
	}
	f.Grid[row][col] = nil
	if cards := decks.Draw(f.Columns[col], 1); len(cards) == 1 {
		c := cards[0]
		f.Grid[row][col] = &c
	}
	return taken
}

// Full reports whether every cell holds a card.
func (f *FutureArea) Full() bool {
	for _, row := range f.Grid {
		for _, c := range row {
			if c == nil {
				return false
			}
		}
	}
	return true
}

// Cards returns every card currently in the grid.
func (f *FutureArea) Cards() []models.Card {
	var out []models.Card
	for _, row := range f.Grid {
		for _, c := range row {
			if c != nil {
				out = append(out, *c)
			}
		}
	}
	return out
}
