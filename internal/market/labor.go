// internal/market/labor.go
package market

import (
	"math/rand"
	"strings"

	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/sirupsen/logrus"
)

// Decks is the slice of the deck manager the markets draw from.
type Decks interface {
	Draw(category models.Category, n int) []models.Card
	Discard(category models.Category, cards ...models.Card)
}

// LaborConfig sizes the labor market.
type LaborConfig struct {
	Rows           int             `yaml:"rows" json:"rows"`
	Columns        int             `yaml:"columns" json:"columns"`
	RowPrices      []int           `yaml:"row_prices" json:"row_prices"`
	InitialFill    int             `yaml:"initial_fill" json:"initial_fill"`
	WorkerCategory models.Category `yaml:"worker_category" json:"worker_category"`
}

// DefaultLaborConfig is a 12x4 market where row i costs i+1 and seven workers are
// dealt at setup.
func DefaultLaborConfig() LaborConfig {
	prices := make([]int, 12)
	for i := range prices {
		prices[i] = i + 1
	}
	return LaborConfig{
		Rows:           12,
		Columns:        4,
		RowPrices:      prices,
		InitialFill:    7,
		WorkerCategory: models.CategoryActionB,
	}
}

// workerNames maps worker card names, English or Chinese, to worker types.
var workerNames = map[string]models.WorkerType{
	"cowboy":  models.WorkerCowboy,
	"builder": models.WorkerBuilder,
	"driver":  models.WorkerDriver,
	"牛仔":      models.WorkerCowboy,
	"建筑工人":    models.WorkerBuilder,
	"司机":      models.WorkerDriver,
}

// LaborMarket is a conveyor of hireable workers. Cells are filled in row-major order
// at Cursor; hiring empties a cell but never moves the cursor.
type LaborMarket struct {
	Rows      int                   `json:"rows"`
	Columns   int                   `json:"columns"`
	RowPrices []int                 `json:"row_prices"`
	Cells     [][]models.WorkerType `json:"cells"`
	Cursor    int                   `json:"cursor"`

	initialFill int
	category    models.Category
	rng         *rand.Rand
	log         *logrus.Entry
}

// NewLaborMarket returns an empty market.
func NewLaborMarket(cfg LaborConfig, rng *rand.Rand) *LaborMarket {
	if cfg.WorkerCategory == "" {
		cfg.WorkerCategory = models.CategoryActionB
	}
	cells := make([][]models.WorkerType, cfg.Rows)
	for r := range cells {
		cells[r] = make([]models.WorkerType, cfg.Columns)
	}
	return &LaborMarket{
		Rows:        cfg.Rows,
		Columns:     cfg.Columns,
		RowPrices:   append([]int{}, cfg.RowPrices...),
		Cells:       cells,
		initialFill: cfg.InitialFill,
		category:    cfg.WorkerCategory,
		rng:         rng,
		log:         logrus.WithField("component", "labor_market"),
	}
}

// RestoreLaborMarket rebuilds a market from its serialized cells and cursor.
func RestoreLaborMarket(cfg LaborConfig, cells [][]models.WorkerType, cursor int, rng *rand.Rand) *LaborMarket {
	m := NewLaborMarket(cfg, rng)
	for r := 0; r < m.Rows && r < len(cells); r++ {
		copy(m.Cells[r], cells[r])
	}
	if cursor >= 0 && cursor <= m.Capacity() {
		m.Cursor = cursor
	}
	return m
}

// Capacity is the number of cells.
func (m *LaborMarket) Capacity() int { return m.Rows * m.Columns }

// Price returns the hiring price for a row. Rows past the configured prices pay the
// last listed price.
func (m *LaborMarket) Price(row int) int {
	if len(m.RowPrices) == 0 || row < 0 {
		return 0
	}
	if row >= len(m.RowPrices) {
		return m.RowPrices[len(m.RowPrices)-1]
	}
	return m.RowPrices[row]
}

func (m *LaborMarket) inBounds(row, col int) bool {
	return row >= 0 && row < m.Rows && col >= 0 && col < m.Columns
}

// Worker returns the worker waiting at (row, col), or WorkerNone.
func (m *LaborMarket) Worker(row, col int) models.WorkerType {
	if !m.inBounds(row, col) {
		return models.WorkerNone
	}
	return m.Cells[row][col]
}

// Occupied counts the filled cells.
func (m *LaborMarket) Occupied() int {
	n := 0
	for _, row := range m.Cells {
		for _, w := range row {
			if w != models.WorkerNone {
				n++
			}
		}
	}
	return n
}

// InitializeFromDeck deals the initial batch of workers starting at cell 0.
func (m *LaborMarket) InitializeFromDeck(decks Decks) {
	m.Cursor = 0
	for i := 0; i < m.initialFill; i++ {
		if !m.Refill(decks) {
			break
		}
	}
}

// Hire removes and returns the worker at (row, col). Empty cells and bad indices
// return WorkerNone and change nothing.
func (m *LaborMarket) Hire(row, col int) (models.WorkerType, bool) {
	w := m.Worker(row, col)
	if w == models.WorkerNone {
		return models.WorkerNone, false
	}
	m.Cells[row][col] = models.WorkerNone
	return w, true
}

// Refill draws one worker card and places its worker at the cursor, then advances the
// cursor. It returns false when the market is at capacity or the deck is empty.
func (m *LaborMarket) Refill(decks Decks) bool {
	if m.Cursor >= m.Capacity() {
		return false
	}
	cards := decks.Draw(m.category, 1)
	if len(cards) == 0 {
		return false
	}
	w := m.workerFor(cards[0])
	// the token now stands for the card, which goes back to the worker deck
	decks.Discard(m.category, cards...)

	row, col := m.Cursor/m.Columns, m.Cursor%m.Columns
	m.Cells[row][col] = w
	m.Cursor++
	return true
}

func (m *LaborMarket) workerFor(c models.Card) models.WorkerType {
	if w := models.WorkerType(c.MetaString("worker_type")); w != models.WorkerNone {
		for _, known := range models.WorkerTypes {
			if w == known {
				return w
			}
		}
	}
	if w, ok := workerNames[strings.ToLower(strings.TrimSpace(c.Name))]; ok {
		return w
	}
	w := models.WorkerTypes[m.rng.Intn(len(models.WorkerTypes))]
	m.log.WithFields(logrus.Fields{"card": c.Name, "worker": w}).Warn("unrecognized worker card, assigning random worker type")
	return w
}
