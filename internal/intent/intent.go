// Package intent turns a customer's free-text or transcribed order into a
// structured intent over a business's menu.
package intent

import (
	"context"
	"fmt"
	"log"

	"github.com/comanda-pos/api/internal/database"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/google/uuid"
)

// removeAll is the quantity meaning "every unit of this product" in a
// REMOVE_ITEMS result.
const removeAll = 999

// MenuItem is the simplified menu a classifier sees.
type MenuItem struct {
	ID    uuid.UUID
	Name  string
	Alias string // comma separated, may be empty
}

// Entity is one product mentioned in the text.
type Entity struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type Result struct {
	Intent   string   `json:"intent"`
	Entities []Entity `json:"entities"`
}

// Unknown is the result used whenever classification fails.
func Unknown() Result {
	return Result{Intent: enum.IntentUnknown, Entities: []Entity{}}
}

// Classifier maps text to an intent over menu. Implementations may call
// external services.
type Classifier interface {
	Classify(ctx context.Context, menu []MenuItem, text string) (Result, error)
}

// MenuSource lists the active products of a business.
type MenuSource interface {
	ListMenuProducts(ctx context.Context, businessID uuid.UUID) ([]database.ListMenuProductsRow, error)
}

// Parser answers parse-order requests for any business.
type Parser struct {
	menus      MenuSource
	classifier Classifier
}

func NewParser(menus MenuSource, classifier Classifier) *Parser {
	return &Parser{menus: menus, classifier: classifier}
}

// Parse classifies text against the business's current menu. Classifier
// failures become Unknown; only menu lookup errors are returned.
func (p *Parser) Parse(ctx context.Context, businessID uuid.UUID, text string) (Result, error) {
	rows, err := p.menus.ListMenuProducts(ctx, businessID)
	if err != nil {
		return Result{}, fmt.Errorf("list menu: %w", err)
	}

	menu := make([]MenuItem, 0, len(rows))
	for _, r := range rows {
		menu = append(menu, MenuItem{ID: r.ID, Name: r.Name, Alias: r.Alias.String})
	}

	res, err := p.classifier.Classify(ctx, menu, text)
	if err != nil {
		log.Printf("WARN: classify order text for business %s: %v", businessID, err)
		return Unknown(), nil
	}
	return Interpret(res, menu), nil
}

// Interpret cleans a classifier result: unknown intents become UNKNOWN,
// entities naming products outside menu are dropped, and missing
// quantities are filled in.
func Interpret(res Result, menu []MenuItem) Result {
	if !knownIntent(res.Intent) {
		return Unknown()
	}

	onMenu := make(map[uuid.UUID]bool, len(menu))
	for _, m := range menu {
		onMenu[m.ID] = true
	}

	out := Result{Intent: res.Intent, Entities: []Entity{}}
	for _, e := range res.Entities {
		if !onMenu[e.ProductID] {
			continue
		}
		if e.Quantity < 1 {
			e.Quantity = defaultQuantity(res.Intent)
		}
		out.Entities = append(out.Entities, e)
	}
	return out
}

func defaultQuantity(intent string) int {
	if intent == enum.IntentRemoveItems {
		return removeAll
	}
	return 1
}

func knownIntent(s string) bool {
	switch s {
	case enum.IntentAddItems, enum.IntentModifyQuantity, enum.IntentRemoveItems,
		enum.IntentResetOrder, enum.IntentNotFound, enum.IntentUnknown:
		return true
	}
	return false
}
