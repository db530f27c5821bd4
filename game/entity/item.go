package entity

// Item is a pickup, shop ware or inventory entry. Variant decides which
// effect field applies: Damage for weapons, Heal for health packs, Amount for
// money bundles, Hunger for food and Thirst for drinks.
type Item struct {
	Base
	Variant     Kind
	Description string
	Value       int
	Damage      int
	Heal        int
	Amount      int
	Hunger      int
	Thirst      int
}

var itemGlyphs = map[Kind]string{
	KindItem:        "I",
	KindWeapon:      "W",
	KindHealthPack:  "H",
	KindMoneyBundle: "$",
	KindFood:        "F",
	KindDrink:       "D",
}

// NewItem creates an item of the given variant with its default glyph.
func NewItem(kind Kind, name, description string, value int) *Item {
	if !kind.IsItem() {
		kind = KindItem
	}
	return &Item{
		Base:        Base{Name: name, Glyph: itemGlyphs[kind]},
		Variant:     kind,
		Description: description,
		Value:       value,
	}
}

func NewWeapon(name, description string, damage, value int) *Item {
	it := NewItem(KindWeapon, name, description, value)
	it.Damage = damage
	return it
}

func NewHealthPack(name, description string, heal, value int) *Item {
	it := NewItem(KindHealthPack, name, description, value)
	it.Heal = heal
	return it
}

func NewMoneyBundle(name, description string, amount int) *Item {
	it := NewItem(KindMoneyBundle, name, description, amount)
	it.Amount = amount
	return it
}

func NewFood(name, description string, hunger, value int) *Item {
	it := NewItem(KindFood, name, description, value)
	it.Hunger = hunger
	return it
}

func NewDrink(name, description string, thirst, value int) *Item {
	it := NewItem(KindDrink, name, description, value)
	it.Thirst = thirst
	return it
}

func (it *Item) GetKind() Kind {
	if it.Variant == "" {
		return KindItem
	}
	return it.Variant
}

// At places the item on the map and returns it.
func (it *Item) At(pos Position) *Item {
	it.Pos = pos
	return it
}

// Clone returns an independent copy, used when a shop hands out a template.
func (it *Item) Clone() *Item {
	cp := *it
	return &cp
}

// Consumable reports whether using the item uses it up.
func (it *Item) Consumable() bool {
	switch it.GetKind() {
	case KindHealthPack, KindFood, KindDrink:
		return true
	}
	return false
}

// Listing is one catalog line of a shop.
type Listing struct {
	Item  *Item
	Price int
}

// Shop sells copies of its catalog items.
type Shop struct {
	Base
	Category string
	Catalog  []Listing
}

// NewShop creates an empty shop.
func NewShop(name, category string, pos Position) *Shop {
	return &Shop{
		Base:     Base{Name: name, Pos: pos, Glyph: "S"},
		Category: category,
	}
}

func (s *Shop) GetKind() Kind { return KindShop }

// Stock appends a catalog entry.
func (s *Shop) Stock(it *Item, price int) *Shop {
	s.Catalog = append(s.Catalog, Listing{Item: it, Price: price})
	return s
}

// Sell charges buyer for the listing at index (zero based) and hands over a
// copy of the item.
func (s *Shop) Sell(index int, buyer *Character) (*Item, error) {
	if index < 0 || index >= len(s.Catalog) {
		return nil, ErrInvalidChoice
	}
	l := s.Catalog[index]
	if err := buyer.Spend(l.Price); err != nil {
		return nil, err
	}
	it := l.Item.Clone()
	buyer.AddItem(it)
	return it, nil
}
