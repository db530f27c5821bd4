package entity

import "fmt"

// ObjectiveKind enumerates the predicates a mission can check.
type ObjectiveKind string

const (
	ObjectiveHasItem      ObjectiveKind = "has_item"
	ObjectiveMoneyAtLeast ObjectiveKind = "money_at_least"
)

// Objective is a serializable predicate over player state.
type Objective struct {
	Kind     ObjectiveKind `json:"kind" yaml:"kind"`
	Item     string        `json:"item,omitempty" yaml:"item,omitempty"`
	ItemKind Kind          `json:"item_kind,omitempty" yaml:"item_kind,omitempty"`
	Amount   int           `json:"amount,omitempty" yaml:"amount,omitempty"`
}

func (o Objective) String() string {
	switch o.Kind {
	case ObjectiveHasItem:
		return fmt.Sprintf("Obtain the %s", o.Item)
	case ObjectiveMoneyAtLeast:
		return fmt.Sprintf("Have at least $%d", o.Amount)
	}
	return string(o.Kind)
}

// Gate is an extra condition checked before a mission can complete.
// Hint is said while it is unmet, Ack once it is met.
type Gate struct {
	Objective Objective
	Hint      string
	Ack       string
}

// Mission is an immutable mission definition.
type Mission struct {
	Name          string
	Description   string
	Objective     Objective
	RewardMoney   int
	RewardItem    *Item
	Prerequisites []string
	Gate          *Gate
}
