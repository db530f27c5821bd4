package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleLink(t *testing.T) {
	p := NewPlayer("CJ", Position{X: 4, Y: 4}, 10, 10)
	v := NewVehicle("Green Sabre", Position{X: 5, Y: 4}, 100, 3)
	other := NewVehicle("Police Car", Position{X: 3, Y: 4}, 120, 4)

	require.NoError(t, v.Enter(p))
	assert.Same(t, v, p.Vehicle)
	assert.Same(t, p, v.Occupant)
	assert.Equal(t, v.Pos, p.Pos)

	assert.ErrorIs(t, other.Enter(p), ErrAlreadyDriving)
	assert.Nil(t, other.Occupant)

	p.SetPosition(Position{X: 6, Y: 4})
	assert.Equal(t, Position{X: 6, Y: 4}, v.Pos)
	assert.Equal(t, v.Pos, p.Pos)

	assert.ErrorIs(t, other.Exit(p, Position{}), ErrNotDriving)
	require.NoError(t, v.Exit(p, Position{X: 7, Y: 4}))
	assert.Nil(t, p.Vehicle)
	assert.Nil(t, v.Occupant)
	assert.Equal(t, Position{X: 7, Y: 4}, p.Pos)
	assert.Equal(t, Position{X: 6, Y: 4}, v.Pos)
}

func TestVehicleOccupied(t *testing.T) {
	a := NewPlayer("CJ", Position{}, 10, 10)
	b := NewPlayer("Sweet", Position{}, 10, 10)
	v := NewVehicle("Green Sabre", Position{X: 1}, 100, 3)
	require.NoError(t, v.Enter(a))
	assert.ErrorIs(t, v.Enter(b), ErrVehicleOccupied)
	assert.Nil(t, b.Vehicle)
}

func TestBigSmokeFootprint(t *testing.T) {
	n := NewBigSmoke("Big Smoke", "", Position{X: 20, Y: 15})
	assert.Equal(t, KindBigSmoke, n.GetKind())
	assert.Equal(t, []Position{{X: 20, Y: 15}, {X: 21, Y: 15}}, n.Footprint())

	sweet := NewNPC("Sweet", "", Position{X: 5, Y: 5})
	assert.Equal(t, []Position{{X: 5, Y: 5}}, sweet.Footprint())
}

func TestShopSell(t *testing.T) {
	shop := NewShop("Ammu-Nation", "Ammu-Nation", Position{X: 70, Y: 5}).
		Stock(NewWeapon("Knife", "A sharp blade.", 10, 50), 50)
	buyer := NewPlayer("CJ", Position{}, 10, 10)
	buyer.Money = 60

	it, err := shop.Sell(0, &buyer.Character)
	require.NoError(t, err)
	assert.Equal(t, "Knife", it.Name)
	assert.NotSame(t, shop.Catalog[0].Item, it)
	assert.Equal(t, 10, buyer.Money)

	_, err = shop.Sell(0, &buyer.Character)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	_, err = shop.Sell(3, &buyer.Character)
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Len(t, buyer.Inventory, 1)
}
