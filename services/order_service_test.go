package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderComputesTotalsAndCommission(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	buyer := f.buyer(t)
	a := f.product(t, farmer.ID, "Tomatoes", entity.CategoryVegetables, 80, 200)
	b := f.product(t, farmer.ID, "Onions", entity.CategoryVegetables, 70, 300)

	o, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{
		Items: []OrderItemIn{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 3},
		},
		DeliveryAddress: "Westlands, Nairobi",
		Notes:           "morning delivery",
	})
	require.NoError(t, err)

	assert.True(t, o.TotalAmount.Equal(dec("370")), "total %s", o.TotalAmount)
	assert.True(t, o.Commission.Equal(dec("37")), "commission %s", o.Commission)
	assert.True(t, o.SellerNet().Equal(dec("333")), "net %s", o.SellerNet())
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Equal(t, buyer.ID, o.BuyerID)
	assert.Equal(t, farmer.ID, o.SellerID)
	assert.Regexp(t, `^ORD-20260315-[0-9A-F]{8}$`, o.OrderNumber)

	require.Len(t, o.Items, 2)
	assert.Equal(t, a.ID, o.Items[0].ProductID)
	assert.True(t, o.Items[0].PricePerUnit.Equal(dec("80")))
	assert.True(t, o.Items[0].Subtotal.Equal(dec("160")))
	assert.True(t, o.Items[1].Subtotal.Equal(dec("210")))
	require.NotNil(t, o.Items[0].Product)
	assert.Equal(t, "Tomatoes", o.Items[0].Product.Name)

	require.NotNil(t, o.Delivery)
	assert.Equal(t, entity.DeliveryPending, o.Delivery.Status)
	require.NotNil(t, o.Buyer)
	require.NotNil(t, o.Seller)
	assert.Equal(t, farmer.Email, o.Seller.Email)

	assert.Equal(t, 198.0, f.reloadProduct(t, a.ID).Quantity)
	assert.Equal(t, 297.0, f.reloadProduct(t, b.ID).Quantity)
}

func TestPlaceOrderNotifiesSeller(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	buyer := f.buyer(t)
	a := f.product(t, farmer.ID, "Tomatoes", entity.CategoryVegetables, 80, 200)
	b := f.product(t, farmer.ID, "Onions", entity.CategoryVegetables, 70, 300)

	o, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{
		{ProductID: a.ID, Quantity: 2}, {ProductID: b.ID, Quantity: 3},
	}})
	require.NoError(t, err)

	notes, err := f.notifications.List(f.ctx, farmer.ID, false)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "New Order Received", notes[0].Title)
	assert.Equal(t, fmt.Sprintf("You have a new order #%s for KES 370", o.OrderNumber), notes[0].Message)
	assert.Equal(t, entity.NotificationOrderUpdate, notes[0].Type)
	assert.Equal(t, fmt.Sprintf("/orders/%d", o.ID), notes[0].Link)
	assert.False(t, notes[0].IsRead)

	require.Len(t, f.notifier.pushed, 1)
	assert.Equal(t, farmer.ID, f.notifier.pushed[0].UserID)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, o.OrderNumber, f.events.keys[0])
	ev, ok := f.events.events[0].(mq.OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, mq.EventOrderCreated, ev.EventType)
	assert.Equal(t, o.ID, ev.Payload.ID)
	assert.True(t, ev.Payload.Commission.Equal(dec("37")))
	assert.Len(t, ev.Payload.Items, 2)
}

func TestPlaceOrderSucceedsWhenPublishFails(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")
	farmer := f.farmer(t, entity.TierFree)
	buyer := f.buyer(t)
	a := f.product(t, farmer.ID, "Tomatoes", entity.CategoryVegetables, 80, 10)

	_, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: a.ID, Quantity: 1}}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.count(t, &entity.Order{}))
}

func TestOrderItemsKeepPriceAtPlacement(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	buyer := f.buyer(t)
	a := f.product(t, farmer.ID, "Tomatoes", entity.CategoryVegetables, 80, 200)

	o, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: a.ID, Quantity: 2}}})
	require.NoError(t, err)

	newPrice := dec("120")
	_, err = f.products.Update(f.ctx, farmer.ID, a.ID, UpdateProductInput{PricePerUnit: &newPrice})
	require.NoError(t, err)

	again, err := f.orders.Get(f.ctx, buyer.ID, o.ID)
	require.NoError(t, err)
	assert.True(t, again.Items[0].PricePerUnit.Equal(dec("80")))
	assert.True(t, again.Items[0].Subtotal.Equal(dec("160")))
	assert.True(t, again.TotalAmount.Equal(dec("160")))
}

func TestCommissionFollowsSellerTier(t *testing.T) {
	cases := []struct {
		tier       entity.Tier
		commission string
	}{
		{entity.TierFree, "100"},
		{entity.TierPremium, "70"},
		{entity.TierEnterprise, "50"},
		{"", "100"}, // no subscription row bills at FREE
	}
	for _, tc := range cases {
		t.Run(string(tc.tier), func(t *testing.T) {
			f := newFixture(t)
			farmer := f.farmer(t, tc.tier)
			buyer := f.buyer(t)
			p := f.product(t, farmer.ID, "Maize", entity.CategoryGrains, 250, 100)

			o, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: p.ID, Quantity: 4}}})
			require.NoError(t, err)
			assert.True(t, o.TotalAmount.Equal(dec("1000")))
			assert.True(t, o.Commission.Equal(dec(tc.commission)), "commission %s", o.Commission)
		})
	}
}

func TestCommissionRoundsToCents(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierPremium)
	buyer := f.buyer(t)
	p := f.product(t, farmer.ID, "Milk", entity.CategoryDairy, 61, 100)

	// 1.5 x 61 = 91.5; 7% = 6.405
	o, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: p.ID, Quantity: 1.5}}})
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.Equal(dec("91.5")))
	assert.True(t, o.Commission.Equal(dec("6.41")), "commission %s", o.Commission)
}

func TestFractionalQuantitiesKeepExactSubtotals(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	buyer := f.buyer(t)
	p := f.product(t, farmer.ID, "Honey", entity.CategoryOther, 80, 10)
	require.NoError(t, f.db.Model(&entity.Product{}).Where("id = ?", p.ID).Update("price_per_unit", dec("80.25")).Error)

	o, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{
		{ProductID: p.ID, Quantity: 1.5},
		{ProductID: p.ID, Quantity: 0.5},
	}})
	require.NoError(t, err)

	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].Subtotal.Equal(dec("120.375")), "line 1 %s", o.Items[0].Subtotal)
	assert.True(t, o.Items[1].Subtotal.Equal(dec("40.125")), "line 2 %s", o.Items[1].Subtotal)
	assert.True(t, o.TotalAmount.Equal(dec("160.5")), "total %s", o.TotalAmount)
	// 10% of 160.5
	assert.True(t, o.Commission.Equal(dec("16.05")), "commission %s", o.Commission)
	assert.Equal(t, 8.0, f.reloadProduct(t, p.ID).Quantity)
}

func TestPlaceOrderLimitsQuantityPrecision(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	buyer := f.buyer(t)
	p := f.product(t, farmer.ID, "Milk", entity.CategoryDairy, 60, 10)

	_, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: p.ID, Quantity: 0.0005}}})
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Zero(t, f.count(t, &entity.Order{}))

	_, err = f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: p.ID, Quantity: 0.125}}})
	assert.NoError(t, err)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	f := newFixture(t)
	buyer := f.buyer(t)

	_, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{})
	require.ErrorIs(t, err, ErrEmptyOrder)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "No items in order", err.Error())
	assert.Zero(t, f.count(t, &entity.Order{}))
}

func TestPlaceOrderRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	buyer := f.buyer(t)
	p := f.product(t, farmer.ID, "Maize", entity.CategoryGrains, 250, 100)

	_, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: p.ID, Quantity: 0}}})
	assert.True(t, IsKind(err, KindValidation))
	assert.Zero(t, f.count(t, &entity.Order{}))
}

// A later line failing must leave no trace of the earlier ones.
func assertNothingWritten(t *testing.T, f *fixture) {
	t.Helper()
	assert.Zero(t, f.count(t, &entity.Order{}))
	assert.Zero(t, f.count(t, &entity.OrderItem{}))
	assert.Zero(t, f.count(t, &entity.Delivery{}))
	assert.Zero(t, f.count(t, &entity.Notification{}))
	assert.Empty(t, f.notifier.pushed)
	assert.Empty(t, f.events.events)
}

func TestPlaceOrderWithUnavailableProductWritesNothing(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	buyer := f.buyer(t)
	a := f.product(t, farmer.ID, "Tomatoes", entity.CategoryVegetables, 80, 200)
	b := f.product(t, farmer.ID, "Onions", entity.CategoryVegetables, 70, 300)
	f.delist(t, b.ID)

	_, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{
		{ProductID: a.ID, Quantity: 2}, {ProductID: b.ID, Quantity: 3},
	}})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, fmt.Sprintf("Product %d not available", b.ID), err.Error())

	assertNothingWritten(t, f)
	assert.Equal(t, 200.0, f.reloadProduct(t, a.ID).Quantity)
}

func TestPlaceOrderWithMissingProduct(t *testing.T) {
	f := newFixture(t)
	buyer := f.buyer(t)

	_, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: 999, Quantity: 1}}})
	require.Error(t, err)
	assert.Equal(t, "Product 999 not available", err.Error())
	assertNothingWritten(t, f)
}

func TestPlaceOrderRejectsMixedSellers(t *testing.T) {
	f := newFixture(t)
	one := f.farmer(t, entity.TierFree)
	two := f.user(t, "second-farmer@example.com", entity.RoleFarmer, entity.TierEnterprise)
	buyer := f.buyer(t)
	a := f.product(t, one.ID, "Tomatoes", entity.CategoryVegetables, 80, 200)
	b := f.product(t, two.ID, "Onions", entity.CategoryVegetables, 70, 300)

	_, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{
		{ProductID: a.ID, Quantity: 1}, {ProductID: b.ID, Quantity: 1},
	}})
	require.ErrorIs(t, err, ErrMixedSellers)
	assertNothingWritten(t, f)
}

func TestPlaceOrderChecksStock(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	buyer := f.buyer(t)
	a := f.product(t, farmer.ID, "Tomatoes", entity.CategoryVegetables, 80, 5)

	_, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: a.ID, Quantity: 6}}})
	require.Error(t, err)
	assert.Equal(t, KindInsufficientStock, KindOf(err))
	assertNothingWritten(t, f)

	// two lines for the same product count together
	_, err = f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{
		{ProductID: a.ID, Quantity: 3}, {ProductID: a.ID, Quantity: 3},
	}})
	assert.Equal(t, KindInsufficientStock, KindOf(err))
	assertNothingWritten(t, f)

	// exactly what is left is fine
	_, err = f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: a.ID, Quantity: 5}}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, f.reloadProduct(t, a.ID).Quantity)

	_, err = f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: a.ID, Quantity: 1}}})
	assert.Equal(t, KindInsufficientStock, KindOf(err))
}

func TestConcurrentOrdersForTheLastUnit(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	p := f.product(t, farmer.ID, "Pumpkin", entity.CategoryVegetables, 150, 1)
	buyers := make([]entity.User, 8)
	for i := range buyers {
		buyers[i] = f.user(t, fmt.Sprintf("racer-%d@example.com", i), entity.RoleBuyer, entity.TierFree)
	}

	errs := parallel(len(buyers), func(i int) error {
		_, err := f.orders.Place(f.ctx, buyers[i].ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: p.ID, Quantity: 1}}})
		return err
	})

	assert.Equal(t, 1, successes(errs))
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, InsufficientStock(p.ID))
		}
	}
	assert.EqualValues(t, 1, f.count(t, &entity.Order{}))
	assert.EqualValues(t, 1, f.count(t, &entity.OrderItem{}))
	assert.EqualValues(t, 1, f.count(t, &entity.Notification{}))
	assert.Equal(t, 0.0, f.reloadProduct(t, p.ID).Quantity)
}

func TestListOrdersIsRoleScoped(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	other := f.user(t, "other-farmer@example.com", entity.RoleFarmer, entity.TierFree)
	buyer := f.buyer(t)
	a := f.product(t, farmer.ID, "Tomatoes", entity.CategoryVegetables, 80, 200)
	c := f.product(t, other.ID, "Cabbage", entity.CategoryVegetables, 40, 200)

	first, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: a.ID, Quantity: 1}}})
	require.NoError(t, err)
	second, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: a.ID, Quantity: 2}}})
	require.NoError(t, err)
	_, err = f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: c.ID, Quantity: 2}}})
	require.NoError(t, err)

	bought, err := f.orders.List(f.ctx, buyer.ID, entity.RoleBuyer)
	require.NoError(t, err)
	assert.Len(t, bought, 3)

	sold, err := f.orders.List(f.ctx, farmer.ID, entity.RoleFarmer)
	require.NoError(t, err)
	require.Len(t, sold, 2)
	assert.Equal(t, second.ID, sold[0].ID, "newest first")
	assert.Equal(t, first.ID, sold[1].ID)
	require.NotNil(t, sold[0].Buyer)
	assert.Equal(t, buyer.Email, sold[0].Buyer.Email)

	none, err := f.orders.List(f.ctx, buyer.ID, entity.Role("ADMIN"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetOrderOnlyForParties(t *testing.T) {
	f := newFixture(t)
	farmer := f.farmer(t, entity.TierFree)
	buyer := f.buyer(t)
	stranger := f.user(t, "stranger@example.com", entity.RoleBuyer, entity.TierFree)
	a := f.product(t, farmer.ID, "Tomatoes", entity.CategoryVegetables, 80, 200)

	o, err := f.orders.Place(f.ctx, buyer.ID, PlaceOrderInput{Items: []OrderItemIn{{ProductID: a.ID, Quantity: 1}}})
	require.NoError(t, err)

	_, err = f.orders.Get(f.ctx, buyer.ID, o.ID)
	assert.NoError(t, err)
	_, err = f.orders.Get(f.ctx, farmer.ID, o.ID)
	assert.NoError(t, err)
	_, err = f.orders.Get(f.ctx, stranger.ID, o.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
