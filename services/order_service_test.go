package services

import (
	"math"
	"net/http"
	"testing"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace_TotalsAndStock(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	banana := mustProduct(t, f.db, f.shop, f.cat, "Banana", "1.99", 150, true)

	o := f.place(t,
		OrderLineInput{ProductID: apple.ID, Quantity: 2},
		OrderLineInput{ProductID: banana.ID, Quantity: 1},
	)

	assert.Equal(t, "9.97", o.TotalAmount.StringFixed(2))
	assert.Equal(t, entity.StatusPlaced, o.Status)
	assert.Nil(t, o.ShopID)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Apple", o.Items[0].ProductName)
	assert.Equal(t, "3.99", o.Items[0].ProductPrice.StringFixed(2))
	assert.Equal(t, "7.98", o.Items[0].ItemTotal.StringFixed(2))

	assert.Equal(t, 98, reloadProduct(t, f.db, apple.ID).Stock)
	assert.Equal(t, 149, reloadProduct(t, f.db, banana.ID).Stock)

	events := f.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderPlaced, events[0].Type)
	assert.Equal(t, o.ID, events[0].OrderID)
	assert.Equal(t, f.buyer.ID, events[0].BuyerID)
}

func TestPlace_MergesRepeatedProducts(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "2.50", 10, true)

	o := f.place(t,
		OrderLineInput{ProductID: apple.ID, Quantity: 1},
		OrderLineInput{ProductID: apple.ID, Quantity: 2},
	)

	require.Len(t, o.Items, 1)
	assert.Equal(t, 3, o.Items[0].Quantity)
	assert.Equal(t, "7.50", o.TotalAmount.StringFixed(2))
	assert.Equal(t, 7, reloadProduct(t, f.db, apple.ID).Stock)
}

func TestPlace_RollsBackOnFailingLine(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	scarce := mustProduct(t, f.db, f.shop, f.cat, "Mango", "5.00", 1, true)

	_, err := f.svc.Place(f.buyer.ID, PlaceOrderInput{
		AddressID:     f.address.ID,
		PaymentMethod: entity.PaymentCard,
		Items: []OrderLineInput{
			{ProductID: apple.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Contains(t, err.Error(), "insufficient stock")

	assert.Equal(t, 100, reloadProduct(t, f.db, apple.ID).Stock)
	assert.Equal(t, 1, reloadProduct(t, f.db, scarce.ID).Stock)

	var orders, items int64
	f.db.Model(&entity.Order{}).Count(&orders)
	f.db.Model(&entity.OrderItem{}).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Empty(t, f.events.Events())
}

func TestPlace_Rejections(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	soldOut := mustProduct(t, f.db, f.shop, f.cat, "Chips", "1.00", 0, false)
	stranger := mustUser(t, f.db, entity.RoleBuyer)
	foreign := mustAddress(t, f.db, stranger, 40.7, -74.0, true)

	tests := []struct {
		name   string
		in     PlaceOrderInput
		status int
	}{
		{"empty items", PlaceOrderInput{AddressID: f.address.ID, PaymentMethod: entity.PaymentCash}, http.StatusBadRequest},
		{"zero quantity", PlaceOrderInput{AddressID: f.address.ID, PaymentMethod: entity.PaymentCash,
			Items: []OrderLineInput{{ProductID: apple.ID, Quantity: 0}}}, http.StatusBadRequest},
		{"unknown payment", PlaceOrderInput{AddressID: f.address.ID, PaymentMethod: "Barter",
			Items: []OrderLineInput{{ProductID: apple.ID, Quantity: 1}}}, http.StatusBadRequest},
		{"missing product", PlaceOrderInput{AddressID: f.address.ID, PaymentMethod: entity.PaymentCash,
			Items: []OrderLineInput{{ProductID: 9999, Quantity: 1}}}, http.StatusNotFound},
		{"out of stock", PlaceOrderInput{AddressID: f.address.ID, PaymentMethod: entity.PaymentCash,
			Items: []OrderLineInput{{ProductID: soldOut.ID, Quantity: 1}}}, http.StatusBadRequest},
		{"someone else's address", PlaceOrderInput{AddressID: foreign.ID, PaymentMethod: entity.PaymentCash,
			Items: []OrderLineInput{{ProductID: apple.ID, Quantity: 1}}}, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Place(f.buyer.ID, tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.status, apperr.StatusOf(err))
		})
	}
	assert.Equal(t, 100, reloadProduct(t, f.db, apple.ID).Stock)
}

func TestPlace_LastUnitMarksOutOfStock(t *testing.T) {
	f := newOrderFixture(t)
	melon := mustProduct(t, f.db, f.shop, f.cat, "Melon", "4.00", 2, true)

	f.place(t, OrderLineInput{ProductID: melon.ID, Quantity: 2})

	p := reloadProduct(t, f.db, melon.ID)
	assert.Equal(t, 0, p.Stock)
	assert.False(t, p.InStock)

	_, err := f.svc.Place(f.buyer.ID, PlaceOrderInput{
		AddressID:     f.address.ID,
		PaymentMethod: entity.PaymentCash,
		Items:         []OrderLineInput{{ProductID: melon.ID, Quantity: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestPlace_UntrackedStock(t *testing.T) {
	f := newOrderFixture(t)
	bread := mustProduct(t, f.db, f.shop, f.cat, "Bread", "2.00", 0, true)

	o := f.place(t, OrderLineInput{ProductID: bread.ID, Quantity: 5})

	assert.Equal(t, "10.00", o.TotalAmount.StringFixed(2))
	p := reloadProduct(t, f.db, bread.ID)
	assert.Equal(t, 0, p.Stock)
	assert.True(t, p.InStock)
}

func TestGetOrder_Access(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	o := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1})

	otherOwner := mustUser(t, f.db, entity.RoleOwner)
	mustShop(t, f.db, otherOwner, 40.0, -73.0, 5)
	otherBuyer := mustUser(t, f.db, entity.RoleBuyer)

	_, err := f.svc.Get(f.buyer.ID, entity.RoleBuyer, o.ID)
	assert.NoError(t, err)

	// unclaimed: any owner may look
	_, err = f.svc.Get(otherOwner.ID, entity.RoleOwner, o.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(otherBuyer.ID, entity.RoleBuyer, o.ID)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	_, err = f.svc.Accept(f.owner.ID, o.ID)
	require.NoError(t, err)

	_, err = f.svc.Get(f.owner.ID, entity.RoleOwner, o.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(otherOwner.ID, entity.RoleOwner, o.ID)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	_, err = f.svc.Get(f.buyer.ID, entity.RoleBuyer, 4242)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestNearbyOrders(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	near := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1})

	// Los Angeles is far outside a 10 km radius
	farBuyer := mustUser(t, f.db, entity.RoleBuyer)
	farAddr := mustAddress(t, f.db, farBuyer, 34.0522, -118.2437, true)
	_, err := f.svc.Place(farBuyer.ID, PlaceOrderInput{
		AddressID:     farAddr.ID,
		PaymentMethod: entity.PaymentCash,
		Items:         []OrderLineInput{{ProductID: apple.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	out, err := f.svc.Nearby(f.owner.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, near.ID, out[0].Item.ID)
	assert.Equal(t, "0.05", out[0].Distance)

	noShop := mustUser(t, f.db, entity.RoleOwner)
	_, err = f.svc.Nearby(noShop.ID)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
}

func TestListForShop(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "1.00", 100, true)
	for i := 0; i < 3; i++ {
		o := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1})
		_, err := f.svc.Accept(f.owner.ID, o.ID)
		require.NoError(t, err)
	}
	f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1}) // unclaimed

	page, err := f.svc.ListForShop(f.owner.ID, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 2)

	page, err = f.svc.ListForShop(f.owner.ID, entity.StatusDelivered, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	_, err = f.svc.ListForShop(f.owner.ID, "Lost", 1, 20)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	mine, err := f.svc.ListMine(f.buyer.ID, "")
	require.NoError(t, err)
	assert.Len(t, mine, 4)
}

func TestPlace_QuantityBounds(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	untracked := mustProduct(t, f.db, f.shop, f.cat, "Caviar", "99999.99", 0, true)

	tests := []struct {
		name  string
		lines []OrderLineInput
	}{
		{"repeated lines that would overflow", []OrderLineInput{
			{ProductID: apple.ID, Quantity: math.MaxInt64/2 + 1},
			{ProductID: apple.ID, Quantity: math.MaxInt64/2 + 1},
		}},
		{"single line over the cap", []OrderLineInput{{ProductID: apple.ID, Quantity: MaxLineQuantity + 1}}},
		{"merged lines over the cap", []OrderLineInput{
			{ProductID: apple.ID, Quantity: MaxLineQuantity},
			{ProductID: apple.ID, Quantity: 1},
		}},
		{"total beyond the money column", []OrderLineInput{{ProductID: untracked.ID, Quantity: MaxLineQuantity}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Place(f.buyer.ID, PlaceOrderInput{
				AddressID:     f.address.ID,
				PaymentMethod: entity.PaymentCash,
				Items:         tc.lines,
			})
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
		})
	}

	assert.Equal(t, 100, reloadProduct(t, f.db, apple.ID).Stock)
	var orders int64
	require.NoError(t, f.db.Model(&entity.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	// exactly the cap is still accepted when stock allows it
	bulk := mustProduct(t, f.db, f.shop, f.cat, "Rice", "0.01", MaxLineQuantity, true)
	o := f.place(t,
		OrderLineInput{ProductID: bulk.ID, Quantity: MaxLineQuantity - 1},
		OrderLineInput{ProductID: bulk.ID, Quantity: 1},
	)
	assert.Equal(t, "100.00", o.TotalAmount.StringFixed(2))
	assert.Equal(t, 0, reloadProduct(t, f.db, bulk.ID).Stock)
}
