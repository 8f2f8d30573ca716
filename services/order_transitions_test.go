package services

import (
	"net/http"
	"sync"
	"testing"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.OrderStatus
		ok       bool
	}{
		{entity.StatusAccepted, entity.StatusPreparing, true},
		{entity.StatusAccepted, entity.StatusCancelled, true},
		{entity.StatusPreparing, entity.StatusOutForDelivery, true},
		{entity.StatusOutForDelivery, entity.StatusDelivered, true},
		{entity.StatusOutForDelivery, entity.StatusCancelled, true},
		{entity.StatusPlaced, entity.StatusDelivered, false},
		{entity.StatusPlaced, entity.StatusAccepted, false},
		{entity.StatusAccepted, entity.StatusDelivered, false},
		{entity.StatusDelivered, entity.StatusCancelled, false},
		{entity.StatusCancelled, entity.StatusPreparing, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAccept(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	o := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1})

	accepted, err := f.svc.Accept(f.owner.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, accepted.Status)
	require.NotNil(t, accepted.ShopID)
	assert.Equal(t, f.shop.ID, *accepted.ShopID)
	assert.NotNil(t, accepted.AcceptedAt)

	events := f.events.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventOrderStatus, events[1].Type)
	assert.Equal(t, f.owner.ID, events[1].OwnerID)

	rival := mustUser(t, f.db, entity.RoleOwner)
	mustShop(t, f.db, rival, 40.7128, -74.0060, 10)
	_, err = f.svc.Accept(rival.ID, o.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, "order already accepted", err.Error())

	_, err = f.svc.Accept(f.owner.ID, 9999)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))

	noShop := mustUser(t, f.db, entity.RoleOwner)
	_, err = f.svc.Accept(noShop.ID, o.ID)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
}

func TestAccept_CancelledOrder(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	o := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1})
	_, err := f.svc.Cancel(f.buyer.ID, o.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(f.owner.ID, o.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Contains(t, err.Error(), "cannot transition from Cancelled to Accepted")
}

func TestAccept_OnlyOneOwnerWins(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	o := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1})

	owners := []*entity.User{f.owner}
	for i := 0; i < 4; i++ {
		u := mustUser(t, f.db, entity.RoleOwner)
		mustShop(t, f.db, u, 40.7128, -74.0060, 10)
		owners = append(owners, u)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for _, u := range owners {
		wg.Add(1)
		go func(ownerID uint) {
			defer wg.Done()
			if _, err := f.svc.Accept(ownerID, o.ID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(u.ID)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestUpdateStatus_HappyPath(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	o := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1})
	_, err := f.svc.Accept(f.owner.ID, o.ID)
	require.NoError(t, err)

	for _, next := range []entity.OrderStatus{entity.StatusPreparing, entity.StatusOutForDelivery, entity.StatusDelivered} {
		out, err := f.svc.UpdateStatus(f.owner.ID, o.ID, next)
		require.NoError(t, err, "to %s", next)
		assert.Equal(t, next, out.Status)
	}

	final, err := f.svc.Get(f.buyer.ID, entity.RoleBuyer, o.ID)
	require.NoError(t, err)
	assert.NotNil(t, final.PreparedAt)
	assert.NotNil(t, final.OutForDeliveryAt)
	assert.NotNil(t, final.DeliveredAt)
	assert.Nil(t, final.CancelledAt)

	_, err = f.svc.UpdateStatus(f.owner.ID, o.ID, entity.StatusCancelled)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, "cannot transition from Delivered to Cancelled", err.Error())

	// accept + three status changes
	assert.Len(t, f.events.Events(), 5)
}

func TestUpdateStatus_Rejections(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	placed := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1})

	_, err := f.svc.UpdateStatus(f.owner.ID, placed.ID, entity.StatusDelivered)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, "cannot transition from Placed to Delivered", err.Error())

	_, err = f.svc.UpdateStatus(f.owner.ID, placed.ID, "Teleported")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	_, err = f.svc.Accept(f.owner.ID, placed.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(f.owner.ID, placed.ID, entity.StatusDelivered)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	rival := mustUser(t, f.db, entity.RoleOwner)
	mustShop(t, f.db, rival, 40.7128, -74.0060, 10)
	_, err = f.svc.UpdateStatus(rival.ID, placed.ID, entity.StatusPreparing)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	_, err = f.svc.UpdateStatus(f.owner.ID, 9999, entity.StatusPreparing)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestOwnerCancel_RestoresStock(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 3, true)
	o := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 3})
	require.False(t, reloadProduct(t, f.db, apple.ID).InStock)

	_, err := f.svc.Accept(f.owner.ID, o.ID)
	require.NoError(t, err)
	out, err := f.svc.UpdateStatus(f.owner.ID, o.ID, entity.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, out.Status)
	assert.NotNil(t, out.CancelledAt)

	p := reloadProduct(t, f.db, apple.ID)
	assert.Equal(t, 3, p.Stock)
	assert.True(t, p.InStock)
}

func TestBuyerCancel(t *testing.T) {
	f := newOrderFixture(t)
	apple := mustProduct(t, f.db, f.shop, f.cat, "Apple", "3.99", 100, true)
	banana := mustProduct(t, f.db, f.shop, f.cat, "Banana", "1.99", 150, true)

	t.Run("restores stock", func(t *testing.T) {
		o := f.place(t,
			OrderLineInput{ProductID: apple.ID, Quantity: 2},
			OrderLineInput{ProductID: banana.ID, Quantity: 1},
		)
		out, err := f.svc.Cancel(f.buyer.ID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCancelled, out.Status)
		assert.NotNil(t, out.CancelledAt)
		assert.Equal(t, 100, reloadProduct(t, f.db, apple.ID).Stock)
		assert.Equal(t, 150, reloadProduct(t, f.db, banana.ID).Stock)

		_, err = f.svc.Cancel(f.buyer.ID, o.ID)
		assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	})

	t.Run("allowed while preparing", func(t *testing.T) {
		o := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1})
		_, err := f.svc.Accept(f.owner.ID, o.ID)
		require.NoError(t, err)
		_, err = f.svc.UpdateStatus(f.owner.ID, o.ID, entity.StatusPreparing)
		require.NoError(t, err)

		_, err = f.svc.Cancel(f.buyer.ID, o.ID)
		assert.NoError(t, err)
		assert.Equal(t, 100, reloadProduct(t, f.db, apple.ID).Stock)
	})

	t.Run("rejected once out for delivery", func(t *testing.T) {
		o := f.place(t, OrderLineInput{ProductID: apple.ID, Quantity: 1})
		_, err := f.svc.Accept(f.owner.ID, o.ID)
		require.NoError(t, err)
		for _, s := range []entity.OrderStatus{entity.StatusPreparing, entity.StatusOutForDelivery} {
			_, err = f.svc.UpdateStatus(f.owner.ID, o.ID, s)
			require.NoError(t, err)
		}

		_, err = f.svc.Cancel(f.buyer.ID, o.ID)
		assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
		assert.Equal(t, 99, reloadProduct(t, f.db, apple.ID).Stock)
	})

	t.Run("other buyer sees not found", func(t *testing.T) {
		o := f.place(t, OrderLineInput{ProductID: banana.ID, Quantity: 1})
		other := mustUser(t, f.db, entity.RoleBuyer)
		_, err := f.svc.Cancel(other.ID, o.ID)
		assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
	})
}
