package services

import (
	"testing"
	"time"

	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/pkg/testdb"
	"sabores/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, f *fixture, userID uint) *OrderView {
	t.Helper()
	m := testdb.MenuItem(t, f.db, "Empanada", "1500.00", true)
	o, err := f.order.Create(userID, createIn(OrderLineIn{MenuItemID: m.ID, Quantity: 1}), "")
	require.NoError(t, err)
	return o
}

func TestUpdateStatusRequiresAField(t *testing.T) {
	f := newFixture(t)
	u := testdb.User(t, f.db, "ana@example.com", entity.RoleCustomer)
	o := placeOrder(t, f, u.ID)

	_, err := f.admin.UpdateStatus(o.ID, StatusUpdateIn{}, "")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUpdateStatusHasNoTransitionRules(t *testing.T) {
	f := newFixture(t)
	u := testdb.User(t, f.db, "ana@example.com", entity.RoleCustomer)
	o := placeOrder(t, f, u.ID)

	delivered := entity.OrderDelivered
	paid := entity.PaymentCompleted
	got, err := f.admin.UpdateStatus(o.ID, StatusUpdateIn{Status: &delivered, PaymentStatus: &paid}, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, got.Status)
	assert.Equal(t, entity.PaymentCompleted, got.PaymentStatus)

	cancelled := entity.OrderCancelled
	got, err = f.admin.UpdateStatus(o.ID, StatusUpdateIn{Status: &cancelled}, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, got.Status)
	assert.Equal(t, entity.PaymentCompleted, got.PaymentStatus, "untouched fields keep their value")
	assert.Equal(t, o.TotalAmount.String(), got.TotalAmount.String())
}

func TestUpdateStatusValidation(t *testing.T) {
	f := newFixture(t)
	u := testdb.User(t, f.db, "ana@example.com", entity.RoleCustomer)
	o := placeOrder(t, f, u.ID)

	bogus := entity.OrderStatus("teleported")
	_, err := f.admin.UpdateStatus(o.ID, StatusUpdateIn{Status: &bogus}, "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	eta := time.Date(2026, 1, 2, 20, 30, 0, 0, time.UTC)
	got, err := f.admin.UpdateStatus(o.ID, StatusUpdateIn{EstimatedDeliveryTime: &eta}, "")
	require.NoError(t, err)
	require.NotNil(t, got.EstimatedDeliveryTime)
	assert.True(t, eta.Equal(*got.EstimatedDeliveryTime))

	confirmed := entity.OrderConfirmed
	_, err = f.admin.UpdateStatus(98765, StatusUpdateIn{Status: &confirmed}, "")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestAdminListFilters(t *testing.T) {
	f := newFixture(t)
	u := testdb.User(t, f.db, "ana@example.com", entity.RoleCustomer)
	a := placeOrder(t, f, u.ID)
	placeOrder(t, f, u.ID)

	delivered := entity.OrderDelivered
	_, err := f.admin.UpdateStatus(a.ID, StatusUpdateIn{Status: &delivered}, "")
	require.NoError(t, err)

	page, err := f.admin.List(AdminOrderQuery{Status: "delivered"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, a.OrderCode, page.Items[0].OrderCode)
	require.NotNil(t, page.Items[0].Customer)
	assert.Equal(t, "ana@example.com", page.Items[0].Customer.Email)

	page, err = f.admin.List(AdminOrderQuery{Today: true, Search: a.OrderCode[2:6]})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, page.Total, int64(1))

	_, err = f.admin.List(AdminOrderQuery{StartDate: "02/01/2026"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.admin.List(AdminOrderQuery{PaymentMethod: "bitcoin"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestDashboardWithNoOrders(t *testing.T) {
	db := testdb.New(t)
	svc := NewDashboardService(repository.NewOrderRepository(db))

	stats, err := svc.Stats("", "")
	require.NoError(t, err)
	assert.Zero(t, stats.TodayOrders)
	assert.Equal(t, "0.00", stats.TodayRevenue.String())
	assert.Zero(t, stats.PendingOrders)
	assert.Len(t, stats.StatusCounts, len(entity.OrderStatuses))
	for _, n := range stats.StatusCounts {
		assert.Zero(t, n)
	}
	assert.Len(t, stats.DailyOrders, 7)
}

func TestDashboardAggregates(t *testing.T) {
	db := testdb.New(t)
	u := testdb.User(t, db, "ana@example.com", entity.RoleCustomer)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	mk := func(code string, status entity.OrderStatus, total string, at time.Time) {
		o := &entity.Order{
			OrderCode: code, UserID: u.ID, Status: status,
			PaymentMethod: entity.PayCash, PaymentStatus: entity.PaymentPending,
			TotalAmount: entity.MustMoney(total), DeliveryAddress: "x",
		}
		o.CreatedAt = at
		require.NoError(t, db.Create(o).Error)
	}
	mk("SC00000001", entity.OrderPending, "1000.10", now.Add(-time.Hour))
	mk("SC00000002", entity.OrderDelivered, "2000.20", now.Add(-2*time.Hour))
	mk("SC00000003", entity.OrderOnTheWay, "500.00", now.AddDate(0, 0, -1))
	mk("SC00000004", entity.OrderCancelled, "700.00", now.AddDate(0, 0, -3))

	svc := NewDashboardService(repository.NewOrderRepository(db))
	svc.Now = func() time.Time { return now }

	stats, err := svc.Stats("", "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TodayOrders)
	assert.Equal(t, "3000.30", stats.TodayRevenue.String())
	assert.EqualValues(t, 2, stats.PendingOrders)
	assert.EqualValues(t, 1, stats.StatusCounts[entity.OrderCancelled])
	assert.EqualValues(t, 0, stats.StatusCounts[entity.OrderConfirmed])

	require.Len(t, stats.DailyOrders, 7)
	assert.Equal(t, "2026-03-03", stats.DailyOrders[0].Date)
	assert.Equal(t, "2026-03-09", stats.DailyOrders[6].Date)
	assert.EqualValues(t, 1, stats.DailyOrders[6].Count)
	assert.EqualValues(t, 1, stats.DailyOrders[4].Count)

	stats, err = svc.Stats("2026-03-07", "2026-03-10")
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TodayOrders)
	assert.Equal(t, "4200.30", stats.TodayRevenue.String())

	_, err = svc.Stats("2026-03-10", "2026-03-01")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
