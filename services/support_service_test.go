package services

import (
	"testing"

	"sabores/access"
	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/pkg/testdb"
	"sabores/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportTicketFlow(t *testing.T) {
	f := newFixture(t)
	ana := testdb.User(t, f.db, "ana@example.com", entity.RoleCustomer)
	bob := testdb.User(t, f.db, "bob@example.com", entity.RoleCustomer)
	staff := testdb.User(t, f.db, "cocina@example.com", entity.RoleStaff)
	o := placeOrder(t, f, ana.ID)
	svc := NewSupportService(repository.NewSupportRepository(f.db), repository.NewOrderRepository(f.db))

	// bob cannot attach ana's order
	_, err := svc.CreateTicket(bob.ID, TicketInput{OrderCode: o.OrderCode, Subject: "?", Message: "?"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	tk, err := svc.CreateTicket(ana.ID, TicketInput{OrderCode: o.OrderCode, Subject: "Pedido frío", Message: "Llegó frío"})
	require.NoError(t, err)
	require.NotNil(t, tk.OrderID)
	assert.Equal(t, o.ID, *tk.OrderID)
	assert.Equal(t, entity.TicketOpen, tk.Status)
	assert.Equal(t, entity.PriorityMedium, tk.Priority)

	_, err = svc.GetTicket(access.Customer{}, bob.ID, tk.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.PostMessage(access.Customer{}, ana.ID, tk.ID, "¿Me devuelven el dinero?")
	require.NoError(t, err)
	reply, err := svc.PostMessage(access.Staff{}, staff.ID, tk.ID, "Sí, ya lo gestionamos")
	require.NoError(t, err)
	assert.True(t, reply.IsStaff)

	msgs, err := svc.ListMessages(access.Customer{}, ana.ID, tk.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.False(t, msgs[0].IsStaff)
	assert.True(t, msgs[1].IsStaff)

	resolved := entity.TicketResolved
	_, err = svc.UpdateTicket(access.Customer{}, ana.ID, tk.ID, TicketUpdate{Status: &resolved})
	assert.True(t, apperr.Is(err, apperr.KindPermission))

	got, err := svc.UpdateTicket(access.Staff{}, staff.ID, tk.ID, TicketUpdate{Status: &resolved})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketResolved, got.Status)
	assert.Len(t, got.Messages, 2)

	mine, err := svc.ListTickets(access.Customer{}, bob.ID, "")
	require.NoError(t, err)
	assert.Empty(t, mine)

	all, err := svc.ListTickets(access.Staff{}, staff.ID, "resolved")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
