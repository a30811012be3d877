package services

import (
	"testing"

	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/pkg/testdb"
	"sabores/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodDefaultIsExclusive(t *testing.T) {
	db := testdb.New(t)
	u := testdb.User(t, db, "ana@example.com", entity.RoleCustomer)
	svc := NewPaymentMethodService(db, repository.NewPaymentMethodRepository(db))

	cash, err := svc.Create(u.ID, PaymentMethodInput{Type: entity.PayCash, IsDefault: true})
	require.NoError(t, err)
	card, err := svc.Create(u.ID, PaymentMethodInput{
		Type: entity.PayCard, CardLast4: "4242", Expiry: "12/29", HolderName: " Ana ", IsDefault: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", card.HolderName)

	list, err := svc.List(u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, card.ID, list[0].ID)
	assert.True(t, list[0].IsDefault)
	assert.False(t, list[1].IsDefault)

	_, err = svc.Update(u.ID, cash.ID, PaymentMethodInput{Type: entity.PayCash, IsDefault: true})
	require.NoError(t, err)
	got, err := svc.Get(u.ID, card.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}

func TestPaymentMethodCardValidation(t *testing.T) {
	db := testdb.New(t)
	u := testdb.User(t, db, "ana@example.com", entity.RoleCustomer)
	svc := NewPaymentMethodService(db, repository.NewPaymentMethodRepository(db))

	_, err := svc.Create(u.ID, PaymentMethodInput{Type: entity.PayCard, CardLast4: "42", Expiry: "13/29"})
	require.Error(t, err)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "must have length 4", ae.Fields["card_last4"])
	assert.Equal(t, "must be in MM/YY format", ae.Fields["expiry"])

	_, err = svc.Create(u.ID, PaymentMethodInput{Type: entity.PayCard, CardLast4: "42a2", Expiry: "09/27"})
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, map[string]string{"card_last4": "must contain only digits"}, ae.Fields)

	_, err = svc.Create(u.ID, PaymentMethodInput{Type: "bitcoin"})
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "is not a valid choice", ae.Fields["type"])

	// card details are dropped for non-card methods
	pm, err := svc.Create(u.ID, PaymentMethodInput{Type: entity.PayTransfer, CardLast4: "4242"})
	require.NoError(t, err)
	assert.Empty(t, pm.CardLast4)
}

func TestPaymentMethodOwnership(t *testing.T) {
	db := testdb.New(t)
	ana := testdb.User(t, db, "ana@example.com", entity.RoleCustomer)
	bob := testdb.User(t, db, "bob@example.com", entity.RoleCustomer)
	svc := NewPaymentMethodService(db, repository.NewPaymentMethodRepository(db))

	pm, err := svc.Create(ana.ID, PaymentMethodInput{Type: entity.PayCash})
	require.NoError(t, err)

	_, err = svc.Get(bob.ID, pm.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.True(t, apperr.Is(svc.Delete(bob.ID, pm.ID), apperr.KindNotFound))
	require.NoError(t, svc.Delete(ana.ID, pm.ID))
}
