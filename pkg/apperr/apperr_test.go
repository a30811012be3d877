package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusMapping(t *testing.T) {
	cases := map[*Error]int{
		Validation("x"):      http.StatusBadRequest,
		Unavailable("x"):     http.StatusBadRequest,
		NotFound("x"):        http.StatusNotFound,
		Permission("x"):      http.StatusForbidden,
		Authentication("x"):  http.StatusUnauthorized,
		Conflict("x"):        http.StatusConflict,
		{Kind: KindInternal}: http.StatusInternalServerError,
	}
	for e, want := range cases {
		assert.Equal(t, want, e.Status(), e.Kind.String())
	}
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("create order: %w", Unavailable("Humita is not available"))
	assert.Equal(t, KindUnavailable, From(wrapped).Kind)
	assert.Equal(t, "Humita is not available", From(wrapped).Message)

	assert.Equal(t, KindNotFound, From(gorm.ErrRecordNotFound).Kind)
	assert.True(t, Is(fmt.Errorf("x: %w", gorm.ErrRecordNotFound), KindNotFound))

	boom := errors.New("disk on fire")
	ae := From(boom)
	assert.Equal(t, KindInternal, ae.Kind)
	assert.ErrorIs(t, ae, boom)
	assert.Nil(t, From(nil))
}
