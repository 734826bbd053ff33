package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/opentocoder/storefront/internal/models"
	"github.com/opentocoder/storefront/internal/service"
	"github.com/opentocoder/storefront/internal/util"
)

func TestRespondErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{logger: util.GetLogger()}

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"empty cart", models.ErrEmptyCart, http.StatusBadRequest},
		{"invalid state", models.ErrInvalidState, http.StatusBadRequest},
		{"product unavailable", &models.ProductUnavailableError{ProductID: uuid.New()}, http.StatusBadRequest},
		{"insufficient stock", &models.InsufficientStockError{ProductName: "Widget", Requested: 2, Available: 1}, http.StatusBadRequest},
		{"invalid quantity", service.ErrInvalidQuantity, http.StatusBadRequest},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", models.ErrForbidden, http.StatusForbidden},
		{"order not found", models.ErrOrderNotFound, http.StatusNotFound},
		{"cart item not found", service.ErrCartItemNotFound, http.StatusNotFound},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"storage failure", errors.New("pq: connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

			h.respondError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRespondErrorHidesStorageDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{logger: util.GetLogger()}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	h.respondError(c, errors.New("pq: password authentication failed for user \"app\""))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password authentication")
	assert.Contains(t, w.Body.String(), "Internal server error")
}
