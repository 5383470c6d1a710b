package inventory_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/infras/otel/mocks"
	"villa/internal/domains/inventory/model"
	"villa/internal/domains/inventory/model/dto"
	inventoryMocks "villa/internal/domains/inventory/service/mocks"
	"villa/internal/handlers/inventory"
	gDto "villa/shared/dto"
	"villa/shared/failure"
)

func setup(t *testing.T) (*chi.Mux, *inventoryMocks.MockInventory) {
	ctrl := gomock.NewController(t)
	svc := inventoryMocks.NewMockInventory(ctrl)

	handler := inventory.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestGetItems(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		filters int
	}{
		{name: "no filters", query: "", filters: 0},
		{name: "low stock only", query: "?low_stock=true", filters: 1},
		{name: "low stock false is ignored", query: "?low_stock=false", filters: 0},
		{name: "search and category", query: "?q=towel&category=linen", filters: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setup(t)

			svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ any, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItemsResponse, error) {
					assert.Equal(t, model.FieldName, params.SortBy)
					assert.Len(t, filter.Filters, tt.filters)

					return dto.GetItemsResponse{}, nil
				})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/inventory"+tt.query, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestGetLowStockIsNotAnID(t *testing.T) {
	router, svc := setup(t)

	svc.EXPECT().LowStock(gomock.Any(), gomock.Any()).Return(dto.GetItemsResponse{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/inventory/low-stock", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecordMovement(t *testing.T) {
	t.Run("rejects an unknown type", func(t *testing.T) {
		router, _ := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/inventory/item-1/movements",
			strings.NewReader(`{"type":"stolen","quantity":1}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a non positive quantity", func(t *testing.T) {
		router, _ := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/inventory/item-1/movements",
			strings.NewReader(`{"type":"out","quantity":0}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("surfaces insufficient stock", func(t *testing.T) {
		router, svc := setup(t)

		svc.EXPECT().RecordMovement(gomock.Any(), dto.CreateMovementRequest{Type: model.MovementOut, Quantity: 5}, "item-1").
			Return(dto.MovementResponse{}, failure.BadRequestFromString("insufficient stock"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/inventory/item-1/movements",
			strings.NewReader(`{"type":"out","quantity":5}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 201", func(t *testing.T) {
		router, svc := setup(t)

		svc.EXPECT().RecordMovement(gomock.Any(), gomock.Any(), "item-1").
			Return(dto.MovementResponse{ID: "movement-1", ItemID: "item-1", Type: model.MovementIn, Quantity: 5}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/inventory/item-1/movements",
			strings.NewReader(`{"type":"in","quantity":5}`)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"movement-1"`)
	})
}
