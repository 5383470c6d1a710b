package faq_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/infras/otel/mocks"
	"villa/internal/domains/faq/model"
	"villa/internal/domains/faq/model/dto"
	faqMocks "villa/internal/domains/faq/service/mocks"
	"villa/internal/handlers/faq"
	"villa/shared/constant"
	gDto "villa/shared/dto"
)

func setup(t *testing.T) (*chi.Mux, *faqMocks.MockFaq) {
	ctrl := gomock.NewController(t)
	svc := faqMocks.NewMockFaq(ctrl)

	handler := faq.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestVote(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		clientIP  string
		wantKey   string
	}{
		{
			name:      "uses the session header",
			sessionID: "browser-session",
			clientIP:  "10.0.0.1",
			wantKey:   "browser-session",
		},
		{
			name:     "falls back to the client ip",
			clientIP: "10.0.0.1",
			wantKey:  "10.0.0.1",
		},
		{
			name:    "falls back to the remote host without its port",
			wantKey: "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setup(t)

			svc.EXPECT().Vote(gomock.Any(), gomock.Any(), "faq-1", tt.wantKey).
				Return(dto.VoteResponse{ID: "faq-1", HelpfulVotes: 1}, nil)

			req := httptest.NewRequest(http.MethodPost, "/faqs/faq-1/vote", strings.NewReader(`{"helpful":true}`))
			req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyClientIP, tt.clientIP))

			if tt.sessionID != constant.Empty {
				req.Header.Set(constant.RequestHeaderSessionID, tt.sessionID)
			}

			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"helpful_votes":1`)
		})
	}

	t.Run("requires the helpful flag", func(t *testing.T) {
		router, _ := setup(t)

		req := httptest.NewRequest(http.MethodPost, "/faqs/faq-1/vote", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetPublishedFaqs(t *testing.T) {
	router, svc := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFaqsResponse, error) {
			assert.Equal(t, model.FieldSortOrder, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)
			assert.Contains(t, filter.Filters, any(model.FilterPublished()))
			assert.Contains(t, filter.Filters, any(model.FilterByCategory("stay")))

			return dto.GetFaqsResponse{}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/faqs?category=stay", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
