package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookingService overrides only the methods a test exercises.
type stubBookingService struct {
	usecase.BookingService
	createFn func(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
}

func (s *stubBookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return s.createFn(ctx, req)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCreateBooking_StatusMapping(t *testing.T) {
	valid := request.CreateBookingRequest{
		CourtID:      "7b9d3f70-2a4e-4f3b-8a15-0c6f5f1f2a3b",
		Date:         "2025-06-10",
		StartTime:    "09:00",
		EndTime:      "10:00",
		CustomerName: "Dina Putri",
	}

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"conflict", fmt.Errorf("%w: 0 unit(s) available", usecase.ErrConflict), http.StatusConflict},
		{"court unavailable", usecase.ErrCourtUnavailable, http.StatusConflict},
		{"not found", fmt.Errorf("court x: %w", usecase.ErrNotFound), http.StatusNotFound},
		{"invalid discount", usecase.ErrInvalidDiscount, http.StatusBadRequest},
		{"internal", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBookingService{
				createFn: func(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &response.BookingResponse{Reference: "BK-TEST"}, nil
				},
			}
			h := NewBookingHandler(svc, zap.NewNop())

			rec := postJSON(t, h.CreateBooking, valid)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreateBooking_BadPayload(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		h.CreateBooking(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		rec := postJSON(t, h.CreateBooking, request.CreateBookingRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
