package add_intervention_part

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) AddPart(ctx context.Context, id int64, req *models.AddPartRequest, actor domain.Actor) (*models.InterventionResponse, error) {
	args := m.Called(ctx, id, req, actor)
	if resp, ok := args.Get(0).(*models.InterventionResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var technician = domain.Actor{UserID: 7, Role: domain.RoleTechnician}

func newRequest(interventionID, body string, withActor bool) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/interventions/"+interventionID+"/parts", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"interventionId": interventionID})
	if withActor {
		r = r.WithContext(middleware.WithActor(r.Context(), technician))
	}
	return r
}

func TestHandle_Success(t *testing.T) {
	svc := new(mockService)
	svc.On("AddPart", mock.Anything, int64(42), &models.AddPartRequest{PartID: 5, Quantity: 2}, technician).
		Return(&models.InterventionResponse{ID: 42, TechnicianID: 7, Status: "in_progress"}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest("42", `{"partId":5,"quantity":2}`, true))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.InterventionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(42), body.ID)
	svc.AssertExpectations(t)
}

func TestHandle_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "insufficient stock", err: interventions.ErrInsufficientStock, wantStatus: http.StatusConflict},
		{name: "closed intervention", err: interventions.ErrInterventionClosed, wantStatus: http.StatusConflict},
		{name: "invalid quantity", err: interventions.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown intervention", err: interventions.ErrInterventionNotFound, wantStatus: http.StatusNotFound},
		{name: "unknown part", err: interventions.ErrPartNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign intervention", err: interventions.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("AddPart", mock.Anything, int64(42), mock.AnythingOfType("*models.AddPartRequest"), technician).
				Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, newRequest("42", `{"partId":5,"quantity":20}`, true))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_RejectedBeforeService(t *testing.T) {
	tests := []struct {
		name           string
		interventionID string
		body           string
		withActor      bool
		wantStatus     int
	}{
		{name: "invalid id", interventionID: "abc", body: `{"partId":5,"quantity":1}`, withActor: true, wantStatus: http.StatusBadRequest},
		{name: "no actor", interventionID: "42", body: `{"partId":5,"quantity":1}`, wantStatus: http.StatusUnauthorized},
		{name: "malformed body", interventionID: "42", body: `{"partId":`, withActor: true, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, newRequest(tt.interventionID, tt.body, tt.withActor))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertNotCalled(t, "AddPart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
