package refuse_request

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
	refuseRequest "github.com/m04kA/SMC-ServiceDesk/internal/usecase/refuse_request"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *refuseRequest.Request) (*refuseRequest.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*refuseRequest.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(requestID, body string, withActor bool) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/requests/"+requestID+"/refuse", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"requestId": requestID})
	if withActor {
		r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 9, Role: domain.RoleResponsable}))
	}
	return r
}

func TestHandle_Success(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &refuseRequest.Request{RequestID: 5, Reason: "Hors zone", ResponsableID: 9}).
		Return(&refuseRequest.Response{RequestID: 5, Status: string(domain.RequestStatusRefused), Reason: "Hors zone"}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("5", `{"reason":"Hors zone"}`, true))

	require.Equal(t, http.StatusOK, rec.Code)
	var body RefuseRequestResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(5), body.RequestID)
	assert.Equal(t, "refused", body.Status)
	assert.Equal(t, "Hors zone", body.Reason)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		requestID  string
		body       string
		withActor  bool
		ucErr      error
		wantStatus int
	}{
		{name: "invalid id", requestID: "abc", body: `{"reason":"x"}`, withActor: true, wantStatus: http.StatusBadRequest},
		{name: "no actor", requestID: "5", body: `{"reason":"x"}`, wantStatus: http.StatusUnauthorized},
		{name: "unknown field", requestID: "5", body: `{"reason":"x","slotId":1}`, withActor: true, wantStatus: http.StatusBadRequest},
		{name: "empty reason", requestID: "5", body: `{"reason":""}`, withActor: true,
			ucErr: refuseRequest.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", requestID: "5", body: `{"reason":"x"}`, withActor: true,
			ucErr: refuseRequest.ErrRequestNotFound, wantStatus: http.StatusNotFound},
		{name: "already handled", requestID: "5", body: `{"reason":""}`, withActor: true,
			ucErr: refuseRequest.ErrRequestNotPending, wantStatus: http.StatusConflict},
		{name: "internal", requestID: "5", body: `{"reason":"x"}`, withActor: true,
			ucErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.AnythingOfType("*refuse_request.Request")).Return(nil, tt.ucErr)
			}

			rec := httptest.NewRecorder()
			NewHandler(uc, nopLogger{}).Handle(rec, newRequest(tt.requestID, tt.body, tt.withActor))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			} else {
				uc.AssertExpectations(t)
			}
		})
	}
}
