package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/iotest"
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/validator"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newMux(t *testing.T, ctrl FilingController) *runtime.ServeMux {
	mux := runtime.NewServeMux()
	require.NoError(t, NewHTTPHandler(ctrl, zaptest.NewLogger(t)).Register(mux))
	return mux
}

func TestHTTPHandler_GetSubmission(t *testing.T) {
	id := uuid.New()
	received := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	ctrl := &mockFilingController{
		getSubmissionFunc: func(_ context.Context, got uuid.UUID) (*models.Submission, error) {
			if got != id {
				return nil, e.ErrNotFound
			}
			return &models.Submission{
				ID:          id,
				ReferenceID: "ABC123",
				FilingType:  models.FilingTypeChargeRegistration,
				CompanyName: "Test Limited",
				Status:      models.SubmissionStatusPending,
				ReceivedAt:  received,
			}, nil
		},
	}
	mux := newMux(t, ctrl)

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/submissions/"+id.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body submissionView
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "ABC123", body.ReferenceID)
		assert.Equal(t, "charge_registration", body.FilingType)
		assert.Equal(t, "pending", body.Status)
		assert.True(t, received.Equal(body.ReceivedAt))
		assert.Nil(t, body.DecidedAt)
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/submissions/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/submissions/nope", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHTTPHandler_Validate(t *testing.T) {
	ctrl := &mockFilingController{
		validateFunc: func(_ context.Context, payload []byte) (validator.Result, error) {
			switch string(payload) {
			case "valid":
				return validator.Result{}, nil
			case "invalid":
				return validator.Result{Violations: []validator.Violation{
					{Path: "deed", Code: models.CodeMissingField, Message: "is required"},
				}}, nil
			}
			return validator.Result{}, &e.DecodeError{Path: "filing_type", Err: e.ErrMissingField}
		},
	}
	mux := newMux(t, ctrl)

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/filings/validate", bytes.NewBufferString(body)))
		return rec
	}

	t.Run("valid", func(t *testing.T) {
		rec := post("valid")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"valid":true,"violations":[]}`, rec.Body.String())
	})

	t.Run("violations", func(t *testing.T) {
		rec := post("invalid")
		require.Equal(t, http.StatusOK, rec.Code)
		var body validationView
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.False(t, body.Valid)
		require.Len(t, body.Violations, 1)
		assert.Equal(t, "deed", body.Violations[0].Path)
	})

	t.Run("undecodable", func(t *testing.T) {
		rec := post("garbage")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "filing_type")
	})

	t.Run("oversized body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		body := bytes.NewReader(make([]byte, maxPayloadBytes+1))
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/filings/validate", body))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("broken body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		body := iotest.ErrReader(errors.New("connection reset"))
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/filings/validate", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "connection reset")
	})
}
