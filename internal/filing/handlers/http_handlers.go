package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/validator"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/status"
)

// maxPayloadBytes bounds validate requests. Filings carry their PDFs inline.
const maxPayloadBytes = 32 << 20

type submissionView struct {
	SubmissionID  string        `json:"submission_id"`
	ReferenceID   string        `json:"reference_id"`
	FilingType    string        `json:"filing_type"`
	CompanyNumber string        `json:"company_number,omitempty"`
	CompanyName   string        `json:"company_name"`
	Status        string        `json:"status"`
	Rejections    []e.Rejection `json:"rejections,omitempty"`
	ReceivedAt    time.Time     `json:"received_at"`
	DecidedAt     *time.Time    `json:"decided_at,omitempty"`
}

type validationView struct {
	Valid      bool                  `json:"valid"`
	Violations []validator.Violation `json:"violations"`
}

type errorView struct {
	Error string `json:"error"`
}

// HTTPHandler serves the REST side of the gateway.
type HTTPHandler struct {
	service FilingController
	grpc    *FilingHandler
	logger  *zap.Logger
}

func NewHTTPHandler(service FilingController, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		grpc:    NewFilingHandler(service, logger),
		logger:  logger.Named("http_handler"),
	}
}

// Register adds the routes to mux.
func (h *HTTPHandler) Register(mux *runtime.ServeMux) error {
	if err := mux.HandlePath(http.MethodGet, "/v1/submissions/{id}", h.getSubmission); err != nil {
		return err
	}
	return mux.HandlePath(http.MethodPost, "/v1/filings/validate", h.validate)
}

func (h *HTTPHandler) getSubmission(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := uuid.Parse(params["id"])
	if err != nil {
		h.write(w, http.StatusBadRequest, errorView{Error: "invalid submission ID"})
		return
	}
	sub, err := h.service.GetSubmission(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.write(w, http.StatusOK, toSubmissionView(sub))
}

// validate checks an encoded filing without submitting it.
func (h *HTTPHandler) validate(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		code := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		h.write(w, code, errorView{Error: err.Error()})
		return
	}
	result, err := h.service.Validate(r.Context(), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	violations := result.Violations
	if violations == nil {
		violations = []validator.Violation{}
	}
	h.write(w, http.StatusOK, validationView{Valid: result.Valid(), Violations: violations})
}

// writeError reuses the gRPC mapping so both transports agree on codes.
func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	st := status.Convert(h.grpc.mapServiceError(err))
	h.write(w, runtime.HTTPStatusFromCode(st.Code()), errorView{Error: st.Message()})
}

func (h *HTTPHandler) write(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}

func toSubmissionView(s *models.Submission) submissionView {
	return submissionView{
		SubmissionID:  s.ID.String(),
		ReferenceID:   s.ReferenceID,
		FilingType:    s.FilingType.String(),
		CompanyNumber: s.CompanyNumber,
		CompanyName:   s.CompanyName,
		Status:        s.Status.String(),
		Rejections:    s.Rejections,
		ReceivedAt:    s.ReceivedAt,
		DecidedAt:     s.DecidedAt,
	}
}
