package handlers

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/rpc"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// ErrorDomain is the ErrorInfo domain of registry rejections.
const ErrorDomain = "efiling.gartstein.dev"

// FilingHandler serves rpc.FilingServiceServer on top of a FilingController.
type FilingHandler struct {
	rpc.UnimplementedFilingServiceServer
	service FilingController
	logger  *zap.Logger
}

// NewFilingHandler constructs a new FilingHandler with the given service and logger.
func NewFilingHandler(service FilingController, logger *zap.Logger) *FilingHandler {
	return &FilingHandler{
		service: service,
		logger:  logger.Named("grpc_handler"),
	}
}

// Submit hands an encoded filing to the service.
func (h *FilingHandler) Submit(ctx context.Context, req *rpc.SubmitRequest) (*rpc.SubmitResponse, error) {
	receipt, err := h.service.Submit(ctx, req.TransactionID, req.FilingType, req.Payload)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return &rpc.SubmitResponse{
		SubmissionID: receipt.SubmissionID,
		ReferenceID:  receipt.ReferenceID,
		Accepted:     receipt.Accepted,
	}, nil
}

// GetSubmission reports the state of a submission.
func (h *FilingHandler) GetSubmission(ctx context.Context, req *rpc.GetSubmissionRequest) (*rpc.SubmissionStatus, error) {
	id, err := uuid.Parse(req.SubmissionID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid submission ID")
	}
	sub, err := h.service.GetSubmission(ctx, id)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return &rpc.SubmissionStatus{
		SubmissionID: sub.ID.String(),
		ReferenceID:  sub.ReferenceID,
		FilingType:   sub.FilingType,
		Status:       sub.Status,
		Rejections:   sub.Rejections,
	}, nil
}

// mapServiceError maps domain or repository errors to gRPC status codes.
// Rejections travel as FailedPrecondition with one ErrorInfo per rejection.
func (h *FilingHandler) mapServiceError(err error) error {
	var rejection *e.RejectionError
	switch {
	case errors.As(err, &rejection):
		return rejectionStatus(rejection).Err()
	case errors.Is(err, e.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, e.ErrDuplicateSubmission):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, e.ErrInvalidInput), errors.Is(err, e.ErrDecode):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		return status.Error(codes.Internal, fmt.Sprintf("internal server error: %v", err))
	}
}

func rejectionStatus(r *e.RejectionError) *status.Status {
	st := status.New(codes.FailedPrecondition, r.Error())
	details := make([]protoadapt.MessageV1, 0, len(r.Rejections))
	for _, rj := range r.Rejections {
		details = append(details, &errdetails.ErrorInfo{
			Reason: rj.Code,
			Domain: ErrorDomain,
			Metadata: map[string]string{
				"message":    rj.Message,
				"field_path": rj.FieldPath,
			},
		})
	}
	detailed, err := st.WithDetails(details...)
	if err != nil {
		return st
	}
	return detailed
}
