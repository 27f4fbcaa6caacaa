// Package transport is the gRPC client of the filing gateway.
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/efiling/internal/filing/auth"
	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/rpc"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type Config struct {
	Address string
	// Token is a bearer JWT sent with every call.
	Token string
	TLS   bool
	// MaxElapsed bounds the retries of a call against an unavailable
	// gateway.
	MaxElapsed time.Duration
}

// Client submits encoded filings to the gateway.
type Client struct {
	conn    *grpc.ClientConn
	rpc     rpc.FilingServiceClient
	logger  *zap.Logger
	backoff func() backoff.BackOff
}

// Dial prepares a client for cfg.Address. No connection is made until the
// first call.
func Dial(cfg Config, logger *zap.Logger) (*Client, error) {
	creds := insecure.NewCredentials()
	if cfg.TLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts := []grpc.DialOption{grpc.WithTransportCredentials(creds)}
	if cfg.Token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(auth.BearerCredentials(cfg.Token, cfg.TLS)))
	}
	conn, err := grpc.NewClient(cfg.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC client: %w", err)
	}
	c := New(rpc.NewFilingServiceClient(conn), cfg.MaxElapsed, logger)
	c.conn = conn
	return c, nil
}

// New wraps an existing service client. A zero maxElapsed uses the backoff
// default.
func New(client rpc.FilingServiceClient, maxElapsed time.Duration, logger *zap.Logger) *Client {
	return &Client{
		rpc:    client,
		logger: logger.Named("transport"),
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			if maxElapsed > 0 {
				b.MaxElapsedTime = maxElapsed
			}
			return b
		},
	}
}

// Submit sends payload, retrying while the gateway is unavailable. The
// transaction ID makes retries safe. Registry rejections come back as
// *errors.RejectionError.
func (c *Client) Submit(ctx context.Context, transactionID string, filingType models.FilingType, payload []byte) (*models.Receipt, error) {
	req := &rpc.SubmitRequest{TransactionID: transactionID, FilingType: filingType, Payload: payload}
	var resp *rpc.SubmitResponse
	err := c.retry(ctx, "Submit", func() error {
		var err error
		resp, err = c.rpc.Submit(ctx, req)
		return err
	})
	if err != nil {
		return nil, fromStatus(err)
	}
	return &models.Receipt{SubmissionID: resp.SubmissionID, ReferenceID: resp.ReferenceID, Accepted: resp.Accepted}, nil
}

// GetSubmission fetches the gateway's view of a submission.
func (c *Client) GetSubmission(ctx context.Context, submissionID string) (*rpc.SubmissionStatus, error) {
	var resp *rpc.SubmissionStatus
	err := c.retry(ctx, "GetSubmission", func() error {
		var err error
		resp, err = c.rpc.GetSubmission(ctx, &rpc.GetSubmissionRequest{SubmissionID: submissionID})
		return err
	})
	if err != nil {
		return nil, fromStatus(err)
	}
	return resp, nil
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) retry(ctx context.Context, method string, call func() error) error {
	op := func() error {
		err := call()
		if err != nil && status.Code(err) != codes.Unavailable {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("Gateway unavailable, retrying",
			zap.String("method", method),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
	return backoff.RetryNotify(op, backoff.WithContext(c.backoff(), ctx), notify)
}

// fromStatus turns a gRPC status back into the errors of the filing
// packages.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.FailedPrecondition:
		var rejections []e.Rejection
		for _, d := range st.Details() {
			if info, ok := d.(*errdetails.ErrorInfo); ok {
				rejections = append(rejections, e.Rejection{
					Code:      info.GetReason(),
					Message:   info.GetMetadata()["message"],
					FieldPath: info.GetMetadata()["field_path"],
				})
			}
		}
		if len(rejections) > 0 {
			return &e.RejectionError{Rejections: rejections}
		}
	case codes.NotFound:
		return fmt.Errorf("%w: %s", e.ErrNotFound, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", e.ErrDuplicateSubmission, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", e.ErrInvalidInput, st.Message())
	}
	return err
}
