package test

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/efiling/internal/filing/auth"
	"github.com/gartstein/efiling/internal/filing/client"
	"github.com/gartstein/efiling/internal/filing/codec"
	"github.com/gartstein/efiling/internal/filing/controller"
	"github.com/gartstein/efiling/internal/filing/db"
	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/events"
	"github.com/gartstein/efiling/internal/filing/handlers"
	"github.com/gartstein/efiling/internal/filing/metrics"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/rpc"
	"github.com/gartstein/efiling/internal/filing/samples"
	"github.com/gartstein/efiling/internal/filing/transport"
	"github.com/gartstein/efiling/internal/filing/validator"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const jwtSecret = "integration-secret"

type recordedEvent struct {
	Type       events.EventType
	Submission models.Submission
}

// recordingProducer stands in for Kafka and keeps every lifecycle event.
type recordingProducer struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingProducer) Produce(t events.EventType, s *models.Submission) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: t, Submission: *s})
}

// waitFor polls until an event of type t for submissionID was produced.
func (p *recordingProducer) waitFor(t events.EventType, submissionID string) (recordedEvent, error) {
	var found recordedEvent
	err := backoff.Retry(func() error {
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, ev := range p.events {
			if ev.Type == t && ev.Submission.ID.String() == submissionID {
				found = ev
				return nil
			}
		}
		return fmt.Errorf("no %s event for %s yet", t, submissionID)
	}, backoff.WithMaxRetries(backoff.NewConstantBackOff(20*time.Millisecond), 100))
	return found, err
}

type IntegrationTestSuite struct {
	suite.Suite
	repo      *db.Repository
	producer  *recordingProducer
	service   *controller.FilingService
	server    *grpc.Server
	conn      *grpc.ClientConn
	transport *transport.Client
	submitter *client.Submitter
	logger    *zap.Logger
	signed    time.Time
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupTest() {
	s.logger = zap.NewNop()
	s.signed = time.Now().UTC()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	sqlDB, err := gdb.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.repo, err = db.NewRepositoryFromDB(gdb)
	s.Require().NoError(err)

	s.producer = &recordingProducer{}
	v := validator.New()
	s.service = controller.NewFilingService(s.repo, s.producer, v, metrics.NewWithRegistry(prometheus.NewRegistry()), s.logger)

	lis := bufconn.Listen(1 << 20)
	interceptor := auth.NewAuthInterceptor(jwtSecret)
	s.server = grpc.NewServer(grpc.UnaryInterceptor(interceptor.Unary()))
	rpc.RegisterFilingServiceServer(s.server, handlers.NewFilingHandler(s.service, s.logger))
	go func() { _ = s.server.Serve(lis) }()

	token, err := auth.GenerateToken("presenter-1", jwtSecret, time.Hour)
	s.Require().NoError(err)
	s.conn = s.dial(lis, grpc.WithPerRPCCredentials(auth.BearerCredentials(token, false)))
	s.transport = transport.New(rpc.NewFilingServiceClient(s.conn), 2*time.Second, s.logger)
	s.submitter = client.NewSubmitter(s.transport, v, s.logger)
}

func (s *IntegrationTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	_ = s.repo.Close()
}

func (s *IntegrationTestSuite) dial(lis *bufconn.Listener, opts ...grpc.DialOption) *grpc.ClientConn {
	opts = append(opts,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	conn, err := grpc.NewClient("passthrough:///bufnet", opts...)
	s.Require().NoError(err)
	return conn
}

func (s *IntegrationTestSuite) ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	s.T().Cleanup(cancel)
	return ctx
}

func (s *IntegrationTestSuite) TestSubmitAndQuery() {
	receipt, err := s.submitter.Submit(s.ctx(), samples.LLPIncorporation(s.signed))
	s.Require().NoError(err)
	s.True(receipt.Accepted)
	s.Len(receipt.ReferenceID, 6)

	st, err := s.transport.GetSubmission(s.ctx(), receipt.SubmissionID)
	s.Require().NoError(err)
	s.Equal(models.SubmissionStatusPending, st.Status)
	s.Equal(receipt.ReferenceID, st.ReferenceID)
	s.Equal(models.FilingTypeCompanyIncorporation, st.FilingType)
	s.Empty(st.Rejections)

	ev, err := s.producer.waitFor(events.FilingSubmitted, receipt.SubmissionID)
	s.Require().NoError(err)
	s.Equal(receipt.ReferenceID, ev.Submission.ReferenceID)
}

func (s *IntegrationTestSuite) TestStoredPayloadDecodes() {
	filing := samples.ChargeRegistration(s.signed)
	receipt, err := s.submitter.Submit(s.ctx(), filing)
	s.Require().NoError(err)

	stored, err := s.repo.GetSubmission(s.ctx(), uuid.MustParse(receipt.SubmissionID))
	s.Require().NoError(err)
	decoded, err := codec.Decode(stored.Payload)
	s.Require().NoError(err)
	s.Equal(filing, decoded)
}

func (s *IntegrationTestSuite) TestDuplicateTransaction() {
	tx := uuid.NewString()
	_, err := s.submitter.SubmitWithTransaction(s.ctx(), tx, samples.ChargeRegistration(s.signed))
	s.Require().NoError(err)

	_, err = s.submitter.SubmitWithTransaction(s.ctx(), tx, samples.ChargeRegistration(s.signed))
	s.ErrorIs(err, e.ErrDuplicateSubmission)
}

func (s *IntegrationTestSuite) TestGatewayRejectsInvalidFiling() {
	filing := samples.LLPIncorporation(s.signed)
	filing.Appointments = nil
	payload, err := codec.Encode(filing)
	s.Require().NoError(err)

	// Bypass the submitter, which would refuse to send this.
	_, err = s.transport.Submit(s.ctx(), uuid.NewString(), filing.FilingType(), payload)
	s.Require().ErrorIs(err, e.ErrRejected)

	var rejected *e.RejectionError
	s.Require().ErrorAs(err, &rejected)
	s.NotEmpty(rejected.Rejections)
	for _, r := range rejected.Rejections {
		s.NotEmpty(r.Code)
	}
}

func (s *IntegrationTestSuite) TestDecisionLifecycle() {
	receipt, err := s.submitter.Submit(s.ctx(), samples.PSCNotification(s.signed))
	s.Require().NoError(err)
	id := uuid.MustParse(receipt.SubmissionID)

	rejections := []e.Rejection{{Code: "9999", Message: "Officer name does not match", FieldPath: "psc.0.name"}}
	_, err = s.service.RecordDecision(s.ctx(), models.Decision{
		SubmissionID: id,
		Status:       models.SubmissionStatusRejected,
		Rejections:   rejections,
	})
	s.Require().NoError(err)

	st, err := s.transport.GetSubmission(s.ctx(), receipt.SubmissionID)
	s.Require().NoError(err)
	s.Equal(models.SubmissionStatusRejected, st.Status)
	s.Equal(rejections, st.Rejections)

	_, err = s.producer.waitFor(events.FilingRejected, receipt.SubmissionID)
	s.Require().NoError(err)

	_, err = s.service.RecordDecision(s.ctx(), models.Decision{SubmissionID: id, Status: models.SubmissionStatusAccepted})
	s.ErrorIs(err, e.ErrAlreadyDecided)
}

func (s *IntegrationTestSuite) TestUnknownSubmission() {
	_, err := s.transport.GetSubmission(s.ctx(), uuid.NewString())
	s.ErrorIs(err, e.ErrNotFound)
}

func (s *IntegrationTestSuite) TestUnauthenticated() {
	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.UnaryInterceptor(auth.NewAuthInterceptor(jwtSecret).Unary()))
	rpc.RegisterFilingServiceServer(server, handlers.NewFilingHandler(s.service, s.logger))
	go func() { _ = server.Serve(lis) }()
	defer server.Stop()

	conn := s.dial(lis)
	defer conn.Close()
	anonymous := transport.New(rpc.NewFilingServiceClient(conn), time.Second, s.logger)

	_, err := anonymous.GetSubmission(s.ctx(), uuid.NewString())
	s.Equal(codes.Unauthenticated, status.Code(err))
}

func (s *IntegrationTestSuite) TestOtherPresenterCannotQuery() {
	receipt, err := s.submitter.Submit(s.ctx(), samples.ChargeRegistration(s.signed))
	s.Require().NoError(err)

	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.UnaryInterceptor(auth.NewAuthInterceptor(jwtSecret).Unary()))
	rpc.RegisterFilingServiceServer(server, handlers.NewFilingHandler(s.service, s.logger))
	go func() { _ = server.Serve(lis) }()
	defer server.Stop()

	token, err := auth.GenerateToken("presenter-2", jwtSecret, time.Hour)
	s.Require().NoError(err)
	conn := s.dial(lis, grpc.WithPerRPCCredentials(auth.BearerCredentials(token, false)))
	defer conn.Close()
	other := transport.New(rpc.NewFilingServiceClient(conn), time.Second, s.logger)

	_, err = other.GetSubmission(s.ctx(), receipt.SubmissionID)
	s.ErrorIs(err, e.ErrNotFound)

	st, err := s.transport.GetSubmission(s.ctx(), receipt.SubmissionID)
	s.Require().NoError(err)
	s.Equal(receipt.ReferenceID, st.ReferenceID)
}
