package rpc

import (
	"context"
	"net"
	"testing"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestMessages_RoundTrip(t *testing.T) {
	t.Run("submit request", func(t *testing.T) {
		in := &SubmitRequest{TransactionID: "tx-1", FilingType: models.FilingTypeChargeRegistration, Payload: []byte{1, 2, 3}}
		b, err := in.Marshal()
		require.NoError(t, err)
		var out SubmitRequest
		require.NoError(t, out.Unmarshal(b))
		assert.Equal(t, *in, out)
	})

	t.Run("submit response", func(t *testing.T) {
		in := &SubmitResponse{SubmissionID: "id", ReferenceID: "A1B2C3", Accepted: true}
		b, err := in.Marshal()
		require.NoError(t, err)
		var out SubmitResponse
		require.NoError(t, out.Unmarshal(b))
		assert.Equal(t, *in, out)
	})

	t.Run("submission status", func(t *testing.T) {
		in := &SubmissionStatus{
			SubmissionID: "id",
			ReferenceID:  "A1B2C3",
			FilingType:   models.FilingTypeCompanyIncorporation,
			Status:       models.SubmissionStatusRejected,
			Rejections: []e.Rejection{
				{Code: "9001", Message: "name not available", FieldPath: "form_submission.company_name"},
				{Code: "9002", Message: "fee unpaid"},
			},
		}
		b, err := in.Marshal()
		require.NoError(t, err)
		var out SubmissionStatus
		require.NoError(t, out.Unmarshal(b))
		assert.Equal(t, *in, out)
	})
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	b := protowire.AppendTag(nil, 42, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	b = appendString(b, 1, "id")

	var out GetSubmissionRequest
	require.NoError(t, out.Unmarshal(b))
	assert.Equal(t, "id", out.SubmissionID)
}

func TestUnmarshal_Errors(t *testing.T) {
	var out SubmitRequest
	err := out.Unmarshal([]byte{0x0a, 0x05, 'a'})
	assert.ErrorIs(t, err, e.ErrDecode)

	wrongType := appendVarint(nil, 1, 7)
	assert.ErrorIs(t, out.Unmarshal(wrongType), e.ErrDecode)
}

func TestCodec_RejectsForeignTypes(t *testing.T) {
	_, err := Codec{}.Marshal("text")
	assert.Error(t, err)
	assert.Error(t, Codec{}.Unmarshal(nil, new(int)))
}

type fakeServer struct {
	UnimplementedFilingServiceServer
	submitted *SubmitRequest
}

func (f *fakeServer) Submit(_ context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	f.submitted = req
	return &SubmitResponse{SubmissionID: "sub-1", ReferenceID: "ABC123", Accepted: true}, nil
}

func TestService_OverBufconn(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	fake := &fakeServer{}
	RegisterFilingServiceServer(srv, fake)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := NewFilingServiceClient(conn)

	resp, err := client.Submit(context.Background(), &SubmitRequest{TransactionID: "tx", Payload: []byte{8, 1}})
	require.NoError(t, err)
	assert.Equal(t, "ABC123", resp.ReferenceID)
	assert.True(t, resp.Accepted)
	require.NotNil(t, fake.submitted)
	assert.Equal(t, "tx", fake.submitted.TransactionID)

	_, err = client.GetSubmission(context.Background(), &GetSubmissionRequest{SubmissionID: "x"})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}
