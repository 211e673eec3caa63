package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	out    *ses.SendEmailOutput
	err    error
	lastIn *ses.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.lastIn = in
	if f.err != nil {
		return nil, f.err
	}
	if f.out != nil {
		return f.out, nil
	}
	return &ses.SendEmailOutput{}, nil
}

func mustNewSender(t *testing.T, api *fakeSES) *Sender {
	t.Helper()
	s, err := New(api, "reports@seascan.test")
	require.NoError(t, err)
	return s
}

func TestSend_HappyPath(t *testing.T) {
	api := &fakeSES{out: &ses.SendEmailOutput{MessageId: aws.String("msg-1")}}
	s := mustNewSender(t, api)

	id, err := s.Send(context.Background(), "operator@example.com", "Email from seascan_bot", "- long_beach: ph: 7\n")
	require.NoError(t, err)
	require.Equal(t, "msg-1", id)
	require.Equal(t, "reports@seascan.test", *api.lastIn.Source)
	require.Equal(t, []string{"operator@example.com"}, api.lastIn.Destination.ToAddresses)
	require.Equal(t, "Email from seascan_bot", *api.lastIn.Message.Subject.Data)
	require.Contains(t, *api.lastIn.Message.Body.Text.Data, "long_beach")
}

func TestSend_EmptyRecipient(t *testing.T) {
	api := &fakeSES{}
	s := mustNewSender(t, api)

	_, err := s.Send(context.Background(), " ", "subject", "body")
	require.Error(t, err)
	require.Nil(t, api.lastIn)
}

func TestSend_SESError(t *testing.T) {
	api := &fakeSES{err: errors.New("MessageRejected")}
	s := mustNewSender(t, api)

	_, err := s.Send(context.Background(), "operator@example.com", "subject", "body")
	require.Error(t, err)
	require.Contains(t, err.Error(), "operator@example.com")
}

func TestIsAuthError(t *testing.T) {
	authErr := &smithy.GenericAPIError{Code: "UnrecognizedClientException", Message: "bad credentials"}
	require.True(t, IsAuthError(authErr))

	wrapped := errors.Join(errors.New("mail: send"), authErr)
	require.True(t, IsAuthError(wrapped))

	require.False(t, IsAuthError(&smithy.GenericAPIError{Code: "MessageRejected"}))
	require.False(t, IsAuthError(errors.New("network down")))
	require.False(t, IsAuthError(nil))
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil, "reports@seascan.test")
	require.Error(t, err)
}

func TestNew_EmptySource(t *testing.T) {
	_, err := New(&fakeSES{}, " ")
	require.Error(t, err)
}
