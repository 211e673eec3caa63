// Package mail sends measurement reports by email through Amazon SES.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// sesAPI is the minimal SES interface required by Sender.
// Defined here for testability.
type sesAPI interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Sender sends plain-text emails from a fixed source address.
type Sender struct {
	api    sesAPI
	source string
}

// New creates a Sender that sends from the given source address.
func New(api sesAPI, source string) (*Sender, error) {
	if api == nil {
		return nil, errors.New("mail: api must not be nil")
	}
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("mail: source address must not be empty")
	}
	return &Sender{api: api, source: source}, nil
}

// Send delivers a plain-text email to a single recipient and returns the
// SES message id.
func (s *Sender) Send(ctx context.Context, recipient, subject, body string) (string, error) {
	if strings.TrimSpace(recipient) == "" {
		return "", errors.New("mail: recipient must not be empty")
	}

	out, err := s.api.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.source),
		Destination: &sestypes.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("mail: send to %s: %w", recipient, err)
	}

	messageID := ""
	if out.MessageId != nil {
		messageID = *out.MessageId
	}
	return messageID, nil
}

// IsAuthError reports whether err indicates missing or rejected AWS
// credentials rather than a delivery problem.
func IsAuthError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException",
			"InvalidClientTokenId",
			"SignatureDoesNotMatch",
			"AccessDenied",
			"AccessDeniedException",
			"ExpiredToken",
			"MissingAuthenticationToken":
			return true
		}
	}
	return false
}
