// Package mailpkg delivers confirmation codes through an external mail gateway.
package mailpkg

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Mailer sends confirmation codes to users.
type Mailer struct {
	client         *resty.Client
	gatewayAddress string
	from           string
}

// New initializes a resty client for the given mail gateway address.
// An empty address puts the mailer into log-only mode for local development.
func New(gatewayAddress, from string) *Mailer {
	return &Mailer{
		client:         resty.New(),
		gatewayAddress: gatewayAddress,
		from:           from,
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendConfirmationCode delivers the sign-in code to the given email.
func (m *Mailer) SendConfirmationCode(ctx context.Context, email, code string) error {
	l := zerolog.Ctx(ctx)

	if m.gatewayAddress == "" {
		l.Info().Str("email", email).Str("code", code).Msg("mail gateway not configured, code logged only")
		return nil
	}

	body := sendRequest{
		From:    m.from,
		To:      email,
		Subject: "API confirmation code",
		Body:    fmt.Sprintf("Your confirmation code: %s", code),
	}

	response, err := m.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(m.gatewayAddress + "/v1/messages")
	if err != nil {
		l.Error().Err(err).Str("email", email).Msg("mail gateway request failed")
		return err
	}

	if response.IsError() {
		err := fmt.Errorf("mail gateway responded with status %d", response.StatusCode())
		l.Error().Err(err).Str("email", email).Send()

		return err
	}

	return nil
}
