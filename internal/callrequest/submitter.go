// Package callrequest asks the remote call backend to phone a user about a
// topic. Every invocation validates its inputs, performs at most one POST and
// reports exactly one notification; nothing is retried or remembered.
package callrequest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cryptocall/internal/notify"
)

const (
	MsgPhoneMissing  = "Please enter a valid phone number."
	MsgWalletMissing = "Wallet address not found. Please connect your wallet."
	MsgSent          = "Call request successfully sent!"
	MsgFailed        = "Failed to send call request."
	msgErrorPrefix   = "Error: "
)

// Outcome classifies how a single invocation ended.
type Outcome int

const (
	OutcomePhoneMissing Outcome = iota
	OutcomeWalletMissing
	OutcomeSent
	OutcomeFailed
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomePhoneMissing:
		return "phone_missing"
	case OutcomeWalletMissing:
		return "wallet_missing"
	case OutcomeSent:
		return "sent"
	case OutcomeFailed:
		return "failed"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// IsValidationError reports whether the invocation stopped before any I/O.
func (o Outcome) IsValidationError() bool {
	return o == OutcomePhoneMissing || o == OutcomeWalletMissing
}

// Request is the wire body. Field names are part of the backend contract.
type Request struct {
	PhoneNumber   string `json:"phoneNumber"`
	WalletAddress string `json:"walletAddress"`
	Topic         string `json:"topic"`
}

// Submitter posts call requests to a single configured endpoint.
// It holds no per-invocation state and is safe for concurrent use.
type Submitter struct {
	endpoint string
	http     *http.Client
	logger   *zap.SugaredLogger
}

type Option func(*Submitter)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Submitter) {
		if c != nil {
			s.http = c
		}
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Submitter) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSubmitter(endpoint string, opts ...Option) (*Submitter, error) {
	if endpoint == "" {
		return nil, errors.New("call request endpoint is required")
	}
	s := &Submitter{
		endpoint: endpoint,
		http:     http.DefaultClient,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Submitter) Endpoint() string { return s.endpoint }

// Submit validates phoneNumber then walletAddress and, if both are present,
// POSTs {phoneNumber, walletAddress, topic} once. The result is delivered to
// n as exactly one message. The returned Outcome is informational.
func (s *Submitter) Submit(ctx context.Context, phoneNumber, walletAddress, topic string, n notify.Notifier) Outcome {
	req := Request{
		PhoneNumber:   phoneNumber,
		WalletAddress: walletAddress,
		Topic:         topic,
	}
	log := s.logger.With("invocation_id", uuid.NewString(), "topic", req.Topic)

	if req.PhoneNumber == "" {
		log.Debugw("call request rejected", "reason", OutcomePhoneMissing.String())
		n.Notify(MsgPhoneMissing)
		return OutcomePhoneMissing
	}
	if req.WalletAddress == "" {
		log.Debugw("call request rejected", "reason", OutcomeWalletMissing.String())
		n.Notify(MsgWalletMissing)
		return OutcomeWalletMissing
	}

	log = log.With("wallet", req.WalletAddress, "phone", maskPhone(req.PhoneNumber))

	status, err := s.post(ctx, req)
	if err != nil {
		log.Warnw("call request transport error", "error", err)
		n.Notify(msgErrorPrefix + err.Error())
		return OutcomeTransportError
	}
	if status/100 != 2 {
		log.Warnw("call request failed", "status", status)
		n.Notify(MsgFailed)
		return OutcomeFailed
	}

	log.Infow("call request sent", "status", status)
	n.Notify(MsgSent)
	return OutcomeSent
}

func (s *Submitter) post(ctx context.Context, body Request) (int, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return 0, fmt.Errorf("encode call request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// maskPhone keeps the last four characters for log correlation.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return "****" + phone[len(phone)-4:]
}
