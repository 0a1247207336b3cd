// Package advice asks a language model for financial advice.
package advice

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Messages returned instead of advice when no advice could be generated.
const (
	MessageMisconfigured   = "The financial assistant is not configured. Please contact the administrator."
	MessageQuota           = "The financial assistant is currently over its usage quota. Please try again later."
	MessageGeneric         = "Sorry, I couldn't fetch the financial advice at this moment. Please try again later."
	MessageInvalidDocument = "The uploaded document could not be read. Please upload a valid PDF file."
)

// Kinds of failures.
var (
	ErrMisconfigured   = errors.New("advice service is not configured")
	ErrQuota           = errors.New("advice service quota exceeded")
	ErrUnavailable     = errors.New("advice service failed")
	ErrInvalidDocument = errors.New("invalid document")
)

var pdfMagic = []byte("%PDF-")

// Config configures an Advisor.
type Config struct {
	APIKey           string
	BaseURL          string // Defaults to the OpenAI API
	Model            string
	Currency         currency.Unit
	MaxDocumentBytes int64
	Timeout          time.Duration
}

// Snapshot contains the figures advice is based on.
type Snapshot struct {
	TotalBudget decimal.Decimal `json:"totalBudget" example:"1500"`
	TotalIncome decimal.Decimal `json:"totalIncome" example:"4000"`
	TotalSpend  decimal.Decimal `json:"totalSpend" example:"1100"`
	Query       string          `json:"query" example:"How can I save more?"`
}

// Input is what advice is requested for.
//
// If Document is set, advice is given for the document. Otherwise, if
// Snapshot is set, advice is given for the snapshot. Without both,
// generic advice is given.
type Input struct {
	Document []byte
	Snapshot *Snapshot
}

// Advice is the answer of the Advisor.
type Advice struct {
	Text     string `json:"advice" example:"Consider moving 10% of your income into savings right when you get paid."`
	Fallback bool   `json:"fallback" example:"false"` // Text is a message explaining why no advice is available
	Err      error  `json:"-"`
}

// Advisor generates advice with one chat completion per request.
type Advisor struct {
	client           *openai.Client
	configured       bool
	model            string
	currency         currency.Unit
	printer          *message.Printer
	maxDocumentBytes int64
}

// New returns an Advisor. Without an API key, every request returns
// MessageMisconfigured.
func New(cfg Config) *Advisor {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	unit := cfg.Currency
	if unit == (currency.Unit{}) {
		unit = currency.USD
	}

	return &Advisor{
		client:           openai.NewClientWithConfig(clientConfig),
		configured:       cfg.APIKey != "",
		model:            cfg.Model,
		currency:         unit,
		printer:          message.NewPrinter(language.English),
		maxDocumentBytes: cfg.MaxDocumentBytes,
	}
}

// MaxDocumentBytes is the largest document accepted.
func (a *Advisor) MaxDocumentBytes() int64 {
	return a.maxDocumentBytes
}

// Advise requests advice for in.
func (a *Advisor) Advise(ctx context.Context, in Input) Advice {
	if in.Document != nil {
		if err := a.checkDocument(in.Document); err != nil {
			return fallback(err)
		}
	}

	if !a.configured {
		return fallback(ErrMisconfigured)
	}

	var msg openai.ChatCompletionMessage
	switch {
	case in.Document != nil:
		msg = documentMessage(in.Document)
	case in.Snapshot != nil:
		msg = openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: a.snapshotPrompt(*in.Snapshot)}
	default:
		msg = openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: genericPrompt}
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: []openai.ChatCompletionMessage{msg},
	})
	if err != nil {
		log.Error().Err(err).Str("model", a.model).Msg("Chat completion failed")
		return fallback(classify(err))
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Error().Str("model", a.model).Msg("Chat completion returned no advice")
		return fallback(ErrUnavailable)
	}

	return Advice{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}
}

func (a *Advisor) checkDocument(document []byte) error {
	if a.maxDocumentBytes > 0 && int64(len(document)) > a.maxDocumentBytes {
		return fmt.Errorf("%w: document has %d bytes, at most %d are allowed", ErrInvalidDocument, len(document), a.maxDocumentBytes)
	}

	if !bytes.HasPrefix(document, pdfMagic) {
		return fmt.Errorf("%w: not a PDF file", ErrInvalidDocument)
	}

	return nil
}

// classify maps errors of the API to the kinds of failures.
func classify(err error) error {
	status := 0
	code := ""

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatusCode
		code = apiErr.Type
		if c, ok := apiErr.Code.(string); ok {
			code = c
		}
	} else if errors.As(err, &reqErr) {
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusTooManyRequests || code == "insufficient_quota":
		return fmt.Errorf("%w: %w", ErrQuota, err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrMisconfigured, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

func fallback(err error) Advice {
	text := MessageGeneric
	switch {
	case errors.Is(err, ErrInvalidDocument):
		text = MessageInvalidDocument
	case errors.Is(err, ErrMisconfigured):
		text = MessageMisconfigured
	case errors.Is(err, ErrQuota):
		text = MessageQuota
	}

	return Advice{Text: text, Fallback: true, Err: err}
}

func documentMessage(document []byte) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: documentPrompt,
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(document),
				},
			},
		},
	}
}
