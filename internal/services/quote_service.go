package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Quote sources
const (
	QuoteSourceExternal        = "external"
	QuoteSourceFallback        = "fallback"
	QuoteSourceFallbackTimeout = "fallback_timeout"
	QuoteSourceFallbackError   = "fallback_error"
)

// DefaultQuoteTimeout bounds the external quote request
const DefaultQuoteTimeout = 10 * time.Second

// Quote is a quotation with its author and where it came from
type Quote struct {
	Quote  string
	Author string
	Source string
}

// QuoteProvider returns a quote. Implementations never fail.
type QuoteProvider interface {
	Fetch(ctx context.Context) Quote
}

// FallbackQuotes are served when the external service cannot be used
var FallbackQuotes = []Quote{
	{Quote: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Quote: "Success is not final, failure is not fatal: It is the courage to continue that counts.", Author: "Winston Churchill"},
	{Quote: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
	{Quote: "It is during our darkest moments that we must focus to see the light.", Author: "Aristotle"},
	{Quote: "The only impossible journey is the one you never begin.", Author: "Tony Robbins"},
	{Quote: "In the middle of difficulty lies opportunity.", Author: "Albert Einstein"},
	{Quote: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
	{Quote: "The way to get started is to quit talking and begin doing.", Author: "Walt Disney"},
	{Quote: "Don't let yesterday take up too much of today.", Author: "Will Rogers"},
	{Quote: "You learn more from failure than from success.", Author: "Unknown"},
}

var (
	errQuoteStatus  = errors.New("unexpected quote status")
	errQuoteInvalid = errors.New("malformed or empty quote payload")
)

type quotePayload struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// QuoteService fetches quotes from an HTTP endpoint and falls back to a fixed list
type QuoteService struct {
	url    string
	client *http.Client
	pick   func(n int) int
}

// NewQuoteService creates a QuoteService for url. A non-positive timeout uses
// DefaultQuoteTimeout.
func NewQuoteService(url string, timeout time.Duration) *QuoteService {
	if timeout <= 0 {
		timeout = DefaultQuoteTimeout
	}
	return &QuoteService{
		url:    url,
		client: &http.Client{Timeout: timeout},
		pick:   rand.Intn,
	}
}

// Fetch returns an external quote, or a random fallback quote tagged with the
// kind of failure
func (s *QuoteService) Fetch(ctx context.Context) Quote {
	quote, err := s.fetchExternal(ctx)
	if err == nil {
		return quote
	}

	source := QuoteSourceFallbackError
	switch {
	case isTimeout(err):
		source = QuoteSourceFallbackTimeout
	case errors.Is(err, errQuoteStatus), errors.Is(err, errQuoteInvalid):
		source = QuoteSourceFallback
	}

	zap.L().Warn("serving fallback quote", zap.String("source", source), zap.Error(err))
	return s.fallback(source)
}

func (s *QuoteService) fetchExternal(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("%w: %d", errQuoteStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, err
	}

	payload, err := decodeQuote(body)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Quote:  payload.Content,
		Author: payload.Author,
		Source: QuoteSourceExternal,
	}, nil
}

// decodeQuote accepts either a JSON array, using its first element, or a
// single object.
func decodeQuote(body []byte) (quotePayload, error) {
	var payload quotePayload

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var list []quotePayload
		if err := json.Unmarshal(body, &list); err != nil {
			return payload, fmt.Errorf("%w: %v", errQuoteInvalid, err)
		}
		if len(list) == 0 {
			return payload, errQuoteInvalid
		}
		payload = list[0]
	} else if err := json.Unmarshal(body, &payload); err != nil {
		return payload, fmt.Errorf("%w: %v", errQuoteInvalid, err)
	}

	if strings.TrimSpace(payload.Content) == "" || strings.TrimSpace(payload.Author) == "" {
		return payload, errQuoteInvalid
	}
	return payload, nil
}

func (s *QuoteService) fallback(source string) Quote {
	quote := FallbackQuotes[s.pick(len(FallbackQuotes))]
	quote.Source = source
	return quote
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
