package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/smartscreen/backend/internal/datasource"
	"github.com/smartscreen/backend/internal/domain"
)

var fallbackQuotes = []domain.Quote{
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs", Category: "Inspiration"},
	{Text: "Life is what happens when you're busy making other plans.", Author: "John Lennon", Category: "Inspiration"},
	{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt", Category: "Inspiration"},
	{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Author: "Winston Churchill", Category: "Inspiration"},
	{Text: "The journey of a thousand miles begins with one step.", Author: "Lao Tzu", Category: "Inspiration"},
	{Text: "It does not matter how slowly you go as long as you do not stop.", Author: "Confucius", Category: "Inspiration"},
	{Text: "In the middle of every difficulty lies opportunity.", Author: "Albert Einstein", Category: "Inspiration"},
	{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt", Category: "Inspiration"},
	{Text: "Act as if what you do makes a difference. It does.", Author: "William James", Category: "Inspiration"},
	{Text: "What you get by achieving your goals is not as important as what you become by achieving your goals.", Author: "Zig Ziglar", Category: "Inspiration"},
	{Text: "The best time to plant a tree was 20 years ago. The second best time is now.", Author: "Chinese Proverb", Category: "Inspiration"},
	{Text: "You miss 100% of the shots you don't take.", Author: "Wayne Gretzky", Category: "Inspiration"},
}

// QuoteService walks an ordered provider chain and stops at the first quote
type QuoteService struct {
	client *datasource.Client
	extra  []datasource.QuoteProvider
	logger *logrus.Entry
}

// NewQuoteService creates a quote service. The configured quote URL is always
// tried first with the content/author schema; extra providers follow in order.
func NewQuoteService(client *datasource.Client, extra ...datasource.QuoteProvider) *QuoteService {
	return &QuoteService{
		client: client,
		extra:  extra,
		logger: logrus.WithField("component", "quote"),
	}
}

func (s *QuoteService) providers(cfg domain.DomainSettings) []datasource.QuoteProvider {
	chain := make([]datasource.QuoteProvider, 0, len(s.extra)+1)
	if cfg.URL != "" {
		chain = append(chain, datasource.NewQuotableProvider(s.client, cfg.URL))
	}
	return append(chain, s.extra...)
}

// GetQuote returns the first non-empty quote. Failed providers are skipped, not retried.
func (s *QuoteService) GetQuote(ctx context.Context, cfg domain.DomainSettings) (domain.Quote, error) {
	var lastErr error
	for _, p := range s.providers(cfg) {
		q, err := p.Fetch(ctx, cfg.Timeout())
		if err == nil {
			return q, nil
		}
		s.logger.WithFields(logrus.Fields{"provider": p.Name(), "error": err}).Warn("Quote provider failed")
		lastErr = err
	}
	if lastErr == nil {
		lastErr = domain.ErrConfigurationSkip
	}
	return domain.Quote{}, fmt.Errorf("quote: all providers exhausted: %w", lastErr)
}

// FallbackQuote draws uniformly from the static list
func FallbackQuote() domain.Quote {
	return fallbackQuotes[rand.Intn(len(fallbackQuotes))]
}

// FallbackQuotes returns a copy of the static list
func FallbackQuotes() []domain.Quote {
	out := make([]domain.Quote, len(fallbackQuotes))
	copy(out, fallbackQuotes)
	return out
}
