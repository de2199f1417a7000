package datasource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smartscreen/backend/internal/domain"
)

const (
	QuotableURL   = "https://api.quotable.io/random"
	ZenQuotesURL  = "https://zenquotes.io/api/random"
	DummyJSONURL  = "https://dummyjson.com/quotes/random"
	quoteCategory = "Inspiration"
)

// QuoteProvider fetches one quote from one endpoint
type QuoteProvider interface {
	Name() string
	Fetch(ctx context.Context, timeout time.Duration) (domain.Quote, error)
}

// JSONQuoteProvider extracts a quote using gjson paths, so one type covers
// every provider schema.
type JSONQuoteProvider struct {
	client       *Client
	name         string
	url          string
	textPath     string
	authorPath   string
	categoryPath string
}

// NewQuotableProvider reads {content, author, tags}
func NewQuotableProvider(client *Client, url string) *JSONQuoteProvider {
	return &JSONQuoteProvider{client: client, name: "quotable", url: url,
		textPath: "content", authorPath: "author", categoryPath: "tags.0"}
}

// NewZenQuotesProvider reads [{q, a}]
func NewZenQuotesProvider(client *Client, url string) *JSONQuoteProvider {
	return &JSONQuoteProvider{client: client, name: "zenquotes", url: url,
		textPath: "0.q", authorPath: "0.a"}
}

// NewDummyJSONProvider reads {quote, author}
func NewDummyJSONProvider(client *Client, url string) *JSONQuoteProvider {
	return &JSONQuoteProvider{client: client, name: "dummyjson", url: url,
		textPath: "quote", authorPath: "author"}
}

func (p *JSONQuoteProvider) Name() string { return p.name }

// Fetch returns ErrParse when the text comes back empty
func (p *JSONQuoteProvider) Fetch(ctx context.Context, timeout time.Duration) (domain.Quote, error) {
	doc, err := p.client.GetJSON(ctx, p.url, nil, timeout)
	if err != nil {
		return domain.Quote{}, err
	}

	text := strings.TrimSpace(doc.Get(p.textPath).String())
	if text == "" {
		return domain.Quote{}, fmt.Errorf("datasource: %w: %s returned no quote text", domain.ErrParse, p.name)
	}

	author := strings.TrimSpace(doc.Get(p.authorPath).String())
	if author == "" {
		author = "Unknown"
	}

	category := quoteCategory
	if p.categoryPath != "" {
		if c := doc.Get(p.categoryPath).String(); c != "" {
			category = c
		}
	}

	return domain.Quote{Text: text, Author: author, Category: category}, nil
}
