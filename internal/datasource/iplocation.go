package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/smartscreen/backend/internal/domain"
)

// IPLocator resolves the host's approximate location from its public IP.
// It expects the ipapi.co response shape.
type IPLocator struct {
	client *Client
}

// NewIPLocator creates a new IP locator
func NewIPLocator(client *Client) *IPLocator {
	return &IPLocator{client: client}
}

// Locate calls url once and maps the response to a Location tagged source=ip
func (l *IPLocator) Locate(ctx context.Context, url string, timeout time.Duration) (domain.Location, error) {
	doc, err := l.client.GetJSON(ctx, url, nil, timeout)
	if err != nil {
		return domain.Location{}, err
	}

	if doc.Get("error").Bool() {
		return domain.Location{}, fmt.Errorf("datasource: %w: ip lookup refused: %s", domain.ErrTransport, doc.Get("reason").String())
	}
	if err := requireFields(doc, "latitude", "longitude", "city"); err != nil {
		return domain.Location{}, err
	}

	return domain.Location{
		Latitude:  doc.Get("latitude").Float(),
		Longitude: doc.Get("longitude").Float(),
		City:      doc.Get("city").String(),
		Region:    doc.Get("region").String(),
		Country:   doc.Get("country_name").String(),
		Timezone:  doc.Get("timezone").String(),
		Source:    domain.SourceIP,
	}, nil
}
