package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/defect-atlas/pkg/adapters"
	"github.com/de-tools/defect-atlas/pkg/models/api"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const inspectionPath = "/api/inspection"

type HTTPSettings struct {
	BaseURL  string
	RetryMax int
	Timeout  time.Duration
}

// HTTPSource queries a dashboard backend speaking the inspection API.
type HTTPSource struct {
	origin  string
	baseURL string
	client  *retryablehttp.Client
}

func NewHTTPSource(origin string, settings HTTPSettings, logger zerolog.Logger) *HTTPSource {
	client := retryablehttp.NewClient()
	client.RetryMax = settings.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = leveledLogger{logger: logger.With().Str("origin", origin).Logger()}
	if settings.Timeout > 0 {
		client.HTTPClient.Timeout = settings.Timeout
	}
	return &HTTPSource{
		origin:  origin,
		baseURL: strings.TrimRight(settings.BaseURL, "/"),
		client:  client,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dataset, error) {
	target := s.baseURL + inspectionPath
	if q := criteriaQuery(criteria).Encode(); q != "" {
		target += "?" + q
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: unexpected status %d", target, resp.StatusCode)
	}

	var body api.InspectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !body.Success || body.Data == nil {
		return nil, ErrUnsuccessful
	}

	return &domain.Dataset{
		Records: adapters.MapInspectionsApiToDomain(body.Data.InspectionData),
		Options: domain.FilterOptions{
			VehicleTypes: body.Data.FilterOptions.VehicleTypes,
			Colors:       body.Data.FilterOptions.Colors,
		},
		Origin: s.origin,
	}, nil
}

// criteriaQuery encodes the set fields of c with the backend's parameter names.
func criteriaQuery(c domain.FilterCriteria) url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("startDate", c.StartDate)
	set("endDate", c.EndDate)
	set("vehicleType", c.VehicleType)
	set("color", c.Color)
	set("isRepainted", c.Repainted.String())
	set("isAccepted", c.Accepted.String())
	return q
}

// leveledLogger routes retryablehttp logging through zerolog.
type leveledLogger struct {
	logger zerolog.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}
