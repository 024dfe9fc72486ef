package inspection

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
)

// criteriaFromQuery reads the filter parameters of the inspection API.
func criteriaFromQuery(q url.Values) (domain.FilterCriteria, error) {
	c := domain.FilterCriteria{
		StartDate:   strings.TrimSpace(q.Get("startDate")),
		EndDate:     strings.TrimSpace(q.Get("endDate")),
		VehicleType: strings.TrimSpace(q.Get("vehicleType")),
		Color:       strings.TrimSpace(q.Get("color")),
	}

	var err error
	if c.Repainted, err = domain.ParseTriState(q.Get("isRepainted")); err != nil {
		return c, fmt.Errorf("invalid 'isRepainted': %w", err)
	}
	if c.Accepted, err = domain.ParseTriState(q.Get("isAccepted")); err != nil {
		return c, fmt.Errorf("invalid 'isAccepted': %w", err)
	}
	return c, c.Validate()
}
