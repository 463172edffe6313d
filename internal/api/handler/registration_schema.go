package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

type registrationRequest struct {
	Name        string         `json:"name"     validate:"required,max=100"`
	Category    string         `json:"category" validate:"required,max=100"`
	ReleaseDate string         `json:"release_date"`
	Status      int            `json:"status"`
	Data        map[string]any `json:"data"`
	URL         string         `json:"url"      validate:"omitempty,url"`
	Source      string         `json:"source"   validate:"required,max=100"`
}

type registrationResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	ReleaseDate *time.Time     `json:"release_date,omitempty"`
	Status      int            `json:"status"`
	Data        map[string]any `json:"data,omitempty"`
	URL         string         `json:"url,omitempty"`
	Source      string         `json:"source,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

func (r registrationRequest) toInput() (ports.RegistrationInput, error) {
	releaseDate, err := parseReleaseDate(r.ReleaseDate)
	if err != nil {
		return ports.RegistrationInput{}, err
	}
	return ports.RegistrationInput{
		Name:        r.Name,
		Category:    r.Category,
		ReleaseDate: releaseDate,
		Status:      r.Status,
		Data:        r.Data,
		URL:         r.URL,
		Source:      r.Source,
	}, nil
}

// parseReleaseDate accepts RFC3339 timestamps, plain dates, or the scraper's
// "YYYY/T" term shorthand, which resolves to the first month of the
// four-month term (1 → January, 2 → May, 3 → September).
func parseReleaseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	if parts := strings.Split(s, "/"); len(parts) == 2 {
		year, errY := strconv.Atoi(strings.TrimSpace(parts[0]))
		term, errT := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errY == nil && errT == nil && term >= 1 && term <= 3 {
			t := time.Date(year, time.Month((term-1)*4+1), 1, 0, 0, 0, 0, time.UTC)
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid release_date %q", s)
}

func toRegistrationResponse(reg *domain.Registration) registrationResponse {
	return registrationResponse{
		ID:          reg.ID,
		Name:        reg.Name,
		Category:    reg.Category,
		ReleaseDate: reg.ReleaseDate,
		Status:      reg.Status,
		Data:        reg.Data,
		URL:         reg.URL,
		Source:      reg.Source,
		CreatedAt:   reg.CreatedAt,
		UpdatedAt:   reg.UpdatedAt,
	}
}
