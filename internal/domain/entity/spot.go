package entity

import (
	"net/url"
	"strings"
	"time"

	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
)

// DefaultSpotPrice is the charge for unlocking a spot's tutorial, in whole currency units
const DefaultSpotPrice = 20

// ApprovalReward is the fixed amount credited to the author when a spot is
// approved, independent of the spot's price
const ApprovalReward = 40

// MaxTitleLength bounds spot titles
const MaxTitleLength = 200

// DangerOther is the fallback hazard tag for unknown values
const DangerOther = "other"

// DangerChoices lists the accepted hazard tags for a spot
var DangerChoices = []string{"cameras", "guards", "locals", "locked hatch", "dogs", DangerOther}

// Spot is a moderated point of interest with a protected tutorial link.
// It is invisible publicly until moderation sets Active.
type Spot struct {
	ID         uint64
	Title      string
	Lat        float64
	Lon        float64
	ContentURL string // protected tutorial link, never exposed in public listings
	Price      int64
	AuthorTgID *int64 // submitter's Telegram id; nil for anonymous submissions
	AuthorName string // display name shown in listings
	Danger     string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSpot validates submission fields and builds a pending (inactive) spot
func NewSpot(title string, lat, lon float64, contentURL, danger string, price int64, timeProvider coreport.TimeProvider) (*Spot, error) {
	title = strings.TrimSpace(title)
	if title == "" || len([]rune(title)) > MaxTitleLength {
		return nil, errs.NewValidationError("title", "must be between 1 and 200 characters")
	}

	normalized, err := NormalizeContentURL(contentURL)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Spot{
		Title:      title,
		Lat:        lat,
		Lon:        lon,
		ContentURL: normalized,
		Price:      price,
		Danger:     NormalizeDanger(danger),
		Active:     false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// NormalizeContentURL trims the tutorial link, prepends https:// when no
// scheme is given and rejects anything that isn't an absolute https URL.
func NormalizeContentURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errs.NewValidationError("content_url", "tutorial link is required")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Scheme != "https" || parsed.Host == "" {
		return "", errs.NewValidationError("content_url", "must be an absolute https link")
	}
	return raw, nil
}

// NormalizeDanger collapses unknown non-empty hazard tags to the "other" choice
func NormalizeDanger(danger string) string {
	danger = strings.TrimSpace(danger)
	if danger == "" {
		return ""
	}
	for _, choice := range DangerChoices {
		if danger == choice {
			return danger
		}
	}
	return DangerOther
}

// IsAuthoredBy reports whether the given user submitted this spot
func (s *Spot) IsAuthoredBy(tgID int64) bool {
	return s.AuthorTgID != nil && *s.AuthorTgID == tgID
}
