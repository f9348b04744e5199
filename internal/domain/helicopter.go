package domain

import "strings"

// Helicopter is the catalog entry as the backend stores it
type Helicopter struct {
	ID       ID     `json:"id"`
	Model    string `json:"model"`
	Capacity int    `json:"capacity"`
	ImageURL string `json:"image_url"`
}

type AddHelicopterRequest struct {
	Model    string `json:"model"`
	Capacity int    `json:"capacity"`
	ImageURL string `json:"image_url"`
}

func (r *AddHelicopterRequest) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return ValidationError{Field: "model", Msg: "model is required"}
	}
	if r.Capacity < 1 {
		return ValidationError{Field: "capacity", Msg: "capacity must be at least 1"}
	}
	return nil
}

// HelicopterListing is a catalog entry with display fields for the marketing pages.
// The backend does not supply rates, tours or features; DisplayDefaults marks them as
// portal-side estimates so the front end can label them.
type HelicopterListing struct {
	Helicopter
	HourlyRate      float64  `json:"hourly_rate"`
	Tours           []string `json:"tours"`
	Features        []string `json:"features"`
	DisplayDefaults bool     `json:"display_defaults"`
}
