package request

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/guest-hub/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// seedFile mirrors seed.yaml.
type seedFile struct {
	Requests []seedRequest `yaml:"requests"`
}

type seedRequest struct {
	ID               string    `yaml:"id"`
	GuestName        string    `yaml:"guest_name"`
	Platform         string    `yaml:"platform"`
	Guests           int       `yaml:"guests"`
	CheckIn          string    `yaml:"check_in"`
	CheckOut         string    `yaml:"check_out"`
	Status           string    `yaml:"status"`
	PropertyTitle    string    `yaml:"property_title"`
	TotalPrice       float64   `yaml:"total_price"`
	PlatformSpecific yaml.Node `yaml:"platform_specific"`
}

// DefaultSeed returns the built-in sample requests.
func DefaultSeed() ([]model.BookingRequest, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

// LoadSeed decodes booking requests from a YAML document.
func LoadSeed(r io.Reader) ([]model.BookingRequest, error) {
	var f seedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	out := make([]model.BookingRequest, 0, len(f.Requests))
	for _, sr := range f.Requests {
		req, err := sr.toModel()
		if err != nil {
			return nil, fmt.Errorf("seed request %q: %w", sr.ID, err)
		}
		out = append(out, req)
	}
	return out, nil
}

func (sr seedRequest) toModel() (model.BookingRequest, error) {
	checkIn, err := time.Parse(model.DateLayout, sr.CheckIn)
	if err != nil {
		return model.BookingRequest{}, fmt.Errorf("check_in: %w", err)
	}
	checkOut, err := time.Parse(model.DateLayout, sr.CheckOut)
	if err != nil {
		return model.BookingRequest{}, fmt.Errorf("check_out: %w", err)
	}
	status := model.RequestStatus(sr.Status)
	switch status {
	case model.StatusPending, model.StatusApproved, model.StatusDeclined:
	case "":
		status = model.StatusPending
	default:
		return model.BookingRequest{}, fmt.Errorf("unknown status %q", sr.Status)
	}
	details, err := decodeDetails(sr.Platform, &sr.PlatformSpecific)
	if err != nil {
		return model.BookingRequest{}, err
	}
	return model.BookingRequest{
		ID:               sr.ID,
		GuestName:        sr.GuestName,
		Platform:         sr.Platform,
		Guests:           sr.Guests,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Status:           status,
		PropertyTitle:    sr.PropertyTitle,
		TotalPrice:       sr.TotalPrice,
		PlatformSpecific: details,
	}, nil
}

// decodeDetails picks the platform variant for the platform_specific block.
func decodeDetails(platform string, node *yaml.Node) (model.PlatformDetails, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	switch platform {
	case model.PlatformBooking:
		var d model.BookingComDetails
		if err := node.Decode(&d); err != nil {
			return nil, fmt.Errorf("platform_specific: %w", err)
		}
		return d, nil
	case model.PlatformAirbnb:
		var d model.AirbnbDetails
		if err := node.Decode(&d); err != nil {
			return nil, fmt.Errorf("platform_specific: %w", err)
		}
		return d, nil
	case model.PlatformVrbo:
		var d model.VrboDetails
		if err := node.Decode(&d); err != nil {
			return nil, fmt.Errorf("platform_specific: %w", err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("platform_specific given for unknown platform %q", platform)
}
