package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// MaxImagesPerBatch caps the number of images accepted by a single create or
// update request.
const MaxImagesPerBatch = 6

// Hotel is a listing owned by exactly one user.
type Hotel struct {
	ID            string
	UserID        string
	Name          string
	City          string
	Country       string
	Description   string
	Type          string
	PricePerNight float64
	Facilities    []string
	StarRating    int
	AdultCount    int
	ChildCount    int
	ImageURLs     []string
	LastUpdated   time.Time
}

// HotelInput carries the caller-editable fields of a hotel.
// ImageURLs is nil when the caller did not send an image list.
type HotelInput struct {
	Name          string
	City          string
	Country       string
	Description   string
	Type          string
	PricePerNight float64
	Facilities    []string
	StarRating    int
	AdultCount    int
	ChildCount    int
	ImageURLs     []string
}

// Apply copies the editable fields onto h. Ownership and id are left untouched.
func (in HotelInput) Apply(h *Hotel) {
	h.Name = in.Name
	h.City = in.City
	h.Country = in.Country
	h.Description = in.Description
	h.Type = in.Type
	h.PricePerNight = in.PricePerNight
	h.Facilities = append([]string(nil), in.Facilities...)
	h.StarRating = in.StarRating
	h.AdultCount = in.AdultCount
	h.ChildCount = in.ChildCount
}

// Image is an uploaded image payload waiting to be sent to the asset host.
type Image struct {
	Filename string
	MimeType string
	Data     []byte
}

// Validation messages keyed by the client field name.
const (
	MsgNameRequired        = "Name is required"
	MsgCityRequired        = "City is required"
	MsgCountryRequired     = "Country is required"
	MsgDescriptionRequired = "Description is required"
	MsgTypeRequired        = "Hotel is required"
	MsgPriceInvalid        = "Price per night is required and must be a number"
	MsgFacilitiesRequired  = "Facilities are required"
	MsgStarRatingInvalid   = "Star rating must be between 1 and 5"
	MsgAdultCountInvalid   = "Adult count must be at least 1"
	MsgChildCountInvalid   = "Child count must be 0 or more"
)

// Validate checks the semantic constraints of a hotel payload.
func (in HotelInput) Validate() *ValidationError {
	verr := &ValidationError{}
	required := []struct {
		field, value, msg string
	}{
		{"name", in.Name, MsgNameRequired},
		{"city", in.City, MsgCityRequired},
		{"country", in.Country, MsgCountryRequired},
		{"description", in.Description, MsgDescriptionRequired},
		{"type", in.Type, MsgTypeRequired},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.Add(r.field, r.msg, r.value)
		}
	}
	if in.PricePerNight < 0 || math.IsNaN(in.PricePerNight) || math.IsInf(in.PricePerNight, 0) {
		verr.Add("pricePerNight", MsgPriceInvalid, strconv.FormatFloat(in.PricePerNight, 'f', -1, 64))
	}
	if len(nonEmpty(in.Facilities)) == 0 {
		verr.Add("facilities", MsgFacilitiesRequired, "")
	}
	if in.StarRating < 1 || in.StarRating > 5 {
		verr.Add("starRating", MsgStarRatingInvalid, strconv.Itoa(in.StarRating))
	}
	if in.AdultCount < 1 {
		verr.Add("adultCount", MsgAdultCountInvalid, strconv.Itoa(in.AdultCount))
	}
	if in.ChildCount < 0 {
		verr.Add("childCount", MsgChildCountInvalid, strconv.Itoa(in.ChildCount))
	}
	return verr
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
