package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() HotelInput {
	return HotelInput{
		Name:          "Seaside",
		City:          "Porto",
		Country:       "Portugal",
		Description:   "Rooms by the river",
		Type:          "Boutique",
		PricePerNight: 120,
		Facilities:    []string{"Free WiFi"},
		StarRating:    4,
		AdultCount:    2,
		ChildCount:    0,
	}
}

func fields(verr *ValidationError) []string {
	out := []string{}
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestHotelInputValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HotelInput)
		want   []string
	}{
		{name: "valid", mutate: func(*HotelInput) {}, want: []string{}},
		{name: "free stay", mutate: func(in *HotelInput) { in.PricePerNight = 0 }, want: []string{}},
		{name: "blank name", mutate: func(in *HotelInput) { in.Name = "   " }, want: []string{"name"}},
		{name: "negative price", mutate: func(in *HotelInput) { in.PricePerNight = -1 }, want: []string{"pricePerNight"}},
		{name: "nan price", mutate: func(in *HotelInput) { in.PricePerNight = math.NaN() }, want: []string{"pricePerNight"}},
		{name: "only blank facilities", mutate: func(in *HotelInput) { in.Facilities = []string{"", " "} }, want: []string{"facilities"}},
		{name: "star rating too high", mutate: func(in *HotelInput) { in.StarRating = 6 }, want: []string{"starRating"}},
		{name: "no adults", mutate: func(in *HotelInput) { in.AdultCount = 0 }, want: []string{"adultCount"}},
		{name: "negative children", mutate: func(in *HotelInput) { in.ChildCount = -1 }, want: []string{"childCount"}},
		{name: "empty", mutate: func(in *HotelInput) { *in = HotelInput{} }, want: []string{
			"name", "city", "country", "description", "type", "facilities", "starRating", "adultCount",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			verr := in.Validate()
			require.NotNil(t, verr)
			assert.Equal(t, tt.want, fields(verr))
		})
	}
}

func TestHotelInputValidateMessages(t *testing.T) {
	in := validInput()
	in.Type = ""
	in.PricePerNight = -5

	verr := in.Validate()
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, FieldError{Field: "type", Message: MsgTypeRequired, Value: ""}, verr.Fields[0])
	assert.Equal(t, FieldError{Field: "pricePerNight", Message: MsgPriceInvalid, Value: "-5"}, verr.Fields[1])
}

func TestHotelInputApply(t *testing.T) {
	hotel := Hotel{ID: "h1", UserID: "u1", ImageURLs: []string{"a"}}
	in := validInput()
	in.ImageURLs = []string{"ignored"}

	in.Apply(&hotel)
	in.Facilities[0] = "mutated"

	assert.Equal(t, "h1", hotel.ID)
	assert.Equal(t, "u1", hotel.UserID)
	assert.Equal(t, "Seaside", hotel.Name)
	assert.Equal(t, []string{"Free WiFi"}, hotel.Facilities)
	assert.Equal(t, []string{"a"}, hotel.ImageURLs)
}

func TestValidationError(t *testing.T) {
	var empty *ValidationError
	assert.NoError(t, empty.OrNil())
	assert.NoError(t, (&ValidationError{}).OrNil())

	verr := &ValidationError{}
	verr.Add("pricePerNight", MsgPriceInvalid, "abc")
	verr.Merge(&ValidationError{Fields: []FieldError{
		{Field: "pricePerNight", Message: "duplicate"},
		{Field: "name", Message: MsgNameRequired},
	}})
	verr.Merge(nil)

	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "abc", verr.Fields[0].Value)
	assert.True(t, verr.Has("name"))
	assert.False(t, verr.Has("city"))

	err := verr.OrNil()
	assert.True(t, errors.Is(err, ErrValidation))
	var target *ValidationError
	require.True(t, errors.As(err, &target))
	assert.Contains(t, err.Error(), "pricePerNight: "+MsgPriceInvalid)
}
