package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"hotel-booking/internal/domain"
)

const msgSomethingWrong = "Something went wrong"

// fieldErrorResponse mirrors the shape clients already parse for validation failures.
type fieldErrorResponse struct {
	Type     string `json:"type"`
	Value    string `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// writeError maps service errors onto status codes. Anything unexpected is
// classed as domain.ErrInternal unless it already names an upstream failure,
// attached to the gin context for the request logger and reported generically.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidation(c, verr)
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid Credentials"})
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exist"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	default:
		if !errors.Is(err, domain.ErrUpstream) && !errors.Is(err, domain.ErrInternal) {
			err = fmt.Errorf("%w: %w", domain.ErrInternal, err)
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgSomethingWrong})
	}
}

func writeValidation(c *gin.Context, verr *domain.ValidationError) {
	out := make([]fieldErrorResponse, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, fieldErrorResponse{
			Type:     "field",
			Value:    f.Value,
			Msg:      f.Message,
			Path:     f.Field,
			Location: "body",
		})
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": out})
}

// bindingFieldMessages maps request struct fields to their client path and message.
var bindingFieldMessages = map[string][2]string{
	"Email":     {"email", "Email is required"},
	"Password":  {"password", "Password with 6 or more characters required"},
	"FirstName": {"firstName", "firstName is required"},
	"LastName":  {"lastName", "LastName is required"},
}

// bindingError converts a gin binding failure into a domain.ValidationError.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domain.ValidationError{Fields: []domain.FieldError{{
			Field:   "body",
			Message: "Request body must be valid JSON",
		}}}
	}

	out := &domain.ValidationError{}
	for _, fe := range verrs {
		path, msg := fe.Field(), fe.Error()
		if m, ok := bindingFieldMessages[fe.StructField()]; ok {
			path, msg = m[0], m[1]
		}
		value := ""
		if path != "password" {
			value = fmt.Sprint(fe.Value())
		}
		out.Add(path, msg, value)
	}
	return out
}

type hotelResponse struct {
	ID            string   `json:"_id"`
	UserID        string   `json:"userId"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	PricePerNight float64  `json:"pricePerNight"`
	Facilities    []string `json:"facilities"`
	StarRating    int      `json:"starRating"`
	AdultCount    int      `json:"adultCount"`
	ChildCount    int      `json:"childCount"`
	ImageURLs     []string `json:"imageUrls"`
	LastUpdated   string   `json:"lastUpdated"`
}

func hotelToResponse(h domain.Hotel) hotelResponse {
	return hotelResponse{
		ID:            h.ID,
		UserID:        h.UserID,
		Name:          h.Name,
		City:          h.City,
		Country:       h.Country,
		Description:   h.Description,
		Type:          h.Type,
		PricePerNight: h.PricePerNight,
		Facilities:    orEmpty(h.Facilities),
		StarRating:    h.StarRating,
		AdultCount:    h.AdultCount,
		ChildCount:    h.ChildCount,
		ImageURLs:     orEmpty(h.ImageURLs),
		LastUpdated:   h.LastUpdated.UTC().Format(time.RFC3339Nano),
	}
}

type userResponse struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
