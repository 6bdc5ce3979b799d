package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-booking/internal/domain"
)

const (
	maxImageBytes = 5 << 20
	imageField    = "imageFiles"
	// multipart overhead allowance on top of the image payloads
	maxHotelRequestBytes = domain.MaxImagesPerBatch*maxImageBytes + 1<<20
)

// plainDecimal accepts an optional sign, digits and at most one decimal point.
// Exponents, hex, underscores and Inf/NaN spellings are rejected.
var plainDecimal = regexp.MustCompile(`^[+-]?([0-9]*\.)?[0-9]+$`)

func (h *Handler) createHotel(c *gin.Context) {
	in, images, err := parseHotelForm(c)
	if err != nil {
		writeError(c, err)
		return
	}

	hotel, err := h.hotels.Create(c.Request.Context(), callerID(c), in, images)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hotelToResponse(*hotel))
}

func (h *Handler) listHotels(c *gin.Context) {
	hotels, err := h.hotels.ListMine(c.Request.Context(), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]hotelResponse, len(hotels))
	for i := range hotels {
		resp[i] = hotelToResponse(hotels[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getHotel(c *gin.Context) {
	hotel, err := h.hotels.GetMine(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotelToResponse(*hotel))
}

func (h *Handler) updateHotel(c *gin.Context) {
	in, images, err := parseHotelForm(c)
	if err != nil {
		writeError(c, err)
		return
	}

	hotel, err := h.hotels.UpdateMine(c.Request.Context(), c.Param("id"), callerID(c), in, images)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Hotel not found"})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hotelToResponse(*hotel))
}

// parseHotelForm reads a multipart (or urlencoded) hotel form. Parse problems
// and semantic checks are reported together as one ValidationError.
func parseHotelForm(c *gin.Context) (domain.HotelInput, []domain.Image, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxHotelRequestBytes)

	var files []*multipart.FileHeader
	form, err := c.MultipartForm()
	switch {
	case err == nil:
		files = form.File[imageField]
	case errors.Is(err, http.ErrNotMultipart):
		if err := c.Request.ParseForm(); err != nil {
			return domain.HotelInput{}, nil, formError(err)
		}
	default:
		return domain.HotelInput{}, nil, formError(err)
	}

	values := c.Request.PostForm
	verr := &domain.ValidationError{}

	in := domain.HotelInput{
		Name:        strings.TrimSpace(values.Get("name")),
		City:        strings.TrimSpace(values.Get("city")),
		Country:     strings.TrimSpace(values.Get("country")),
		Description: strings.TrimSpace(values.Get("description")),
		Type:        strings.TrimSpace(values.Get("type")),
	}

	price := strings.TrimSpace(values.Get("pricePerNight"))
	if v, err := strconv.ParseFloat(price, 64); err != nil || !plainDecimal.MatchString(price) {
		verr.Add("pricePerNight", domain.MsgPriceInvalid, price)
	} else {
		in.PricePerNight = v
	}

	in.StarRating = parseInt(values, "starRating", domain.MsgStarRatingInvalid, false, verr)
	in.AdultCount = parseInt(values, "adultCount", domain.MsgAdultCountInvalid, false, verr)
	in.ChildCount = parseInt(values, "childCount", domain.MsgChildCountInvalid, true, verr)

	in.Facilities, _ = formArray(values, "facilities")
	if urls, ok := formArray(values, "imageUrls"); ok {
		in.ImageURLs = urls
	}

	if len(files) > domain.MaxImagesPerBatch {
		verr.Add(imageField, fmt.Sprintf("At most %d images are allowed", domain.MaxImagesPerBatch), strconv.Itoa(len(files)))
	}
	for _, f := range files {
		if f.Size > maxImageBytes {
			verr.Add(imageField, "Each image must be 5MB or smaller", f.Filename)
			break
		}
	}

	verr.Merge(in.Validate())
	if err := verr.OrNil(); err != nil {
		return domain.HotelInput{}, nil, err
	}

	images, err := readImages(files)
	if err != nil {
		return domain.HotelInput{}, nil, err
	}
	return in, images, nil
}

func parseInt(values url.Values, key, msg string, zeroIfMissing bool, verr *domain.ValidationError) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" && zeroIfMissing {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add(key, msg, raw)
		return 0
	}
	return v
}

// formArray collects key, key[] and key[i] entries, the latter in index order.
// The second result reports whether the field was sent at all.
func formArray(values url.Values, key string) ([]string, bool) {
	out := make([]string, 0)
	present := false

	for _, k := range []string{key, key + "[]"} {
		if vs, ok := values[k]; ok {
			present = true
			out = appendNonEmpty(out, vs...)
		}
	}

	type indexed struct {
		idx    int
		values []string
	}
	var items []indexed
	prefix := key + "["
	for k, vs := range values {
		if !strings.HasPrefix(k, prefix) || !strings.HasSuffix(k, "]") {
			continue
		}
		idx, err := strconv.Atoi(k[len(prefix) : len(k)-1])
		if err != nil {
			continue
		}
		items = append(items, indexed{idx: idx, values: vs})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].idx < items[j].idx })
	for _, item := range items {
		present = true
		out = appendNonEmpty(out, item.values...)
	}

	return out, present
}

func appendNonEmpty(dst []string, values ...string) []string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			dst = append(dst, v)
		}
	}
	return dst
}

func readImages(files []*multipart.FileHeader) ([]domain.Image, error) {
	images := make([]domain.Image, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
		}
		if len(data) > maxImageBytes {
			return nil, &domain.ValidationError{Fields: []domain.FieldError{{
				Field:   imageField,
				Message: "Each image must be 5MB or smaller",
				Value:   fh.Filename,
			}}}
		}

		mimeType := fh.Header.Get("Content-Type")
		if mimeType == "" || mimeType == "application/octet-stream" {
			mimeType = http.DetectContentType(data)
		}
		images = append(images, domain.Image{Filename: fh.Filename, MimeType: mimeType, Data: data})
	}
	return images, nil
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &domain.ValidationError{Fields: []domain.FieldError{{
			Field:   imageField,
			Message: "Request body is too large",
		}}}
	}
	return &domain.ValidationError{Fields: []domain.FieldError{{
		Field:   "body",
		Message: "Request body must be a valid form",
	}}}
}
