package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"hotel-booking/internal/auth"
)

const testSecret = "test-secret-for-session-tokens"

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret, auth.SessionTTL)
	require.NoError(t, err)
	return tokens
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router)
	return router
}

func serve(router http.Handler, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

type testFile struct {
	name     string
	mimeType string
	data     []byte
}

// multipartRequest builds a multipart form request. Field order is preserved.
func multipartRequest(t *testing.T, method, path string, fields [][2]string, files []testFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(t, w.WriteField(f[0], f[1]))
	}
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="imageFiles"; filename="`+f.name+`"`)
		header.Set("Content-Type", f.mimeType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func validHotelFields() [][2]string {
	return [][2]string{
		{"name", "Seaside"},
		{"city", "Porto"},
		{"country", "Portugal"},
		{"description", "Rooms by the river"},
		{"type", "Boutique"},
		{"pricePerNight", "120"},
		{"starRating", "4"},
		{"adultCount", "2"},
		{"childCount", "1"},
		{"facilities[0]", "Free WiFi"},
		{"facilities[1]", "Parking"},
	}
}

func withField(fields [][2]string, key, value string) [][2]string {
	out := make([][2]string, 0, len(fields))
	for _, f := range fields {
		if f[0] != key {
			out = append(out, f)
		}
	}
	return append(out, [2]string{key, value})
}

func pngFiles(n int) []testFile {
	files := make([]testFile, n)
	for i := range files {
		files[i] = testFile{name: "photo.png", mimeType: "image/png", data: []byte{byte(i)}}
	}
	return files
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

// fieldPaths returns the "path" entries of a validation error body.
func fieldPaths(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	body := decodeBody(t, rec)
	items, ok := body["message"].([]any)
	require.True(t, ok, "message should be a list: %s", rec.Body.String())
	paths := make([]string, 0, len(items))
	for _, item := range items {
		paths = append(paths, item.(map[string]any)["path"].(string))
	}
	return paths
}
