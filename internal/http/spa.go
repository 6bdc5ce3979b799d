package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// spaFallback serves the compiled client for every unmatched non-API GET.
// Existing files are served directly and everything else gets index.html so
// client-side routes survive a reload.
func (h *Handler) spaFallback(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") || path == "/api" {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusNotFound)
		return
	}
	if h.opts.ClientDir == "" {
		c.Status(http.StatusNotFound)
		return
	}

	root := filepath.Clean(h.opts.ClientDir)
	candidate := filepath.Join(root, filepath.FromSlash(filepath.Clean("/"+path)))
	if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
		c.File(candidate)
		return
	}

	index := filepath.Join(root, "index.html")
	if _, err := os.Stat(index); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(index)
}
