package storage

import (
	"context"
	"mime"
	"path"
	"strings"

	"github.com/rs/xid"
)

// AssetUploader stores an image with the external asset host and returns the
// URL it can be fetched from. Failures wrap domain.ErrUpstream.
type AssetUploader interface {
	Upload(ctx context.Context, data []byte, mimeType string) (string, error)
}

// objectKey builds a unique key under prefix with an extension derived from mimeType.
func objectKey(prefix, mimeType string) string {
	name := xid.New().String()
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		name += preferredExtension(exts)
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func preferredExtension(exts []string) string {
	for _, ext := range exts {
		switch ext {
		case ".jpg", ".png", ".gif", ".webp", ".svg":
			return ext
		}
	}
	return exts[0]
}
