package media

import (
	"mime"
	"mime/multipart"
	"strings"
	"villa/shared/constant"
)

// ContentType reports the media type an upload was sent with, lower-cased
// and without parameters. image/jpg is folded into image/jpeg.
func ContentType(header *multipart.FileHeader) string {
	if header == nil {
		return constant.Empty
	}

	raw := header.Header.Get(constant.RequestHeaderContentType)
	if raw == constant.Empty {
		return constant.Empty
	}

	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return constant.Empty
	}

	mediaType = strings.ToLower(mediaType)
	if mediaType == "image/jpg" {
		return "image/jpeg"
	}

	return mediaType
}

// IsImage is true for the photo formats the gallery and blog accept.
func IsImage(contentType string) bool {
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
		return true
	default:
		return false
	}
}
