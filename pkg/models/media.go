package models

import (
	"strings"

	"github.com/google/uuid"
)

// tempMediaPrefix marks media picked locally but not yet confirmed by the
// server. Server-issued ids never carry it.
const tempMediaPrefix = "temp_"

// NewTempMediaID mints an identifier for a locally selected image or video.
func NewTempMediaID() string {
	return tempMediaPrefix + uuid.NewString()
}

// IsTempMediaID reports whether the id belongs to a not-yet-uploaded asset.
func IsTempMediaID(id string) bool {
	return strings.HasPrefix(id, tempMediaPrefix)
}

// PendingUploads filters the images that still need uploading to the server.
func PendingUploads(images []ProductImage) []ProductImage {
	var pending []ProductImage
	for _, img := range images {
		if IsTempMediaID(img.ID) {
			pending = append(pending, img)
		}
	}
	return pending
}
