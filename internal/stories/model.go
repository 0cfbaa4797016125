package stories

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("story not found")

// Story is a traveller-written post with an image gallery.
type Story struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Images    []string  `json:"images"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName"`
	UserPhoto string    `json:"userPhoto"`
	CreatedAt time.Time `json:"createdAt"`
}

// mergeImages applies a gallery edit: stored images minus the removed ones,
// with the new uploads appended. Order of the kept images is preserved.
func mergeImages(stored, removed, added []string) []string {
	drop := make(map[string]struct{}, len(removed))
	for _, img := range removed {
		drop[img] = struct{}{}
	}

	out := make([]string, 0, len(stored)+len(added))
	for _, img := range stored {
		if _, gone := drop[img]; !gone {
			out = append(out, img)
		}
	}
	return append(out, added...)
}
