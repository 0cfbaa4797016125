package stories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeImages(t *testing.T) {
	stored := []string{"a.jpg", "b.jpg", "c.jpg"}

	t.Run("remove and add", func(t *testing.T) {
		got := mergeImages(stored, []string{"b.jpg"}, []string{"d.jpg"})
		assert.Equal(t, []string{"a.jpg", "c.jpg", "d.jpg"}, got)
	})

	t.Run("no edits keeps order", func(t *testing.T) {
		got := mergeImages(stored, nil, nil)
		assert.Equal(t, stored, got)
	})

	t.Run("remove unknown image is a no-op", func(t *testing.T) {
		got := mergeImages(stored, []string{"x.jpg"}, nil)
		assert.Equal(t, stored, got)
	})

	t.Run("remove everything", func(t *testing.T) {
		got := mergeImages(stored, stored, nil)
		assert.Empty(t, got)
	})

	t.Run("empty gallery gains uploads", func(t *testing.T) {
		got := mergeImages(nil, nil, []string{"new.jpg"})
		assert.Equal(t, []string{"new.jpg"}, got)
	})
}
