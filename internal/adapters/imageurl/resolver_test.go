package imageurl

import (
	"testing"

	"catalog-service/internal/core/port"

	"github.com/stretchr/testify/assert"
)

func TestResolverURLFor(t *testing.T) {
	r := NewResolver(80)

	tests := []struct {
		name string
		raw  string
		size port.ImageSize
		want string
	}{
		{
			name: "unsplash card",
			raw:  "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?ixlib=rb-4.0.3",
			size: port.ImageSizeCard,
			want: "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?q=80&w=400&h=300&auto=compress,format&fit=crop",
		},
		{
			name: "unsplash hero",
			raw:  "https://images.unsplash.com/photo-1?w=10#top",
			size: port.ImageSizeHero,
			want: "https://images.unsplash.com/photo-1?q=80&w=1920&h=1080&auto=compress,format&fit=crop",
		},
		{
			name: "unknown size uses default width",
			raw:  "https://images.unsplash.com/photo-1",
			size: "poster",
			want: "https://images.unsplash.com/photo-1?q=80&w=800&auto=compress,format&fit=crop",
		},
		{
			name: "imgix passthrough",
			raw:  "https://estate.imgix.net/a.jpg?w=300",
			size: port.ImageSizeCard,
			want: "https://estate.imgix.net/a.jpg?w=300",
		},
		{
			name: "other host passthrough",
			raw:  "https://cdn.example.com/a.jpg",
			size: port.ImageSizeCard,
			want: "https://cdn.example.com/a.jpg",
		},
		{
			name: "lookalike host passthrough",
			raw:  "https://notunsplash.com/a.jpg",
			size: port.ImageSizeCard,
			want: "https://notunsplash.com/a.jpg",
		},
		{
			name: "relative path passthrough",
			raw:  "/static/placeholder.png",
			size: port.ImageSizeCard,
			want: "/static/placeholder.png",
		},
		{
			name: "empty",
			raw:  "  ",
			size: port.ImageSizeCard,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.URLFor(tt.raw, tt.size))
		})
	}
}

func TestNewResolverDefaultsQuality(t *testing.T) {
	assert.Equal(t, defaultQuality, NewResolver(0).quality)
	assert.Equal(t, defaultQuality, NewResolver(101).quality)
}
