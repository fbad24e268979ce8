package imageurl

import (
	"fmt"
	"net/url"
	"strings"

	"catalog-service/internal/core/port"
)

const (
	defaultWidth   = 800
	defaultQuality = 75
	defaultAuto    = "compress,format"
	defaultFit     = "crop"
)

type dimensions struct {
	width, height int
}

var presets = map[port.ImageSize]dimensions{
	port.ImageSizeThumbnail: {150, 150},
	port.ImageSizeCard:      {400, 300},
	port.ImageSizeHero:      {1920, 1080},
	port.ImageSizeProfile:   {300, 300},
	port.ImageSizeGallery:   {800, 600},
}

// Resolver переписывает ссылки на картинки Unsplash под нужный размер.
// Ссылки imgix уже оптимизированы и отдаются как есть, как и все остальные хосты.
type Resolver struct {
	quality int
}

func NewResolver(quality int) *Resolver {
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	return &Resolver{quality: quality}
}

func (r *Resolver) URLFor(raw string, size port.ImageSize) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.ToLower(u.Hostname())
	if hostIs(host, "imgix.net") || !hostIs(host, "unsplash.com") {
		return raw
	}

	dim, ok := presets[size]
	if !ok {
		dim = dimensions{width: defaultWidth}
	}

	u.RawQuery = ""
	u.Fragment = ""
	query := fmt.Sprintf("q=%d&w=%d", r.quality, dim.width)
	if dim.height > 0 {
		query += fmt.Sprintf("&h=%d", dim.height)
	}
	query += "&auto=" + defaultAuto + "&fit=" + defaultFit
	return u.String() + "?" + query
}

func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
