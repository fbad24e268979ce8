package port

// ImageSize - именованный набор размеров картинки для разных мест UI
type ImageSize string

const (
	ImageSizeThumbnail ImageSize = "thumbnail"
	ImageSizeCard      ImageSize = "card"
	ImageSizeHero      ImageSize = "hero"
	ImageSizeProfile   ImageSize = "profile"
	ImageSizeGallery   ImageSize = "gallery"
)

// ImageURLResolverPort строит URL картинки под нужный размер
type ImageURLResolverPort interface {
	URLFor(raw string, size ImageSize) string
}
