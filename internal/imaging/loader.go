package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// DefaultCacheSize is the number of decoded images an ImageCache keeps when
// constructed with a non-positive limit.
const DefaultCacheSize = 16

// ImageCache keeps recently decoded images keyed by path so that detecting
// and then analysing the same diagram does not decode it twice.
//
// The cache holds at most limit images and evicts the oldest entry first.
// It is safe for concurrent use.
type ImageCache struct {
	mu     sync.RWMutex
	limit  int
	images map[string]*entry
	order  []string
}

type entry struct {
	img    image.Image
	format string
	size   int64
}

// NewImageCache returns an empty cache holding at most limit images.
func NewImageCache(limit int) *ImageCache {
	if limit <= 0 {
		limit = DefaultCacheSize
	}
	return &ImageCache{
		limit:  limit,
		images: make(map[string]*entry),
	}
}

// Load returns the decoded image at path, reading it from disk on a miss.
// Supported formats are PNG, JPEG and GIF.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (*entry, error) {
	c.mu.RLock()
	e, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return e, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	var size int64
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}
	e = &entry{img: img, format: format, size: size}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.images[path]; ok {
		return cached, nil
	}
	c.images[path] = e
	c.order = append(c.order, path)
	for len(c.order) > c.limit {
		delete(c.images, c.order[0])
		c.order = c.order[1:]
	}
	return e, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Evict drops path from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.images[path]; !ok {
		return
	}
	delete(c.images, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*entry)
	c.order = nil
	c.mu.Unlock()
}

// ImageInfo describes a loaded image file.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the decoder name reported by image.Decode: "png", "jpeg" or
	// "gif".
	Format string `json:"format"`

	ColorDepth    string `json:"color_depth"`
	HasAlpha      bool   `json:"has_alpha"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// LoadImageInfo loads path through cache and reports its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch e.img.(type) {
	case *image.RGBA, *image.NRGBA, *image.Paletted:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	b := e.img.Bounds()
	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        e.format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: e.size,
	}, nil
}
