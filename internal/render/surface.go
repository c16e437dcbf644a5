// Package render turns a document into a raster image the exporter can
// capture. Surfaces are published under well-known identifiers so the
// exporter can resolve its capture target without knowing how it is drawn.
package render

import (
	"context"
	"image"
	"sync"
)

// PreviewSurfaceID is the identifier the exporter resolves before capture.
const PreviewSurfaceID = "document-preview"

// Surface is an opaque renderable handle. Render rasterizes the surface at
// the given logical width, oversampled by scale, and is the only blocking
// step of an export, hence the context.
type Surface interface {
	Render(ctx context.Context, width int, scale float64) (image.Image, error)
}

var registry = struct {
	sync.RWMutex
	m map[string]Surface
}{m: map[string]Surface{}}

// Register publishes a surface under id, replacing any previous one.
func Register(id string, s Surface) {
	registry.Lock()
	defer registry.Unlock()
	registry.m[id] = s
}

// Unregister removes the surface published under id.
func Unregister(id string) {
	registry.Lock()
	defer registry.Unlock()
	delete(registry.m, id)
}

// Lookup resolves a published surface.
func Lookup(id string) (Surface, bool) {
	registry.RLock()
	defer registry.RUnlock()
	s, ok := registry.m[id]
	return s, ok
}
