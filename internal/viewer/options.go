package viewer

import "errors"

// ErrNoWindow is returned by Run in builds without the raylib tag.
var ErrNoWindow = errors.New("viewer: built without the 'raylib' tag")

// Options configures the viewer window.
type Options struct {
	Width, Height int32
	Title         string
	FPS           int32
}
