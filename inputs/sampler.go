package inputs

// Snapshot is the input state sampled once per frame. MouseX and MouseY are the
// absolute pointer position in framebuffer pixels with the origin at the top-left.
type Snapshot struct {
	Keys   KeyState
	MouseX float64
	MouseY float64
}

// Sampler reads the current keyboard and pointer state. Implementations must be
// stateless per call: the result depends only on the device state at the time
// of the call.
//
// The pointer is expected to stay within the window (hidden or captured by the
// windowing backend). Nothing downstream re-centers it.
type Sampler interface {
	Sample() Snapshot
}
