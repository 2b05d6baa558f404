package graphics

// EventType enumerates the window events the frame loop reacts to.
type EventType int

const (
	// EventResize carries the new framebuffer size in pixels.
	EventResize EventType = iota
	// EventQuit is a close request from the window manager or the user.
	EventQuit
)

// Event is a window event queued since the last poll.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Window defines the interface for the presentation surface and its OpenGL
// context. Implementations must keep the pointer inside the window (hidden or
// captured) for absolute pointer look to behave as a relative control.
type Window interface {
	MakeCurrent()
	Shutdown()
	// PollEvents processes pending window system events and returns the ones
	// queued since the previous call.
	PollEvents() []Event
	// Present swaps the back buffer to the screen.
	Present()
	GetFramebufferSize() (int, int)
	SetTitle(title string)
}
