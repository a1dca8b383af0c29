package recording

import "github.com/gogpu/canvas"

// CommandType identifies the type of a command.
// Each command type corresponds to one canvas.Native call.
type CommandType uint8

const (
	// State commands
	CmdSave         CommandType = iota // Save current state
	CmdRestore                         // Restore previous state
	CmdSetTransform                    // Set transformation matrix
	CmdSetStyle                        // Replace the scalar style
	CmdSetLineDash                     // Set dash pattern
	CmdClip                            // Intersect the clip with a path

	// Drawing commands
	CmdBeginPath      // Discard the host's own path
	CmdFill           // Fill a path
	CmdStroke         // Stroke a path
	CmdScrollIntoView // Scroll a path into view

	// Surface commands
	CmdResize // Resize and reset the host
)

var commandTypeNames = [...]string{
	CmdSave:           "Save",
	CmdRestore:        "Restore",
	CmdSetTransform:   "SetTransform",
	CmdSetStyle:       "SetStyle",
	CmdSetLineDash:    "SetLineDash",
	CmdClip:           "Clip",
	CmdBeginPath:      "BeginPath",
	CmdFill:           "Fill",
	CmdStroke:         "Stroke",
	CmdScrollIntoView: "ScrollIntoView",
	CmdResize:         "Resize",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference points to a valid path.
func (r PathRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// SaveCommand pushes the host state.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand pops the host state. It is recorded even when there is
// nothing to pop.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// SetTransformCommand sets the current transformation matrix.
type SetTransformCommand struct {
	Matrix canvas.Matrix
}

// Type implements Command.
func (SetTransformCommand) Type() CommandType { return CmdSetTransform }

// SetStyleCommand replaces the scalar drawing style.
type SetStyleCommand struct {
	Style canvas.Style
}

// Type implements Command.
func (SetStyleCommand) Type() CommandType { return CmdSetStyle }

// SetLineDashCommand sets the dash pattern.
type SetLineDashCommand struct {
	// Segments is owned by the command.
	Segments []float64
}

// Type implements Command.
func (SetLineDashCommand) Type() CommandType { return CmdSetLineDash }

// ClipCommand intersects the clip with a path given in user space.
type ClipCommand struct {
	Path PathRef
	Rule canvas.FillRule
}

// Type implements Command.
func (ClipCommand) Type() CommandType { return CmdClip }

// BeginPathCommand discards the host's own path.
type BeginPathCommand struct{}

// Type implements Command.
func (BeginPathCommand) Type() CommandType { return CmdBeginPath }

// FillCommand fills a path.
type FillCommand struct {
	Path PathRef
	Rule canvas.FillRule
}

// Type implements Command.
func (FillCommand) Type() CommandType { return CmdFill }

// StrokeCommand strokes a path with the current style.
type StrokeCommand struct {
	Path PathRef
}

// Type implements Command.
func (StrokeCommand) Type() CommandType { return CmdStroke }

// ScrollIntoViewCommand asks the host to scroll a path into view.
type ScrollIntoViewCommand struct {
	Path PathRef
}

// Type implements Command.
func (ScrollIntoViewCommand) Type() CommandType { return CmdScrollIntoView }

// ResizeCommand resizes the host, resetting its state.
type ResizeCommand struct {
	Width, Height int
}

// Type implements Command.
func (ResizeCommand) Type() CommandType { return CmdResize }
