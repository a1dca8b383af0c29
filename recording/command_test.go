package recording

import "testing"

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want string
	}{
		{CmdSave, "Save"},
		{CmdRestore, "Restore"},
		{CmdSetTransform, "SetTransform"},
		{CmdSetStyle, "SetStyle"},
		{CmdSetLineDash, "SetLineDash"},
		{CmdClip, "Clip"},
		{CmdBeginPath, "BeginPath"},
		{CmdFill, "Fill"},
		{CmdStroke, "Stroke"},
		{CmdScrollIntoView, "ScrollIntoView"},
		{CmdResize, "Resize"},
		{CommandType(254), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("CommandType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandInterface(t *testing.T) {
	commands := []struct {
		cmd  Command
		want CommandType
	}{
		{SaveCommand{}, CmdSave},
		{RestoreCommand{}, CmdRestore},
		{SetTransformCommand{}, CmdSetTransform},
		{SetStyleCommand{}, CmdSetStyle},
		{SetLineDashCommand{}, CmdSetLineDash},
		{ClipCommand{}, CmdClip},
		{BeginPathCommand{}, CmdBeginPath},
		{FillCommand{}, CmdFill},
		{StrokeCommand{}, CmdStroke},
		{ScrollIntoViewCommand{}, CmdScrollIntoView},
		{ResizeCommand{}, CmdResize},
	}
	for _, c := range commands {
		if got := c.cmd.Type(); got != c.want {
			t.Errorf("%T.Type() = %v, want %v", c.cmd, got, c.want)
		}
	}
}

func TestPathRef_IsValid(t *testing.T) {
	if !PathRef(0).IsValid() {
		t.Error("PathRef(0) should be valid")
	}
	if PathRef(InvalidRef).IsValid() {
		t.Error("PathRef(InvalidRef) should be invalid")
	}
}
