package split

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		width    uint
		height   uint
		reverse  bool
		expected Orientation
	}{
		{"wide", 1920, 1080, false, Horizontal},
		{"square", 800, 800, false, Horizontal},
		{"tall", 600, 1200, false, Vertical},
		{"wide reversed", 1920, 1080, true, Vertical},
		{"tall reversed", 600, 1200, true, Horizontal},
		{"zero width", 0, 1080, false, None},
		{"zero height", 1920, 0, false, None},
		{"unknown reversed", 0, 0, true, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.width, tt.height, tt.reverse)
			if got != tt.expected {
				t.Errorf("Decide(%d, %d, %v) = %v, want %v", tt.width, tt.height, tt.reverse, got, tt.expected)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name        string
		orientation Orientation
		command     []string
		expected    string
	}{
		{"split and exec", Horizontal, []string{"foo"}, "split horizontal;exec 'foo '"},
		{"exec with spaced arg", None, []string{"a", "b c"}, `exec 'a "b c" '`},
		{"split only", Vertical, []string{}, "split vertical;"},
		{"nothing", None, nil, ""},
		{"vertical with args", Vertical, []string{"foot", "-e", "htop"}, "split vertical;exec 'foot -e htop '"},
		{"embedded quote kept verbatim", None, []string{`say "hi there"`}, `exec '"say "hi there"" '`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(tt.orientation, tt.command)
			if got != tt.expected {
				t.Errorf("Compose(%v, %q) = %q, want %q", tt.orientation, tt.command, got, tt.expected)
			}
		})
	}
}

func TestReverse(t *testing.T) {
	if Horizontal.Reverse() != Vertical {
		t.Errorf("Horizontal.Reverse() = %v, want vertical", Horizontal.Reverse())
	}
	if Vertical.Reverse() != Horizontal {
		t.Errorf("Vertical.Reverse() = %v, want horizontal", Vertical.Reverse())
	}
	if None.Reverse() != None {
		t.Errorf("None.Reverse() = %v, want none", None.Reverse())
	}
}
