package split

// Orientation is the split direction applied before launching a command.
// None means the orientation could not be determined and no split is sent.
type Orientation int

const (
	None Orientation = iota
	Horizontal
	Vertical
)

// String returns the keyword used by the command language
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "none"
	}
}

// Reverse swaps Horizontal and Vertical. None stays None.
func (o Orientation) Reverse() Orientation {
	switch o {
	case Horizontal:
		return Vertical
	case Vertical:
		return Horizontal
	default:
		return None
	}
}

// Decide picks the orientation for a window of the given size.
// Tall windows split vertically, everything else horizontally.
// A zero dimension means the focused window is unknown.
func Decide(width, height uint, reverse bool) Orientation {
	if width == 0 || height == 0 {
		return None
	}

	o := Horizontal
	if width < height {
		o = Vertical
	}
	if reverse {
		o = o.Reverse()
	}
	return o
}
