package termcolor

import (
	"math"

	"github.com/phyten/todolist/internal/colorutil"
)

// Palette maps a task priority (1 = most urgent) to a style.
type Palette func(priority int) Style

var lightBackground = colorutil.RGB{R: 249, G: 250, B: 251}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// FileStyle is used for file names heading each block of tasks.
func FileStyle() Style {
	return Style{Bold: true}
}

// LabelStyle is used for the stats labels.
func LabelStyle() Style {
	return Style{Bold: true}
}

func NoticeStyle() Style {
	color := 3
	return Style{FGBasic: &color}
}

// PriorityPalette grades priorities from red (1) through yellow to green
// (6); the lowest priority is rendered dim.
func PriorityPalette(scheme Scheme, profile Profile) Palette {
	return func(priority int) Style {
		if priority <= 0 {
			return Style{}
		}
		if priority >= 7 {
			return Style{Dim: true}
		}
		switch profile {
		case ProfileTrueColor, ProfileANSI256:
			r, g, b := priorityRGB(priority)
			if scheme == SchemeLight {
				fixed := colorutil.EnsureContrast(colorutil.RGB{R: r, G: g, B: b}, lightBackground, 3)
				r, g, b = fixed.R, fixed.G, fixed.B
			}
			if profile == ProfileTrueColor {
				rgb := [3]uint8{r, g, b}
				return Style{Bold: priority == 1, FGTrue: &rgb}
			}
			idx := rgbToANSI256(r, g, b)
			return Style{Bold: priority == 1, FG256: &idx}
		default:
			return basicPriorityStyle(priority)
		}
	}
}

// basicPriorityStyle alternates bold and regular red, yellow and green.
func basicPriorityStyle(priority int) Style {
	colors := [...]int{1, 1, 3, 3, 2, 2}
	color := colors[priority-1]
	return Style{Bold: priority%2 == 1, FGBasic: &color}
}

// priorityRGB walks the red -> yellow -> green gradient for priorities 1..6.
func priorityRGB(priority int) (uint8, uint8, uint8) {
	t := float64(priority-1) / 5
	if t <= 0 {
		return 255, 0, 0
	}
	if t >= 1 {
		return 0, 200, 0
	}
	if t < 0.5 {
		g := uint8(math.Round(255 * t / 0.5))
		return 255, g, 0
	}
	ratio := (t - 0.5) / 0.5
	r := uint8(math.Round(255 * (1 - ratio)))
	g := uint8(math.Round(255 - 55*ratio))
	return r, g, 0
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
