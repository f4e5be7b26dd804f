package atlas

// Appetite is the coarse insurability label derived from a row's flags.
type Appetite string

const (
	InAppetite    Appetite = "In Appetite"
	OutOfAppetite Appetite = "Out of Appetite"
)

// Style tags for rendering an appetite label.
const (
	StyleGreen = "green"
	StyleRed   = "red"
)

// OnlyAppetite is the label for a row that is open to exactly one line of business.
func OnlyAppetite(l LOB) Appetite {
	return Appetite(l.String() + " Only")
}

// Classify derives the appetite label from the flags of a matched row.
func Classify(flags Flags) Appetite {
	var yes []LOB
	for _, l := range LOBs {
		if flags.IsYes(l) {
			yes = append(yes, l)
		}
	}
	switch {
	case len(yes) >= 2:
		return InAppetite
	case len(yes) == 1:
		return OnlyAppetite(yes[0])
	default:
		return OutOfAppetite
	}
}

// Style returns the display tag for the label: red only when nothing is written.
func (a Appetite) Style() string {
	if a == OutOfAppetite {
		return StyleRed
	}
	return StyleGreen
}

func (a Appetite) String() string {
	return string(a)
}
