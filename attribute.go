package termisu

// Attribute is a bit set of text rendering attributes.
type Attribute uint16

const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << 0
	AttrUnderline     Attribute = 1 << 1
	AttrReverse       Attribute = 1 << 2
	AttrBlink         Attribute = 1 << 3
	AttrDim           Attribute = 1 << 4
	AttrItalic        Attribute = 1 << 5
	// AttrCursive is an alias for AttrItalic: some terminfo databases name
	// the capability "sitm" (cursive) rather than italic; they are the same
	// bit because no terminal distinguishes the two.
	AttrCursive        = AttrItalic
	AttrHidden        Attribute = 1 << 6
	AttrStrikethrough Attribute = 1 << 7
)

// Has reports whether all bits in mask are set.
func (a Attribute) Has(mask Attribute) bool { return a&mask == mask }

// Set returns a with mask's bits set.
func (a Attribute) Set(mask Attribute) Attribute { return a | mask }

// Clear returns a with mask's bits cleared.
func (a Attribute) Clear(mask Attribute) Attribute { return a &^ mask }
