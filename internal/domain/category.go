package domain

// Category is the operating location category sent in the exchange.
type Category uint8

const (
	CategoryHome Category = iota + 1
	CategoryIndoor
	CategoryOutdoor
	CategoryMobile
)

func (c Category) String() string {
	switch c {
	case CategoryHome:
		return "HOME"
	case CategoryIndoor:
		return "INDOOR"
	case CategoryOutdoor:
		return "OUTDOOR"
	case CategoryMobile:
		return "MOBILE"
	default:
		return "INVALID"
	}
}

// Valid reports whether c is one of the four categories.
func (c Category) Valid() bool {
	return c >= CategoryHome && c <= CategoryMobile
}

// MarshalText encodes the category as its name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// LookupCategory resolves the single-letter category code (H, I, O, M).
func LookupCategory(letter string) (Category, error) {
	switch letter {
	case "H":
		return CategoryHome, nil
	case "I":
		return CategoryIndoor, nil
	case "O":
		return CategoryOutdoor, nil
	case "M":
		return CategoryMobile, nil
	}
	return 0, newParseError(InvalidCategory, "category", letter, nil)
}
