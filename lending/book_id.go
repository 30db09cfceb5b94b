package lending

const nullBookIDString = "null"

// BookID identifies a title in the catalog and in the loan table.
//
// A BookID is either present (built with BookIDOf, the empty string included) or absent
// (NullBookID). Both kinds are ordinary, distinct map keys: the absent identifier is not
// normalized into anything else. The zero value is NullBookID.
type BookID struct {
	value   string
	present bool
}

// NullBookID is the absent book identifier.
var NullBookID = BookID{}

// BookIDOf returns the present book identifier with the given value.
func BookIDOf(id string) BookID {
	return BookID{value: id, present: true}
}

// IsNull reports whether b is the absent identifier.
func (b BookID) IsNull() bool {
	return !b.present
}

// String renders the identifier, "null" for the absent one.
func (b BookID) String() string {
	if !b.present {
		return nullBookIDString
	}

	return b.value
}
