package domain

// CatalogKind discriminates the three kinds of user-defined catalog items.
type CatalogKind string

const (
	KindTag      CatalogKind = "tag"
	KindActivity CatalogKind = "activity"
	KindEmotion  CatalogKind = "emotion"
)

// Valid reports whether k is one of the three known kinds.
func (k CatalogKind) Valid() bool {
	switch k {
	case KindTag, KindActivity, KindEmotion:
		return true
	}
	return false
}

// CatalogItem is a user-defined tag, activity or emotion. Entries reference
// items by id; the label and icon are always read live from the catalog, so
// renaming an item changes it everywhere it is referenced.
//
// IconID is only meaningful for activities and emotions; tags carry 0.
type CatalogItem struct {
	ID         int64
	OwnerLogin string
	Kind       CatalogKind
	Label      string
	IconID     int
}
