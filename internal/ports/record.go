package ports

// NameRecord is one candidate name. Name is the natural key within its
// partition; the same string may appear in several partitions.
type NameRecord struct {
	Name       string   `json:"name" yaml:"name"`
	Meaning    string   `json:"meaning" yaml:"meaning"`
	Origin     string   `json:"origin" yaml:"origin"`
	Categories []string `json:"categories" yaml:"categories"`
}

// HasCategory reports whether tag is one of the record's categories.
// Tag matching is exact (case-sensitive) against the fixed vocabulary.
func (r NameRecord) HasCategory(tag string) bool {
	for _, c := range r.Categories {
		if c == tag {
			return true
		}
	}
	return false
}

// Hit is a cross-collection search result: a record plus the partition it
// was resolved to.
type Hit struct {
	Record NameRecord `json:"record"`
	Kind   Kind       `json:"kind"`
}

// Tag describes one category of the tag vocabulary.
type Tag struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// RankedName is an entry of a popularity list. Popular names are display
// data and need not exist in the catalogue partitions.
type RankedName struct {
	Rank    int    `json:"rank" yaml:"rank"`
	Name    string `json:"name" yaml:"name"`
	Meaning string `json:"meaning" yaml:"meaning"`
	Origin  string `json:"origin" yaml:"origin"`
}
