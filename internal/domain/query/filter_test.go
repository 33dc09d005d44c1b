package query

import (
	"strings"
	"testing"

	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/stretchr/testify/assert"
)

func TestFilterByPrefix_MatchesExactlyTheStartingNames(t *testing.T) {
	c := embeddedCatalogue(t)
	for _, kind := range ports.AllKinds() {
		recs := partition(t, c, kind)
		for _, letter := range append(Alphabet, "a", "h", "å", "ø") {
			got := FilterByPrefix(recs, letter)
			gotSet := make(map[string]bool)
			for _, r := range got {
				gotSet[r.Name] = true
			}
			for _, r := range recs {
				want := strings.HasPrefix(strings.ToLower(r.Name), strings.ToLower(letter))
				assert.Equal(t, want, gotSet[r.Name], "kind=%s letter=%s name=%s", kind, letter, r.Name)
			}
		}
	}
}

func TestFilterByPrefix_DefaultAndNoMatch(t *testing.T) {
	c := embeddedCatalogue(t)
	boys := partition(t, c, ports.KindBoy)

	assert.Equal(t, []string{"Anders"}, namesOf(FilterByPrefix(boys, "")))
	assert.Equal(t, []string{"Håkon", "Harald"}, namesOf(FilterByPrefix(boys, "H")))

	none := FilterByPrefix(boys, "Q")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFilterByTag(t *testing.T) {
	girls := []ports.NameRecord{astrid, emma}

	assert.Equal(t, []string{"Astrid"}, namesOf(FilterByTag(girls, "norrønt")))
	assert.Equal(t, []string{"Astrid", "Emma"}, namesOf(FilterByTag(girls, "klassisk")))
	assert.Empty(t, FilterByTag(girls, "Norrønt"), "tags are case-sensitive")
	assert.Equal(t, girls, FilterByTag(girls, All))
}

func TestFilterByAnyTag_IsLogicalOr(t *testing.T) {
	c := embeddedCatalogue(t)
	dogs := partition(t, c, ports.KindDog)

	assert.Len(t, FilterByAnyTag(dogs, []string{"unikt"}), 3)
	assert.Len(t, FilterByAnyTag(dogs, []string{"unikt", "klassisk"}), 9)
	assert.Empty(t, FilterByAnyTag(dogs, []string{"norrønt"}))
	assert.Empty(t, FilterByAnyTag(dogs, nil))
}

func TestFilterByOrigin(t *testing.T) {
	c := embeddedCatalogue(t)
	cats := partition(t, c, ports.KindCat)

	assert.Equal(t, []string{"Simba", "Zuri"}, namesOf(FilterByOrigin(cats, "Swahili")))
	assert.Empty(t, FilterByOrigin(cats, "swahili"), "origin match is exact")
	assert.Equal(t, cats, FilterByOrigin(cats, All))
}

func TestSearchText(t *testing.T) {
	c := embeddedCatalogue(t)
	girls := partition(t, c, ports.KindGirl)

	assert.Equal(t, []string{"Astrid", "Gudrun"}, namesOf(SearchText(girls, "GUDDOMMELIG")), "matches meaning")
	assert.Equal(t, []string{"Anna", "Elise"}, namesOf(SearchText(girls, "hebraisk")), "matches origin")
	assert.Equal(t, []string{"Astrid", "Ingrid", "Sigrid", "Ragnhild"}, namesOf(SearchText(girls, "rid")),
		"Ragnhild matches through \"Råd og strid\"")
	assert.Len(t, SearchText(girls, ""), len(girls))
	assert.Empty(t, SearchText(girls, "xyzzy"))
}

func TestFilters_Commute(t *testing.T) {
	c := embeddedCatalogue(t)
	boys := partition(t, c, ports.KindBoy)

	a := FilterByOrigin(FilterByTag(FilterByPrefix(boys, "s"), "klassisk"), "Norrønt")
	b := FilterByPrefix(FilterByOrigin(FilterByTag(boys, "klassisk"), "Norrønt"), "s")
	assert.Equal(t, a, b)
	assert.Equal(t, []string{"Sigurd"}, namesOf(a))
}
