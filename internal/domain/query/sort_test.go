package query

import (
	"errors"
	"slices"
	"testing"

	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
)

func TestSort_ExampleScenario(t *testing.T) {
	got, err := Sort([]ports.NameRecord{astrid, emma}, SortLength, Asc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Emma", "Astrid"}, namesOf(got))
}

func TestSort_AlphabeticalIsOrderedUnderLocale(t *testing.T) {
	c := embeddedCatalogue(t)
	col := collate.New(collation)

	for _, kind := range ports.AllKinds() {
		got, err := Sort(partition(t, c, kind), SortAlphabetical, Asc)
		require.NoError(t, err)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, col.CompareString(got[i-1].Name, got[i].Name), 0,
				"%s before %s", got[i-1].Name, got[i].Name)
		}
	}
}

func TestSort_NorwegianLettersAfterZ(t *testing.T) {
	recs := []ports.NameRecord{{Name: "Åse"}, {Name: "Zelda"}, {Name: "Øyvind"}, {Name: "Ærlig"}, {Name: "Anna"}}
	got, err := Sort(recs, SortAlphabetical, Asc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Anna", "Zelda", "Ærlig", "Øyvind", "Åse"}, namesOf(got))
}

func TestSort_DescReversesWithoutTies(t *testing.T) {
	c := embeddedCatalogue(t)
	boys := partition(t, c, ports.KindBoy)

	asc, err := Sort(boys, SortAlphabetical, Asc)
	require.NoError(t, err)
	desc, err := Sort(boys, SortAlphabetical, Desc)
	require.NoError(t, err)

	reversed := slices.Clone(asc)
	slices.Reverse(reversed)
	assert.Equal(t, reversed, desc)
}

func TestSort_StableTies(t *testing.T) {
	recs := []ports.NameRecord{
		{Name: "Liv", Origin: "Norrønt"},
		{Name: "Max", Origin: "Latin"},
		{Name: "Ole", Origin: "Norrønt"},
		{Name: "Kira", Origin: "Russisk"},
	}

	asc, err := Sort(recs, SortLength, Asc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Liv", "Max", "Ole", "Kira"}, namesOf(asc))

	desc, err := Sort(recs, SortLength, Desc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kira", "Liv", "Max", "Ole"}, namesOf(desc), "ties keep input order")

	byOrigin, err := Sort(recs, SortOrigin, Asc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Max", "Liv", "Ole", "Kira"}, namesOf(byOrigin))
}

func TestSort_LengthCountsCharacters(t *testing.T) {
	recs := []ports.NameRecord{{Name: "Håkon"}, {Name: "Erik"}}
	got, err := Sort(recs, SortLength, Asc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Erik", "Håkon"}, namesOf(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	recs := []ports.NameRecord{{Name: "Zuri"}, {Name: "Anna"}}
	_, err := Sort(recs, SortAlphabetical, Asc)
	require.NoError(t, err)
	assert.Equal(t, "Zuri", recs[0].Name)
}

func TestSort_InvalidArguments(t *testing.T) {
	_, err := Sort(nil, SortKey("popularity"), Asc)
	assert.True(t, errors.Is(err, ports.ErrInvalidArgument))

	_, err = Sort(nil, SortLength, Direction("up"))
	assert.True(t, errors.Is(err, ports.ErrInvalidArgument))

	got, err := Sort(nil, SortLength, Asc)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseSortKeyAndDirection(t *testing.T) {
	k, err := ParseSortKey("origin")
	require.NoError(t, err)
	assert.Equal(t, SortOrigin, k)

	_, err = ParseSortKey("")
	assert.True(t, errors.Is(err, ports.ErrInvalidArgument))

	d, err := ParseDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)

	_, err = ParseDirection("DESC")
	assert.True(t, errors.Is(err, ports.ErrInvalidArgument))
}
