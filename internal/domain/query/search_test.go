package query

import (
	"testing"

	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAll_SharedNameReportedOnceAsDog(t *testing.T) {
	c := embeddedCatalogue(t)

	hits := SearchAll(c, "luna")
	require.Len(t, hits, 1)
	assert.Equal(t, ports.KindDog, hits[0].Kind)
	assert.Equal(t, "Luna", hits[0].Record.Name)
	assert.Equal(t, "Måne", hits[0].Record.Meaning)
}

func TestSearchAll_HitsAgreeWithResolve(t *testing.T) {
	c := embeddedCatalogue(t)

	for _, term := range []string{"", "a", "vakker", "norrønt", "latin", "e"} {
		hits := SearchAll(c, term)
		seen := make(map[string]bool)
		for _, h := range hits {
			key := ports.Fold(h.Record.Name)
			assert.False(t, seen[key], "%s reported twice for %q", h.Record.Name, term)
			seen[key] = true

			want, ok := c.Resolve(h.Record.Name)
			require.True(t, ok)
			assert.Equal(t, want.Kind, h.Kind)
			assert.Len(t, SearchText([]ports.NameRecord{h.Record}, term), 1, "%s does not match %q", h.Record.Name, term)
		}
	}
}

func TestSearchAll_KeepsTheRecordThatMatched(t *testing.T) {
	c, err := catalog.New(catalog.Source{Partitions: map[ports.Kind][]ports.NameRecord{
		ports.KindDog: {{Name: "Luna", Meaning: "Måne", Origin: "Latin"}},
		ports.KindCat: {{Name: "Luna", Meaning: "Nattkatt", Origin: "Norsk"}},
	}})
	require.NoError(t, err)

	hits := SearchAll(c, "nattkatt")
	require.Len(t, hits, 1)
	assert.Equal(t, "Nattkatt", hits[0].Record.Meaning)
	assert.Equal(t, ports.KindDog, hits[0].Kind, "kind still follows priority order")

	hits = SearchAll(c, "luna")
	require.Len(t, hits, 1)
	assert.Equal(t, "Måne", hits[0].Record.Meaning, "both match: the dog record wins")
}

func TestSearchAll_PriorityOrder(t *testing.T) {
	c := embeddedCatalogue(t)

	hits := SearchAll(c, "vakker")
	require.Len(t, hits, 2)
	assert.Equal(t, "Bella", hits[0].Record.Name)
	assert.Equal(t, ports.KindDog, hits[0].Kind)
	assert.Equal(t, "Zuri", hits[1].Record.Name)
	assert.Equal(t, ports.KindCat, hits[1].Kind)
}

func TestSearchAll_EmptyTermCoversEveryDistinctName(t *testing.T) {
	c := embeddedCatalogue(t)

	hits := SearchAll(c, "")
	// 44 records, Luna and Bella shared by dog and cat.
	assert.Len(t, hits, 42)
	assert.Equal(t, ports.KindBoy, hits[0].Kind)

	none := SearchAll(c, "xyzzy")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
