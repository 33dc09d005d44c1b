package query

import (
	"testing"

	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/magnuspl/navnetips/names"
	"github.com/stretchr/testify/require"
)

// embeddedCatalogue loads the shipped catalogue.
func embeddedCatalogue(t *testing.T) *catalog.Catalogue {
	t.Helper()
	c, err := catalog.Load(names.FS, "v1")
	require.NoError(t, err)
	return c
}

func partition(t *testing.T, c *catalog.Catalogue, kind ports.Kind) []ports.NameRecord {
	t.Helper()
	recs, err := c.ListByKind(kind)
	require.NoError(t, err)
	return recs
}

func namesOf(recs []ports.NameRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

var (
	astrid = ports.NameRecord{Name: "Astrid", Meaning: "Guddommelig skjønnhet", Origin: "Norrønt", Categories: []string{"norrønt", "klassisk"}}
	emma   = ports.NameRecord{Name: "Emma", Meaning: "Hel, universal", Origin: "Germansk", Categories: []string{"klassisk"}}
)
