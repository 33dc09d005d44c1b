package favorites

import (
	"testing"

	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/magnuspl/navnetips/names"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cat, err := catalog.Load(names.FS, "v1")
	require.NoError(t, err)

	got := Resolve(cat, []Entry{
		{Kind: ports.KindGirl, Name: "astrid"},
		{Name: "Bella"},
		{Kind: ports.KindBoy, Name: "Nobody"},
	})
	require.Len(t, got, 3)

	require.NotNil(t, got[0].Record)
	assert.Equal(t, "Astrid", got[0].Record.Name)
	assert.Equal(t, ports.KindGirl, got[0].Kind)

	require.NotNil(t, got[1].Record, "legacy entry resolved by priority")
	assert.Equal(t, ports.KindDog, got[1].Kind)

	assert.Nil(t, got[2].Record)
	assert.Equal(t, "Nobody", got[2].Name)

	assert.Empty(t, Resolve(cat, nil))
}
