package ports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"boy", KindBoy},
		{"Girl", KindGirl},
		{" DOG ", KindDog},
		{"kattenavn", KindCat},
		{"Guttenavn", KindBoy},
		{"jentenavn", KindGirl},
		{"hundenavn", KindDog},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseKind("pet")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = ParseKind("")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestKindMetadata(t *testing.T) {
	assert.Equal(t, []Kind{KindBoy, KindGirl, KindDog, KindCat}, AllKinds())
	assert.Equal(t, "hundenavn", KindDog.Slug())
	assert.Equal(t, "Kattenavn", KindCat.Label())
	assert.True(t, KindGirl.Valid())
	assert.False(t, Kind("pet").Valid())
}

func TestNameRecord_HasCategory(t *testing.T) {
	r := NameRecord{Name: "Astrid", Categories: []string{"norrønt", "klassisk"}}
	assert.True(t, r.HasCategory("norrønt"))
	assert.False(t, r.HasCategory("Norrønt"), "tag match is case-sensitive")
	assert.False(t, r.HasCategory("unikt"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("håkon"), Fold("HÅKON"))
	assert.Equal(t, Fold("bjørn"), Fold("BJØRN"))
	assert.Equal(t, "æøå", Fold("ÆØÅ"))
}
