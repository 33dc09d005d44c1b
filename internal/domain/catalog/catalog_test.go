package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/magnuspl/navnetips/names"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadEmbedded(t *testing.T) *Catalogue {
	t.Helper()
	c, err := Load(names.FS, "v1")
	require.NoError(t, err)
	return c
}

func TestLoad_EmbeddedCatalogue(t *testing.T) {
	c := loadEmbedded(t)

	assert.Equal(t, 13, c.Len(ports.KindBoy))
	assert.Equal(t, 13, c.Len(ports.KindGirl))
	assert.Equal(t, 9, c.Len(ports.KindDog))
	assert.Equal(t, 9, c.Len(ports.KindCat))

	girls, err := c.ListByKind(ports.KindGirl)
	require.NoError(t, err)
	assert.Equal(t, "Astrid", girls[0].Name)
	assert.Equal(t, "Elise", girls[len(girls)-1].Name)
	assert.Equal(t, []string{"norrønt", "klassisk"}, girls[0].Categories)

	require.Len(t, c.Tags(), 4)
	assert.Equal(t, "norrønt", c.Tags()[0].ID)

	popular := c.Popular(ports.KindBoy)
	require.Len(t, popular, 10)
	assert.Equal(t, "Lucas", popular[0].Name)
	assert.Equal(t, 10, popular[9].Rank)
	assert.Nil(t, c.Popular(ports.KindDog))
}

func TestListByKind_UnknownKind(t *testing.T) {
	c := loadEmbedded(t)
	_, err := c.ListByKind(ports.Kind("hamster"))
	assert.True(t, errors.Is(err, ports.ErrInvalidArgument))
}

func TestListByKind_ReturnsCopy(t *testing.T) {
	c := loadEmbedded(t)
	first, err := c.ListByKind(ports.KindBoy)
	require.NoError(t, err)
	first[0] = ports.NameRecord{Name: "Changed"}

	again, err := c.ListByKind(ports.KindBoy)
	require.NoError(t, err)
	assert.Equal(t, "Erik", again[0].Name)
}

func TestLookup_CaseInsensitive(t *testing.T) {
	c := loadEmbedded(t)

	rec, ok := c.Lookup(ports.KindBoy, "HÅKON")
	require.True(t, ok)
	assert.Equal(t, "Håkon", rec.Name)

	rec, ok = c.Lookup(ports.KindBoy, "  bjørn ")
	require.True(t, ok)
	assert.Equal(t, "Bjørn", rec.Name)

	_, ok = c.Lookup(ports.KindGirl, "Håkon")
	assert.False(t, ok)

	_, ok = c.Lookup(ports.KindBoy, "Nobody")
	assert.False(t, ok)
}

func TestResolve_PriorityOrder(t *testing.T) {
	c := loadEmbedded(t)

	hit, ok := c.Resolve("luna")
	require.True(t, ok)
	assert.Equal(t, ports.KindDog, hit.Kind)
	assert.Equal(t, "Måne", hit.Record.Meaning)

	hit, ok = c.Resolve("Freya")
	require.True(t, ok)
	assert.Equal(t, ports.KindCat, hit.Kind)

	_, ok = c.Resolve("Nobody")
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{
			name: "empty name",
			src: Source{Partitions: map[ports.Kind][]ports.NameRecord{
				ports.KindBoy: {{Name: "  "}},
			}},
		},
		{
			name: "duplicate within partition",
			src: Source{Partitions: map[ports.Kind][]ports.NameRecord{
				ports.KindCat: {{Name: "Luna"}, {Name: "LUNA"}},
			}},
		},
		{
			name: "unknown partition",
			src: Source{Partitions: map[ports.Kind][]ports.NameRecord{
				"hamster": {{Name: "Pip"}},
			}},
		},
		{
			name: "unknown popular kind",
			src:  Source{Popular: map[ports.Kind][]ports.RankedName{"hamster": {{Rank: 1, Name: "Pip"}}}},
		},
		{
			name: "tag without id",
			src:  Source{Tags: []ports.Tag{{Label: "x"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.src)
			assert.Error(t, err)
		})
	}
}

func TestNew_DuplicateAcrossPartitionsAllowed(t *testing.T) {
	c, err := New(Source{Partitions: map[ports.Kind][]ports.NameRecord{
		ports.KindDog: {{Name: "Luna", Meaning: "dog"}},
		ports.KindCat: {{Name: "Luna", Meaning: "cat"}},
	}})
	require.NoError(t, err)

	dog, ok := c.Lookup(ports.KindDog, "Luna")
	require.True(t, ok)
	assert.Equal(t, "dog", dog.Meaning)
	assert.Equal(t, 0, c.Len(ports.KindBoy))
}

func TestNew_CopiesSource(t *testing.T) {
	cats := []string{"klassisk"}
	src := Source{Partitions: map[ports.Kind][]ports.NameRecord{
		ports.KindGirl: {{Name: "Emma", Categories: cats}},
	}}
	c, err := New(src)
	require.NoError(t, err)

	cats[0] = "moderne"
	rec, ok := c.Lookup(ports.KindGirl, "Emma")
	require.True(t, ok)
	assert.Equal(t, []string{"klassisk"}, rec.Categories)
}

func TestLoad_MergesFilesInSortedOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"data/b.yaml":   {Data: []byte("partitions:\n  dog:\n    - {name: Rex}\n")},
		"data/a.yaml":   {Data: []byte("partitions:\n  dog:\n    - {name: Fido}\n")},
		"data/note.txt": {Data: []byte("ignored")},
	}
	c, err := Load(fsys, "data")
	require.NoError(t, err)

	dogs, err := c.ListByKind(ports.KindDog)
	require.NoError(t, err)
	require.Len(t, dogs, 2)
	assert.Equal(t, "Fido", dogs[0].Name)
	assert.Equal(t, "Rex", dogs[1].Name)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "missing")
	assert.Error(t, err)

	_, err = Load(fstest.MapFS{"d/x.txt": {Data: []byte("x")}}, "d")
	assert.Error(t, err, "no YAML files")

	_, err = Load(fstest.MapFS{"d/x.yaml": {Data: []byte("partitions: [")}}, "d")
	assert.Error(t, err, "malformed YAML")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte("partitions:\n  girl:\n    - {name: Nora, origin: Norrønt}\n"), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	rec, ok := c.Lookup(ports.KindGirl, "nora")
	require.True(t, ok)
	assert.Equal(t, "Norrønt", rec.Origin)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
