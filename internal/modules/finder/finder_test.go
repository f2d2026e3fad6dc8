package finder

import (
	"context"
	"testing"

	"motopartes/internal/cache"
	"motopartes/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var catalogue = []domain.MotoModel{
	{Anio: 2023, Marca: "Yamaha", Modelo: "FZ25"},
	{Anio: 2022, Marca: "Honda", Modelo: "CB190R"},
	{Anio: 2024, Marca: "Honda", Modelo: "XR150L"},
	{Anio: 2023, Marca: "Honda", Modelo: "CB190R"},
	{Anio: 2023, Marca: "Bajaj", Modelo: "Pulsar NS200"},
}

type staticCatalogue struct {
	rows []domain.MotoModel
	err  error
}

func (s staticCatalogue) ListMotoModels(context.Context) ([]domain.MotoModel, error) {
	return s.rows, s.err
}

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions(catalogue)

	assert.Equal(t, []int{2024, 2023, 2022}, opts.Years)
	assert.Equal(t, []string{"Bajaj", "Honda", "Yamaha"}, opts.Brands)
	want := []ModelOption{
		{Modelo: "Pulsar NS200", Marca: "Bajaj"},
		{Modelo: "CB190R", Marca: "Honda"},
		{Modelo: "XR150L", Marca: "Honda"},
		{Modelo: "FZ25", Marca: "Yamaha"},
	}
	if diff := cmp.Diff(want, opts.Models); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}
}

func TestSelection_BrandChangeClearsModel(t *testing.T) {
	sel := NewSelection(BuildOptions(catalogue))
	assert.Empty(t, sel.ModelOptions(), "no models before a brand is chosen")

	require.NoError(t, sel.SetYear(2023))
	require.NoError(t, sel.SetBrand("Honda"))
	assert.Len(t, sel.ModelOptions(), 2)
	require.NoError(t, sel.SetModel("CB190R"))
	require.NoError(t, sel.Validate())

	require.NoError(t, sel.SetBrand("Yamaha"))
	assert.Equal(t, "", sel.Model())
	assert.Equal(t, []ModelOption{{Modelo: "FZ25", Marca: "Yamaha"}}, sel.ModelOptions())
	assert.True(t, errors.Is(sel.Validate(), ErrIncompleteSearch))

	err := sel.SetModel("CB190R")
	assert.True(t, errors.Is(err, ErrUnknownOption), "a Honda model is not valid for Yamaha")
	assert.True(t, errors.Is(sel.SetBrand("Ducati"), ErrUnknownOption))
	assert.True(t, errors.Is(sel.SetYear(1999), ErrUnknownOption))
}

func TestRecentSearches_Add(t *testing.T) {
	a := Search{Year: 2023, Brand: "Honda", Model: "CB190R"}
	b := Search{Year: 2024, Brand: "Honda", Model: "XR150L"}
	c := Search{Year: 2023, Brand: "Yamaha", Model: "FZ25"}
	d := Search{Year: 2023, Brand: "Bajaj", Model: "Pulsar NS200"}

	var r RecentSearches
	r = r.Add(a).Add(b).Add(c)
	assert.Equal(t, RecentSearches{c, b, a}, r)

	r = r.Add(a)
	assert.Equal(t, RecentSearches{a, c, b}, r, "re-adding moves to front without duplicating")

	r = r.Add(d)
	assert.Equal(t, RecentSearches{d, a, c}, r, "oldest entry falls off")
}

func TestRecentSearches_AddProperties(t *testing.T) {
	all := []Search{
		{2022, "Honda", "CB190R"}, {2023, "Honda", "CB190R"}, {2024, "Honda", "XR150L"},
		{2023, "Yamaha", "FZ25"}, {2023, "Bajaj", "Pulsar NS200"},
	}
	var r RecentSearches
	for i := 0; i < 40; i++ {
		s := all[(i*7)%len(all)]
		r = r.Add(s)

		assert.LessOrEqual(t, len(r), MaxRecentSearches)
		assert.Equal(t, s, r[0])
		seen := map[Search]bool{}
		for _, e := range r {
			assert.False(t, seen[e], "duplicate %v", e)
			seen[e] = true
		}
	}
}

func TestSearch_RedirectURL(t *testing.T) {
	s := Search{Year: 2023, Brand: "Honda", Model: "CB 190R"}
	assert.Equal(t, "/resultados?brand=Honda&model=CB+190R&year=2023", s.RedirectURL())
}

func TestCacheRecentStore_TruncatesOnLoad(t *testing.T) {
	mem := cache.NewMemory()
	store := NewCacheRecentStore(mem)
	ctx := context.Background()

	list, err := store.Load(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, list)

	long := RecentSearches{{2020, "A", "1"}, {2021, "B", "2"}, {2022, "C", "3"}, {2023, "D", "4"}}
	require.NoError(t, mem.Set(ctx, "recentMotorcycleSearches:v1", long, 0))

	list, err = store.Load(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, long[:3], list)

	other, err := store.Load(ctx, "v2")
	require.NoError(t, err)
	assert.Empty(t, other, "visitors do not share history")
}

func TestService_Search(t *testing.T) {
	store := NewCacheRecentStore(cache.NewMemory())
	svc := NewService(staticCatalogue{rows: catalogue}, store, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Search(ctx, "v", Search{Year: 2023, Brand: "Honda"})
	assert.True(t, errors.Is(err, ErrIncompleteSearch))
	recent, _ := svc.Recent(ctx, "v")
	assert.Empty(t, recent, "incomplete search records nothing")

	_, err = svc.Search(ctx, "v", Search{Year: 2023, Brand: "Honda", Model: "FZ25"})
	assert.True(t, errors.Is(err, ErrUnknownOption))

	got, err := svc.Search(ctx, "v", Search{Year: 2023, Brand: "Honda", Model: "CB190R"})
	require.NoError(t, err)
	assert.Equal(t, RecentSearches{{2023, "Honda", "CB190R"}}, got)

	recent, err = svc.Recent(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, got, recent)
}
