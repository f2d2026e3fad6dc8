package finder

import (
	"sort"

	"motopartes/internal/domain"

	"github.com/cockroachdb/errors"
)

type ModelOption struct {
	Modelo string `json:"modelo"`
	Marca  string `json:"marca"`
}

// Options is the finder's option set: every year, brand and brand/model
// pair in the catalogue.
type Options struct {
	Years  []int         `json:"years"`
	Brands []string      `json:"brands"`
	Models []ModelOption `json:"models"`
}

// BuildOptions derives the option set from catalogue rows. Years are newest
// first; brands and models are sorted by name.
func BuildOptions(rows []domain.MotoModel) Options {
	years := map[int]struct{}{}
	brands := map[string]struct{}{}
	models := map[ModelOption]struct{}{}
	for _, r := range rows {
		years[r.Anio] = struct{}{}
		brands[r.Marca] = struct{}{}
		models[ModelOption{Modelo: r.Modelo, Marca: r.Marca}] = struct{}{}
	}

	opts := Options{
		Years:  make([]int, 0, len(years)),
		Brands: make([]string, 0, len(brands)),
		Models: make([]ModelOption, 0, len(models)),
	}
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	for b := range brands {
		opts.Brands = append(opts.Brands, b)
	}
	for m := range models {
		opts.Models = append(opts.Models, m)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))
	sort.Strings(opts.Brands)
	sort.Slice(opts.Models, func(i, j int) bool {
		if opts.Models[i].Marca != opts.Models[j].Marca {
			return opts.Models[i].Marca < opts.Models[j].Marca
		}
		return opts.Models[i].Modelo < opts.Models[j].Modelo
	})
	return opts
}

// ModelsFor returns the models of one brand, in option order.
func (o Options) ModelsFor(brand string) []ModelOption {
	out := make([]ModelOption, 0)
	if brand == "" {
		return out
	}
	for _, m := range o.Models {
		if m.Marca == brand {
			out = append(out, m)
		}
	}
	return out
}

func (o Options) hasYear(y int) bool {
	for _, v := range o.Years {
		if v == y {
			return true
		}
	}
	return false
}

func (o Options) hasBrand(b string) bool {
	for _, v := range o.Brands {
		if v == b {
			return true
		}
	}
	return false
}

// Search is one complete finder query.
type Search struct {
	Year  int    `json:"year"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// Selection is the finder form state. Changing the brand clears the model.
type Selection struct {
	opts  Options
	year  int
	brand string
	model string
}

func NewSelection(opts Options) *Selection {
	return &Selection{opts: opts}
}

func (s *Selection) SetYear(year int) error {
	if !s.opts.hasYear(year) {
		return errors.Wrapf(ErrUnknownOption, "year %d", year)
	}
	s.year = year
	return nil
}

func (s *Selection) SetBrand(brand string) error {
	if !s.opts.hasBrand(brand) {
		return errors.Wrapf(ErrUnknownOption, "brand %q", brand)
	}
	s.brand = brand
	s.model = ""
	return nil
}

// SetModel accepts only a model of the chosen brand.
func (s *Selection) SetModel(model string) error {
	for _, m := range s.ModelOptions() {
		if m.Modelo == model {
			s.model = model
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownOption, "model %q for brand %q", model, s.brand)
}

// ModelOptions is empty until a brand is chosen.
func (s *Selection) ModelOptions() []ModelOption {
	return s.opts.ModelsFor(s.brand)
}

func (s *Selection) Year() int      { return s.year }
func (s *Selection) Brand() string  { return s.brand }
func (s *Selection) Model() string  { return s.model }
func (s *Selection) Search() Search { return Search{Year: s.year, Brand: s.brand, Model: s.model} }

// Validate reports ErrIncompleteSearch unless year, brand and model are set.
func (s *Selection) Validate() error {
	return s.Search().Validate()
}

func (q Search) Validate() error {
	if q.Year == 0 || q.Brand == "" || q.Model == "" {
		return ErrIncompleteSearch
	}
	return nil
}
