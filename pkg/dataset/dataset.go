package dataset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	da "github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/graphbuilder"
	"github.com/lintang-b-s/campusnav/pkg/util"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidDataset    = errors.New("invalid dataset")
	ErrDuplicateLocation = errors.New("duplicate location name")
)

type Location struct {
	Name string  `yaml:"name" json:"name" validate:"required"`
	Lat  float64 `yaml:"lat" json:"lat" validate:"min=-90,max=90"`
	Lon  float64 `yaml:"lon" json:"lon" validate:"min=-180,max=180"`
}

func (l Location) Coordinate() geo.Coordinate {
	return geo.NewCoordinate(l.Lat, l.Lon)
}

// Dataset. points of interest of one campus and, for curated mode, the walkable connections between them.
type Dataset struct {
	Name      string                        `yaml:"name" json:"name"`
	Locations []Location                    `yaml:"locations" json:"locations" validate:"required,min=1,dive"`
	Adjacency map[string]map[string]float64 `yaml:"adjacency,omitempty" json:"adjacency,omitempty"`
	// add the missing reverse of every curated edge before validation
	Symmetrize bool `yaml:"symmetrize,omitempty" json:"symmetrize,omitempty"`
}

// Parse. decode and validate a yaml dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, util.WrapErrorf(fmt.Errorf("%w: %v", ErrInvalidDataset, err), util.ErrBadParamInput,
			"%v: %v", ErrInvalidDataset, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

func Write(path string, ds *Dataset) error {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate. struct tags first, then unique names.
func (ds *Dataset) Validate() error {
	validate := validator.New()
	if err := validate.Struct(ds); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)

		msgs := []string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				msgs = append(msgs, e.Translate(trans))
			}
		} else {
			msgs = append(msgs, err.Error())
		}
		return util.WrapErrorf(ErrInvalidDataset, util.ErrBadParamInput, "%v: %s", ErrInvalidDataset,
			strings.Join(msgs, "; "))
	}

	seen := make(map[string]struct{}, len(ds.Locations))
	for _, l := range ds.Locations {
		if _, ok := seen[l.Name]; ok {
			return util.WrapErrorf(ErrDuplicateLocation, util.ErrBadParamInput, "%v: %q", ErrDuplicateLocation, l.Name)
		}
		seen[l.Name] = struct{}{}
	}
	return nil
}

// Registry. location registry with every point of interest.
func (ds *Dataset) Registry() (*da.LocationRegistry, error) {
	locations := make(map[string]geo.Coordinate, len(ds.Locations))
	for _, l := range ds.Locations {
		locations[l.Name] = l.Coordinate()
	}
	return da.NewLocationRegistry(locations)
}

// CuratedAdjacency. adjacency for curated mode, symmetrized when the dataset asks for it.
func (ds *Dataset) CuratedAdjacency() map[string]map[string]float64 {
	if ds.Symmetrize {
		return graphbuilder.SymmetrizeAdjacency(ds.Adjacency)
	}
	res := make(map[string]map[string]float64, len(ds.Adjacency))
	for from, tos := range ds.Adjacency {
		res[from] = make(map[string]float64, len(tos))
		for to, w := range tos {
			res[from][to] = w
		}
	}
	return res
}

func (ds *Dataset) HasAdjacency() bool {
	return len(ds.Adjacency) > 0
}
