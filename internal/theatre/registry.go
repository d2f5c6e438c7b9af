package theatre

import (
	"sort"

	"github.com/eytandecker/theatre-mcp/pkg/types"
)

// Parameters are the transverse Mercator constants of one theatre grid.
type Parameters struct {
	CentralMeridian int     `json:"central_meridian"`
	FalseEasting    float64 `json:"false_easting"`
	FalseNorthing   float64 `json:"false_northing"`
	ScaleFactor     float64 `json:"scale_factor"`
}

// Theatre identifiers as they appear in mission files.
const (
	PersianGulf    = "PersianGulf"
	Falklands      = "Falklands"
	Caucasus       = "Caucasus"
	MarianaIslands = "MarianaIslands"
	Nevada         = "Nevada"
	Normandy       = "Normandy"
	Syria          = "Syria"
	SinaiMap       = "SinaiMap"
)

// Projection constants per theatre, derived with the same method as PyDCS.
var (
	PersianGulfParams = Parameters{
		CentralMeridian: 57,
		FalseEasting:    75755.99999999645,
		FalseNorthing:   -2894933.0000000377,
		ScaleFactor:     0.9996,
	}
	FalklandsParams = Parameters{
		CentralMeridian: -57,
		FalseEasting:    147639.99999997593,
		FalseNorthing:   5815417.000000032,
		ScaleFactor:     0.9996,
	}
	CaucasusParams = Parameters{
		CentralMeridian: 33,
		FalseEasting:    -99516.99999997323,
		FalseNorthing:   -4998114.999999984,
		ScaleFactor:     0.9996,
	}
	MarianaIslandsParams = Parameters{
		CentralMeridian: 147,
		FalseEasting:    238417.99999989968,
		FalseNorthing:   -1491840.000000048,
		ScaleFactor:     0.9996,
	}
	NevadaParams = Parameters{
		CentralMeridian: -117,
		FalseEasting:    -193996.80999964548,
		FalseNorthing:   -4410028.063999966,
		ScaleFactor:     0.9996,
	}
	NormandyParams = Parameters{
		CentralMeridian: -3,
		FalseEasting:    -195526.00000000204,
		FalseNorthing:   -5484812.999999951,
		ScaleFactor:     0.9996,
	}
	SyriaParams = Parameters{
		CentralMeridian: 39,
		FalseEasting:    282801.00000003993,
		FalseNorthing:   -3879865.9999999935,
		ScaleFactor:     0.9996,
	}
	SinaiMapParams = Parameters{
		CentralMeridian: 33,
		FalseEasting:    169221.9999999585,
		FalseNorthing:   -3325312.9999999693,
		ScaleFactor:     0.9996,
	}
)

// Registry maps theatre identifiers to their projection parameters.
// It is never modified after construction and is safe for concurrent reads.
type Registry struct {
	params map[string]Parameters
}

// NewRegistry creates a registry with all supported theatres.
func NewRegistry() *Registry {
	return &Registry{
		params: map[string]Parameters{
			PersianGulf:    PersianGulfParams,
			Falklands:      FalklandsParams,
			Caucasus:       CaucasusParams,
			MarianaIslands: MarianaIslandsParams,
			Nevada:         NevadaParams,
			Normandy:       NormandyParams,
			Syria:          SyriaParams,
			SinaiMap:       SinaiMapParams,
		},
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Lookup returns the parameters for an exact theatre id.
func (r *Registry) Lookup(id string) (Parameters, error) {
	p, ok := r.params[id]
	if !ok {
		return Parameters{}, &types.UnknownTheatreError{Theatre: id}
	}
	return p, nil
}

// Names returns the registered theatre ids in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.params))
	for name := range r.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered theatres.
func (r *Registry) Len() int {
	return len(r.params)
}
