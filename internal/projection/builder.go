package projection

import (
	"fmt"
	"strconv"

	"github.com/eytandecker/theatre-mcp/internal/theatre"
	"github.com/eytandecker/theatre-mcp/pkg/types"
)

// TargetDatum is the geographic system every theatre projects into.
const TargetDatum = "WGS84"

// Definition renders the PROJ string for a theatre's parameters. The format is
// shared with PROJ-compatible engines and must not change.
func Definition(p theatre.Parameters) string {
	return fmt.Sprintf("+proj=tmerc +lat_0=0 +lon_0=%d +k_0=%s +x_0=%s +y_0=%s",
		p.CentralMeridian,
		formatFloat(p.ScaleFactor),
		formatFloat(p.FalseEasting),
		formatFloat(p.FalseNorthing),
	)
}

// formatFloat prints the shortest decimal that round-trips, never in exponent form.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Build asks the engine for a handle matching p. Engine failures are returned
// as *types.ProjectionError wrapping types.ErrProjectionInit.
func Build(engine Engine, p theatre.Parameters) (Handle, error) {
	def := Definition(p)
	h, err := engine.Build(def, TargetDatum)
	if err != nil {
		return nil, &types.ProjectionError{
			Definition: def,
			Err:        fmt.Errorf("%w: %w", types.ErrProjectionInit, err),
		}
	}
	return h, nil
}
