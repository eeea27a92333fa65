package display

import (
	"fmt"

	"github.com/ZacxDev/panel-splitter/pkg/types"
	"golang.org/x/exp/slices"
)

// Tier is a named display class the panels are cut for.
type Tier interface {
	// GetCode returns the short code used in output paths (e.g. "4k")
	GetCode() string

	// GetResolution returns the full frame size of the tier
	GetResolution() types.Resolution

	// IsFallback reports whether the tier is cut as a single fixed panel
	// instead of a grid.
	IsFallback() bool
}

var tiers = make(map[string]Tier)

// Register adds a tier to the registry
func Register(t Tier) {
	tiers[t.GetCode()] = t
}

// Get returns a tier by code
func Get(code string) (Tier, error) {
	t, ok := tiers[code]
	if !ok {
		return nil, fmt.Errorf("unsupported display tier: %s", code)
	}
	return t, nil
}

// Supported returns the registered tier codes, largest frame first.
func Supported() []string {
	codes := make([]string, 0, len(tiers))
	for code := range tiers {
		codes = append(codes, code)
	}
	slices.SortFunc(codes, func(a, b string) int {
		ra, rb := tiers[a].GetResolution(), tiers[b].GetResolution()
		if d := rb.Width*rb.Height - ra.Width*ra.Height; d != 0 {
			return d
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return codes
}

// Resolve maps tier codes to their resolutions, in the given order.
func Resolve(codes []string) ([]types.Resolution, error) {
	out := make([]types.Resolution, 0, len(codes))
	for _, code := range codes {
		t, err := Get(code)
		if err != nil {
			return nil, err
		}
		out = append(out, t.GetResolution())
	}
	return out, nil
}

type tier struct {
	code     string
	width    int
	height   int
	fallback bool
}

func (t *tier) GetCode() string { return t.code }

func (t *tier) GetResolution() types.Resolution {
	return types.Resolution{Code: t.code, Width: t.width, Height: t.height}
}

func (t *tier) IsFallback() bool { return t.fallback }
