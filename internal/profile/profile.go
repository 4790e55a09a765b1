package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/futurist-future/image-converter/internal/transform"
)

// Profile is a named set of filters applied to every source in a build.
type Profile struct {
	Name    string
	Filters []transform.Kind
	Radius  int    // blur radius
	Export  string // preview format ("", "png", "jpeg", "bmp")
}

// DefaultName is used when no profile is requested.
const DefaultName = "all"

// Built-in profiles.
var profiles = map[string]Profile{
	"all": {
		Name:    "all",
		Filters: transform.Kinds(),
		Radius:  transform.DefaultBlurRadius,
	},
	"classic": {
		Name:    "classic",
		Filters: []transform.Kind{transform.Greyscale, transform.Sepia, transform.Invert},
		Radius:  transform.DefaultBlurRadius,
	},
	"geometry": {
		Name:    "geometry",
		Filters: []transform.Kind{transform.Reflect},
	},
	"soft": {
		Name:    "soft",
		Filters: []transform.Kind{transform.Blur},
		Radius:  transform.DefaultBlurRadius,
	},
	"edges": {
		Name:    "edges",
		Filters: []transform.Kind{transform.Greyscale, transform.Edge},
		Export:  "png",
	},
}

// Get returns a profile by name. Falls back to "all" if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p.clone()
	}
	p := profiles[DefaultName].clone()
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (p Profile) clone() Profile {
	p.Filters = append([]transform.Kind(nil), p.Filters...)
	return p
}

// WithFilters replaces the profile's filters with the parsed names. Unknown
// names fail; duplicates are dropped.
func (p Profile) WithFilters(names []string) (Profile, error) {
	kinds := make([]transform.Kind, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		k, err := transform.ParseKind(n)
		if err != nil {
			return p, err
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		return p, fmt.Errorf("no filters given")
	}
	p.Filters = lo.Uniq(kinds)
	return p, nil
}

// Ops returns the filters as ready-to-apply ops.
func (p Profile) Ops() []transform.Op {
	return lo.Map(lo.Uniq(p.Filters), func(k transform.Kind, _ int) transform.Op {
		op := transform.NewOp(k)
		if k == transform.Blur {
			op.Radius = p.Radius
		}
		return op
	})
}
