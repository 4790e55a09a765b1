// Package transform implements the pixel and neighborhood filters applied to
// a decoded bitmap grid. Every filter returns a new grid with the same
// dimensions and leaves its input untouched.
package transform

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/futurist-future/image-converter/internal/pixel"
)

// Kind selects a filter.
type Kind int

const (
	Greyscale Kind = iota
	Sepia
	Invert
	Reflect
	Blur
	Edge
)

// DefaultBlurRadius is the blur radius used when none is given.
const DefaultBlurRadius = 2

var kindNames = [...]string{
	Greyscale: "greyscale",
	Sepia:     "sepia",
	Invert:    "invert",
	Reflect:   "reflect",
	Blur:      "blur",
	Edge:      "edge",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every filter in declaration order.
func Kinds() []Kind {
	return []Kind{Greyscale, Sepia, Invert, Reflect, Blur, Edge}
}

// ParseKind maps a filter name to its Kind. "grayscale" is accepted as an
// alias of "greyscale".
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "grayscale" {
		return Greyscale, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown filter %q (want one of %s)", name, strings.Join(kindNames[:], ", "))
}

// Op is a filter plus its parameters. Radius only applies to Blur.
type Op struct {
	Kind   Kind
	Radius int
}

// NewOp returns the Op for k with default parameters.
func NewOp(k Kind) Op {
	if k == Blur {
		return Op{Kind: Blur, Radius: DefaultBlurRadius}
	}
	return Op{Kind: k}
}

// ParseOp parses a filter name. A negative radius selects the default.
func ParseOp(name string, radius int) (Op, error) {
	k, err := ParseKind(name)
	if err != nil {
		return Op{}, err
	}
	op := NewOp(k)
	if k == Blur && radius >= 0 {
		op.Radius = radius
	}
	return op, nil
}

func (o Op) String() string { return o.Kind.String() }

// rowFunc fills row r of dst from src.
type rowFunc func(src, dst pixel.Grid, r int)

// Apply runs op over g and returns the filtered copy. Rows are computed in
// parallel; each output pixel depends only on the input grid.
func Apply(g pixel.Grid, op Op) (pixel.Grid, error) {
	if err := g.Validate(); err != nil {
		return pixel.Grid{}, err
	}
	fn, err := rowFuncFor(op)
	if err != nil {
		return pixel.Grid{}, err
	}

	out := pixel.New(g.Width, g.Height, g.BytesPerPixel)
	workers := min(runtime.GOMAXPROCS(0), g.Height)
	band := (g.Height + workers - 1) / workers

	var eg errgroup.Group
	for start := 0; start < g.Height; start += band {
		end := min(start+band, g.Height)
		eg.Go(func() error {
			for r := start; r < end; r++ {
				fn(g, out, r)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return pixel.Grid{}, err
	}
	return out, nil
}

func rowFuncFor(op Op) (rowFunc, error) {
	switch op.Kind {
	case Greyscale:
		return pointRow(greyscale), nil
	case Sepia:
		return pointRow(sepia), nil
	case Invert:
		return pointRow(invert), nil
	case Reflect:
		return reflectRow, nil
	case Blur:
		if op.Radius < 0 {
			return nil, pixel.InvalidInputError(fmt.Sprintf("negative blur radius %d", op.Radius))
		}
		return blurRow(op.Radius), nil
	case Edge:
		return edgeRow, nil
	default:
		return nil, pixel.InvalidInputError(fmt.Sprintf("unknown filter %v", op.Kind))
	}
}
