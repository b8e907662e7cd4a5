// Package scene describes drawings as YAML documents and rasterizes them
// onto a framebuffer.
//
//	width: 64
//	height: 48
//	background: "#333355"
//	color: "#FFDDDD"
//	shapes:
//	  - kind: polygon
//	    points: [[10, 10], [50, 10], [30, 40]]
//	  - kind: point
//	    color: "#FFFFFF"
//	    points: [[20, 40]]
package scene

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/framelife/internal/core"
	"github.com/vovakirdan/framelife/internal/raster"
)

// Kind names a shape type.
type Kind string

const (
	KindPoint    Kind = "point"
	KindLine     Kind = "line"
	KindPolyline Kind = "polyline"
	KindPolygon  Kind = "polygon"
)

// MaxCoord bounds the magnitude of every point coordinate.
const MaxCoord = 1 << 20

var (
	// ErrUnknownKind is returned for shapes whose kind is not recognised.
	ErrUnknownKind = errors.New("scene: unknown shape kind")

	// ErrCoordRange is returned for coordinates that are NaN, infinite or
	// larger in magnitude than MaxCoord.
	ErrCoordRange = errors.New("scene: coordinate out of range")
)

// Scene is a canvas description plus an ordered list of shapes.
// Later shapes draw over earlier ones.
type Scene struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Background string  `yaml:"background"`
	Color      string  `yaml:"color"` // Default shape color
	Shapes     []Shape `yaml:"shapes"`
}

// Shape is one drawing primitive. Points are [x, y] or [x, y, z];
// z is carried but ignored by the rasterizer.
type Shape struct {
	Kind   Kind        `yaml:"kind"`
	Color  string      `yaml:"color"`
	Points [][]float64 `yaml:"points"`
}

// Parse decodes a YAML scene and validates it.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: cannot parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: cannot read %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks sizes, colors, kinds, point arity and coordinate range.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("scene: size %dx%d: %w", s.Width, s.Height, core.ErrInvalidSize)
	}
	if _, _, err := s.colors(); err != nil {
		return err
	}
	for i, sh := range s.Shapes {
		switch sh.Kind {
		case KindPoint, KindLine, KindPolyline, KindPolygon:
		default:
			return fmt.Errorf("%w %q (shape %d)", ErrUnknownKind, sh.Kind, i)
		}
		if sh.Kind == KindLine && len(sh.Points) != 2 {
			return fmt.Errorf("scene: shape %d: line needs exactly 2 points, got %d", i, len(sh.Points))
		}
		if sh.Color != "" {
			if _, err := core.ParseHex(sh.Color); err != nil {
				return fmt.Errorf("scene: shape %d: %w", i, err)
			}
		}
		if _, err := sh.vertices(); err != nil {
			return fmt.Errorf("scene: shape %d: %w", i, err)
		}
	}
	return nil
}

func (s *Scene) colors() (background, current core.Color, err error) {
	background, current = core.Black, core.White
	if s.Background != "" {
		if background, err = core.ParseHex(s.Background); err != nil {
			return background, current, fmt.Errorf("scene: background: %w", err)
		}
	}
	if s.Color != "" {
		if current, err = core.ParseHex(s.Color); err != nil {
			return background, current, fmt.Errorf("scene: color: %w", err)
		}
	}
	return background, current, nil
}

func (sh Shape) vertices() ([]core.Vertex, error) {
	out := make([]core.Vertex, 0, len(sh.Points))
	for j, p := range sh.Points {
		for _, c := range p {
			if math.IsNaN(c) || math.IsInf(c, 0) || math.Abs(c) > MaxCoord {
				return nil, fmt.Errorf("point %d: %v: %w", j, c, ErrCoordRange)
			}
		}
		switch len(p) {
		case 2:
			out = append(out, core.V(p[0], p[1]))
		case 3:
			out = append(out, core.Vertex{X: p[0], Y: p[1], Z: p[2]})
		default:
			return nil, fmt.Errorf("point %d has %d coordinates, expected 2 or 3", j, len(p))
		}
	}
	return out, nil
}

// Render clears a new framebuffer to the scene background and draws every
// shape onto it in order.
func (s *Scene) Render() (*core.Framebuffer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	fb, err := core.NewFramebuffer(s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	background, current, _ := s.colors()
	fb.SetBackground(background.Hex())
	fb.SetCurrent(current.Hex())
	fb.Clear()

	for _, sh := range s.Shapes {
		c := current
		if sh.Color != "" {
			c, _ = core.ParseHex(sh.Color)
		}
		vs, _ := sh.vertices()
		switch sh.Kind {
		case KindPoint:
			for _, v := range vs {
				p := v.Point()
				if sh.Color == "" {
					fb.Point(p.X, p.Y)
				} else {
					fb.SetPixel(p.X, p.Y, c)
				}
			}
		case KindLine:
			raster.Line(fb, vs[0], vs[1], c)
		case KindPolyline:
			raster.Polyline(fb, vs, c)
		case KindPolygon:
			raster.Polygon(fb, vs, c)
		}
	}
	return fb, nil
}

// Demo is the built-in test card: a single pale pixel at (20, 40) on a
// slate background.
func Demo(width, height int) *Scene {
	return &Scene{
		Width:      width,
		Height:     height,
		Background: "#333355",
		Color:      "#FFDDDD",
		Shapes: []Shape{
			{Kind: KindPoint, Points: [][]float64{{20, 40}}},
		},
	}
}
