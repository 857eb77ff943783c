// Package feed loads building waypoint feeds. A feed lists the floors of a
// building, each with its numeric level and the route points drawn on it.
package feed

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-wayfind/pkg/geo"
	"github.com/dd0wney/cluso-wayfind/pkg/validation"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

var (
	ErrInvalidFeed  = errors.New("invalid building feed")
	ErrUnknownFloor = errors.New("unknown floor")
)

// Building is the raw feed document
type Building struct {
	Name   string  `json:"name" yaml:"name" validate:"required"`
	Floors []Floor `json:"floors" yaml:"floors" validate:"required,min=1,dive"`
}

// Floor is one level of the building. Level is a pointer so a missing
// level is distinguishable from ground floor.
type Floor struct {
	ID          string       `json:"id" yaml:"id" validate:"required,waypointid"`
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Level       *int         `json:"level" yaml:"level" validate:"required"`
	RoutePoints []RoutePoint `json:"route_points" yaml:"route_points" validate:"dive"`
}

// RoutePoint is a feed route point before it is tagged with its level
type RoutePoint struct {
	ID        string   `json:"id" yaml:"id" validate:"required,waypointid"`
	Lng       *float64 `json:"lng" yaml:"lng" validate:"required,gte=-180,lte=180"`
	Lat       *float64 `json:"lat" yaml:"lat" validate:"required,gte=-90,lte=90"`
	Kind      string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Neighbors []string `json:"neighbors,omitempty" yaml:"neighbors,omitempty" validate:"max=64,dive,waypointid"`
}

// Validate checks struct tags and cross-record constraints: floor ids and
// route point ids must be unique across the building.
func (b *Building) Validate() error {
	if err := validation.Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}

	floors := make(map[string]struct{}, len(b.Floors))
	points := make(map[string]string)
	for _, f := range b.Floors {
		if _, dup := floors[f.ID]; dup {
			return fmt.Errorf("%w: duplicate floor id %s", ErrInvalidFeed, f.ID)
		}
		floors[f.ID] = struct{}{}

		for _, p := range f.RoutePoints {
			if other, dup := points[p.ID]; dup {
				return fmt.Errorf("%w: route point %s declared on floors %s and %s", ErrInvalidFeed, p.ID, other, f.ID)
			}
			points[p.ID] = f.ID
		}
	}
	return nil
}

// RoutePoints converts the feed into structured route points tagged with
// the level of their floor, in feed order.
func (b *Building) RoutePoints() []waypoint.RoutePoint {
	var out []waypoint.RoutePoint
	for _, f := range b.Floors {
		level := 0
		if f.Level != nil {
			level = *f.Level
		}
		for _, p := range f.RoutePoints {
			out = append(out, p.toRoutePoint(level))
		}
	}
	return out
}

// Levels returns the floor id to level lookup of the building
func (b *Building) Levels() LevelLookup {
	lookup := make(LevelLookup, len(b.Floors))
	for _, f := range b.Floors {
		if f.Level != nil {
			lookup[f.ID] = *f.Level
		}
	}
	return lookup
}

// PointCount returns the number of route points over all floors
func (b *Building) PointCount() int {
	n := 0
	for _, f := range b.Floors {
		n += len(f.RoutePoints)
	}
	return n
}

func (p RoutePoint) toRoutePoint(level int) waypoint.RoutePoint {
	var lng, lat float64
	if p.Lng != nil {
		lng = *p.Lng
	}
	if p.Lat != nil {
		lat = *p.Lat
	}
	return waypoint.RoutePoint{
		Waypoint: waypoint.Waypoint{
			ID:    p.ID,
			Point: geo.NewPoint(lng, lat),
			Level: level,
			Kind:  waypoint.ParseKind(p.Kind),
		},
		Neighbors: append([]string(nil), p.Neighbors...),
	}
}
