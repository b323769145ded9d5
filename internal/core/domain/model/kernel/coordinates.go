package kernel

import (
	"errors"
	"fmt"
	"strconv"

	"deliverypartner/internal/pkg/errs"
	"deliverypartner/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrCoordinatesAreNotConstructed is returned when a zero-value Coordinates is used.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates")

// Coordinates is a delivery destination on the map.
//
// The zero value is invalid; an address without coordinates carries no
// Coordinates at all rather than (0, 0).
type Coordinates struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewCoordinates validates latitude and longitude ranges.
func NewCoordinates(lat, lng float64) (Coordinates, error) {
	c := Coordinates{guard: guard.NewConstructorGuard()}

	if err := errors.Join(c.setLat(lat), c.setLng(lng)); err != nil {
		return Coordinates{}, err
	}

	return c, nil
}

func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

func (c Coordinates) Lat() float64 {
	return c.lat
}

func (c Coordinates) Lng() float64 {
	return c.lng
}

// DirectionsURL builds the maps link opened by "get directions".
func (c Coordinates) DirectionsURL() string {
	return "https://www.google.com/maps/dir/?api=1&destination=" + c.String()
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%s,%s", formatDegrees(c.lat), formatDegrees(c.lng))
}

func (c *Coordinates) setLat(lat float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}
	c.lat = lat
	return nil
}

func (c *Coordinates) setLng(lng float64) error {
	if lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lng", lng, MinLongitude, MaxLongitude)
	}
	c.lng = lng
	return nil
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
