package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

var ErrInvalidParameter = errors.New("material: invalid parameter")

func validateAlbedo(albedo core.Vec3) error {
	for axis := 0; axis < 3; axis++ {
		if c := albedo.Axis(axis); !(c >= 0 && c <= 1) {
			return fmt.Errorf("%w: albedo %v outside [0,1]", ErrInvalidParameter, albedo)
		}
	}
	return nil
}

func must[T any](material T, err error) T {
	if err != nil {
		panic(err)
	}
	return material
}
