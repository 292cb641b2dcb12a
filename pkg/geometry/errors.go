package geometry

import "errors"

var (
	ErrEmptyBVH      = errors.New("geometry: cannot build a BVH without objects")
	ErrNoBoundingBox = errors.New("geometry: object has no bounding box")
)
