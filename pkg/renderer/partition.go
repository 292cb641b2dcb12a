package renderer

import "fmt"

// Partition is a contiguous run of row-major pixel indices owned by one worker.
// Rows[k] and Cols[k] address the k-th pixel, with row 0 at the bottom of the image.
type Partition struct {
	ID   int
	Rows []int
	Cols []int
}

// Len returns the number of pixels in the partition
func (p Partition) Len() int {
	return len(p.Rows)
}

// SplitPixels splits the width*height pixels of an image into n contiguous groups
// in row-major order. Groups have equal size when n divides the pixel count,
// otherwise the first (pixels % n) groups hold one extra pixel. n is clamped to
// the pixel count so no group is empty.
func SplitPixels(width, height, n int) ([]Partition, error) {
	if width <= 0 || height <= 0 || width > MaxImagePixels/height {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, width, height)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: partition count %d", ErrInvalidConfig, n)
	}

	total := width * height
	n = min(n, total)
	size, extra := total/n, total%n

	partitions := make([]Partition, n)
	index := 0
	for id := range partitions {
		count := size
		if id < extra {
			count++
		}

		p := Partition{ID: id, Rows: make([]int, count), Cols: make([]int, count)}
		for k := 0; k < count; k++ {
			p.Rows[k] = index / width
			p.Cols[k] = index % width
			index++
		}
		partitions[id] = p
	}
	return partitions, nil
}
