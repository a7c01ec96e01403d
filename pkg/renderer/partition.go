package renderer

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// RowsForWorker returns the rows worker renders: worker, worker+threads, ...
func RowsForWorker(height, threads, worker int) []int {
	if threads <= 0 || worker < 0 || worker >= threads {
		return nil
	}

	rows := make([]int, 0, height/threads+1)
	for row := worker; row < height; row += threads {
		rows = append(rows, row)
	}
	return rows
}

// Partition splits height rows into one interleaved stripe per worker. Every
// row belongs to exactly one stripe.
func Partition(height, threads int) ([][]int, error) {
	if threads <= 0 || height <= 0 || height%threads != 0 {
		return nil, errors.New("thread count must divide the image height").
			WithType(ErrTypeInvalidConfig).
			WithTag("height", height).
			WithTag("threads", threads)
	}

	stripes := make([][]int, threads)
	for w := range stripes {
		stripes[w] = RowsForWorker(height, threads, w)
	}
	return stripes, nil
}
