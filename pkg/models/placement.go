package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/wireframe/pkg/math3d"
)

// ErrMalformedRow is returned when a placement row is not exactly four
// numeric tokens.
var ErrMalformedRow = errors.New("malformed placement row")

// IdentityRows is the textual form of the identity placement.
var IdentityRows = [4]string{
	"1 0 0 0",
	"0 1 0 0",
	"0 0 1 0",
	"0 0 0 1",
}

// ParsePlacement builds a placement matrix from four row strings, each holding
// four space-separated floats. The values are read row-major and transposed
// once into Mat4's column-major storage, so a translation written in the last
// column of the text becomes Mat4.Translation().
func ParsePlacement(rows [4]string) (math3d.Mat4, error) {
	var m math3d.Mat4
	for r, row := range rows {
		fields := strings.Fields(row)
		if len(fields) != 4 {
			return math3d.Mat4{}, fmt.Errorf("row %d: want 4 values, got %d: %w", r+1, len(fields), ErrMalformedRow)
		}
		for c, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return math3d.Mat4{}, fmt.Errorf("row %d value %d %q: %w", r+1, c+1, field, ErrMalformedRow)
			}
			m[r*4+c] = v
		}
	}
	return m.Transpose(), nil
}
