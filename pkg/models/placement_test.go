package models

import (
	"errors"
	"testing"

	"github.com/taigrr/wireframe/pkg/math3d"
)

func TestParsePlacementIdentity(t *testing.T) {
	m, err := ParsePlacement(IdentityRows)
	if err != nil {
		t.Fatalf("ParsePlacement: %v", err)
	}
	if m != math3d.Identity() {
		t.Errorf("got %v, want identity", m)
	}
}

func TestParsePlacementTranslation(t *testing.T) {
	rows := [4]string{
		"1 0 0 5",
		"0 1 0 -6",
		"0 0 1 7.5",
		"0 0 0 1",
	}
	m, err := ParsePlacement(rows)
	if err != nil {
		t.Fatalf("ParsePlacement: %v", err)
	}
	if got := m.Translation(); got != math3d.V3(5, -6, 7.5) {
		t.Errorf("Translation = %v, want (5,-6,7.5)", got)
	}
	if got := m.MulVec3(math3d.V3(1, 1, 1)); got != math3d.V3(6, -5, 8.5) {
		t.Errorf("placement * (1,1,1) = %v, want (6,-5,8.5)", got)
	}
	// element access follows the textual row/column
	if m.Get(1, 3) != -6 {
		t.Errorf("Get(1,3) = %v, want -6", m.Get(1, 3))
	}
}

func TestParsePlacementRotation(t *testing.T) {
	// 90 degrees about Y written as text rows
	rows := [4]string{
		"0 0 1 0",
		"0 1 0 0",
		"-1 0 0 0",
		"0 0 0 1",
	}
	m, err := ParsePlacement(rows)
	if err != nil {
		t.Fatalf("ParsePlacement: %v", err)
	}
	if !m.ApproxEqual(math3d.RotateY(1.5707963267948966), 1e-12) {
		t.Errorf("got %v, want RotateY(pi/2)", m)
	}
}

func TestParsePlacementMalformed(t *testing.T) {
	tests := []struct {
		name string
		rows [4]string
	}{
		{"short row", [4]string{"1 0 0", "0 1 0 0", "0 0 1 0", "0 0 0 1"}},
		{"long row", [4]string{"1 0 0 0", "0 1 0 0 0", "0 0 1 0", "0 0 0 1"}},
		{"empty row", [4]string{"1 0 0 0", "0 1 0 0", "0 0 1 0", ""}},
		{"not a number", [4]string{"1 0 0 0", "0 1 x 0", "0 0 1 0", "0 0 0 1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePlacement(tc.rows)
			if !errors.Is(err, ErrMalformedRow) {
				t.Errorf("err = %v, want ErrMalformedRow", err)
			}
		})
	}
}
