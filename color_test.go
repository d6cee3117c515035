package stitch

import (
	"errors"
	"image/color"
	"testing"
)

// Verify at compile time that Color converts to the standard interface.
var _ color.Color = Color{}.Color()

func TestColorTable_Resolve(t *testing.T) {
	red := Color{R: 237, G: 23, B: 31}
	table := ColorTable{
		{Index: 0, RGB: &red},
		{Index: 1, CatalogID: 20}, // Black
		{Index: 3, CatalogID: 200},
	}

	tests := []struct {
		name    string
		index   int
		want    Color
		wantErr error
	}{
		{name: "embedded rgb", index: 0, want: red},
		{name: "catalog reference", index: 1, want: Color{0, 0, 0}},
		{name: "missing index", index: 2, wantErr: ErrUnknownColorIndex},
		{name: "catalog id out of range", index: 3, wantErr: ErrUnknownColorIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Resolve(tt.index)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resolve(%d) error = %v, want %v", tt.index, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.index, got, tt.want)
			}
		})
	}
}

func TestColorTable_Validate(t *testing.T) {
	rgb := Color{1, 2, 3}
	tests := []struct {
		name    string
		table   ColorTable
		wantErr error
	}{
		{
			name:  "valid",
			table: ColorTable{{Index: 0, RGB: &rgb}, {Index: 1, CatalogID: 4}},
		},
		{
			name:    "duplicate index",
			table:   ColorTable{{Index: 0, CatalogID: 1}, {Index: 0, CatalogID: 2}},
			wantErr: ErrInvalidProgram,
		},
		{
			name:    "neither rgb nor catalog",
			table:   ColorTable{{Index: 0}},
			wantErr: ErrUnknownColorIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.table.validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCatalogThreadByID(t *testing.T) {
	th, ok := CatalogThreadByID(5)
	if !ok {
		t.Fatal("CatalogThreadByID(5) not found")
	}
	if th.Name != "Red" || (th.RGB != Color{237, 23, 31}) {
		t.Errorf("CatalogThreadByID(5) = %+v", th)
	}

	for _, id := range []int{0, -1, 65, 1000} {
		if _, ok := CatalogThreadByID(id); ok {
			t.Errorf("CatalogThreadByID(%d) = ok, want missing", id)
		}
	}
}

func TestNearestCatalogID(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want int
	}{
		{name: "exact red", c: Color{237, 23, 31}, want: 5},
		{name: "exact yellow", c: Color{255, 255, 0}, want: 13},
		{name: "near yellow", c: Color{250, 250, 5}, want: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearestCatalogID(tt.c); got != tt.want {
				t.Errorf("nearestCatalogID(%+v) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestColorDistance(t *testing.T) {
	a := Color{10, 20, 30}
	if d := colorDistance(a, a); d != 0 {
		t.Errorf("colorDistance(a, a) = %d, want 0", d)
	}
	if d := colorDistance(Color{0, 0, 0}, Color{255, 255, 255}); d <= 0 {
		t.Errorf("colorDistance(black, white) = %d, want > 0", d)
	}
	d1 := colorDistance(Color{100, 0, 0}, Color{110, 0, 0})
	d2 := colorDistance(Color{100, 0, 0}, Color{200, 0, 0})
	if d1 >= d2 {
		t.Errorf("closer color not closer: %d >= %d", d1, d2)
	}
}
