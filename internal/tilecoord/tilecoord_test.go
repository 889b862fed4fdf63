package tilecoord

import "testing"

func TestParent_FloorDivision(t *testing.T) {
	tests := []struct {
		name    string
		t       Tile
		wantX   int32
		wantY   int32
		wantZ   int32
	}{
		{"positive even", Tile{"nauvis", 20, 4, 6}, 2, 3, 19},
		{"positive odd", Tile{"nauvis", 20, 5, 7}, 2, 3, 19},
		{"negative one", Tile{"nauvis", 20, -1, -1}, -1, -1, 19},
		{"negative two", Tile{"nauvis", 20, -2, -2}, -1, -1, 19},
		{"negative three", Tile{"nauvis", 20, -3, -3}, -2, -2, 19},
		{"zero", Tile{"nauvis", 20, 0, 0}, 0, 0, 19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parent(tt.t)
			if p.X != tt.wantX || p.Y != tt.wantY || p.Zoom != tt.wantZ {
				t.Errorf("Parent(%+v) = %+v, want (z=%d,x=%d,y=%d)", tt.t, p, tt.wantZ, tt.wantX, tt.wantY)
			}
			if p.Surface != tt.t.Surface {
				t.Errorf("Parent surface = %q, want %q", p.Surface, tt.t.Surface)
			}
		})
	}
}

func TestParent_FirstChild_RoundTrip(t *testing.T) {
	tiles := []Tile{
		{"nauvis", 10, 0, 0},
		{"nauvis", 10, -5, 3},
		{"nauvis", 10, 7, -9},
		{"factory", 0, 0, 0},
	}
	for _, tile := range tiles {
		fc := FirstChild(tile)
		if got := Parent(fc); got != tile {
			t.Errorf("Parent(FirstChild(%+v)) = %+v, want %+v", tile, got, tile)
		}
	}
}

func TestChildren_Order(t *testing.T) {
	parent := Tile{"nauvis", 5, 3, -2}
	children := Children(parent)

	want := [4]Tile{
		{"nauvis", 6, 6, -4},
		{"nauvis", 6, 7, -4},
		{"nauvis", 6, 6, -3},
		{"nauvis", 6, 7, -3},
	}
	if children != want {
		t.Errorf("Children(%+v) = %+v, want %+v", parent, children, want)
	}
}

func TestChildren_AllHaveSameParent(t *testing.T) {
	parent := Tile{"nauvis", 8, -3, 4}
	for _, c := range Children(parent) {
		if got := Parent(c); got != parent {
			t.Errorf("Parent(%+v) = %+v, want %+v", c, got, parent)
		}
	}
}

func TestChildren_PairwiseDistinct(t *testing.T) {
	children := Children(Tile{"nauvis", 1, 0, 0})
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if children[i] == children[j] {
				t.Errorf("children[%d] == children[%d] == %+v", i, j, children[i])
			}
		}
	}
}

func TestFloorDiv2(t *testing.T) {
	tests := []struct {
		v    int32
		want int32
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 1}, {-1, -1}, {-2, -1}, {-3, -2}, {-4, -2},
	}
	for _, tt := range tests {
		if got := floorDiv2(tt.v); got != tt.want {
			t.Errorf("floorDiv2(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
