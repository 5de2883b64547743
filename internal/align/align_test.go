package align

import "testing"

func TestUp(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 0},
		{1, 8},
		{7, 8},
		{8, 8},
		{9, 16},
		{15, 16},
		{16, 16},
		{1000, 1000},
		{1001, 1008},
	}
	for _, tc := range cases {
		if got := Up(tc.in); got != tc.want {
			t.Errorf("Up(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
