package atelier

import "testing"

func TestNewDash(t *testing.T) {
	tests := []struct {
		name    string
		lengths []float64
		wantNil bool
	}{
		{"no lengths", nil, true},
		{"all zero", []float64{0, 0}, true},
		{"normal", []float64{5, 3}, false},
		{"negative folds", []float64{-5, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDash(tt.lengths...)
			if (d == nil) != tt.wantNil {
				t.Errorf("NewDash(%v) nil = %v, want %v", tt.lengths, d == nil, tt.wantNil)
			}
		})
	}

	d := NewDash(-5, 3)
	if d.Lengths[0] != 5 {
		t.Errorf("negative length folded to %v, want 5", d.Lengths[0])
	}
}

func TestDashWithOffset(t *testing.T) {
	d := NewDash(4, 4)
	d2 := d.WithOffset(2)
	if d2.Offset != 2 {
		t.Errorf("offset = %v, want 2", d2.Offset)
	}
	if d.Offset != 0 {
		t.Error("WithOffset mutated the original")
	}
	var nilDash *Dash
	if nilDash.WithOffset(1) != nil {
		t.Error("nil dash WithOffset not nil")
	}
}

func TestDashIsDashed(t *testing.T) {
	var nilDash *Dash
	if nilDash.IsDashed() {
		t.Error("nil dash reports dashed")
	}
	if !NewDash(2, 2).IsDashed() {
		t.Error("real dash reports solid")
	}
}

func TestDashOddCycleDoubles(t *testing.T) {
	d := NewDash(5)
	c := d.cycle()
	if len(c) != 2 || c[0] != 5 || c[1] != 5 {
		t.Errorf("cycle([5]) = %v, want [5 5]", c)
	}
	even := NewDash(2, 4)
	if got := even.cycle(); len(got) != 2 {
		t.Errorf("even cycle length = %d, want 2", len(got))
	}
}
