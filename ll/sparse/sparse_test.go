package sparse

import "testing"

func TestEmptyMatrix(t *testing.T) {
	M := NewIntMatrix(3, 4, DefaultNullValue)
	if M.M() != 3 || M.N() != 4 {
		t.Errorf("expected matrix of size 3x4, is %dx%d", M.M(), M.N())
	}
	if v := M.Value(1, 1); v != DefaultNullValue {
		t.Errorf("expected empty cell to hold null value, has %d", v)
	}
	if M.ValueCount() != 0 {
		t.Errorf("expected empty matrix to have no values, has %d", M.ValueCount())
	}
}

func TestSetAndOverwrite(t *testing.T) {
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	M.Set(0, 9, 1)
	M.Set(9, 0, 2)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected (2,3) to be 4711, is %d", v)
	}
	M.Set(2, 3, 42)
	if v := M.Value(2, 3); v != 42 {
		t.Errorf("expected (2,3) to be overwritten with 42, is %d", v)
	}
	if M.ValueCount() != 3 {
		t.Errorf("expected 3 values, have %d", M.ValueCount())
	}
	if s := M.String(); s != "{(0,9)=1 (2,3)=42 (9,0)=2}" {
		t.Errorf("expected triplets in row-major order, have %s", s)
	}
}

func TestRowIteration(t *testing.T) {
	M := NewIntMatrix(3, 5, -1)
	M.Set(1, 4, 14)
	M.Set(0, 2, 2)
	M.Set(1, 0, 10)
	M.Set(2, 1, 21)
	M.Set(1, 2, 12)
	var cols []int
	var vals []int32
	M.Row(1, func(j int, v int32) {
		cols = append(cols, j)
		vals = append(vals, v)
	})
	if len(cols) != 3 || cols[0] != 0 || cols[1] != 2 || cols[2] != 4 {
		t.Errorf("expected row 1 to have columns [0 2 4], has %v", cols)
	}
	if vals[0] != 10 || vals[1] != 12 || vals[2] != 14 {
		t.Errorf("expected row 1 to have values [10 12 14], has %v", vals)
	}
	cnt := 0
	M.Each(func(i, j int, v int32) { cnt++ })
	if cnt != 5 {
		t.Errorf("expected Each to visit 5 values, visited %d", cnt)
	}
}

func TestSetOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Set outside of matrix to panic")
		}
	}()
	M := NewIntMatrix(2, 2, -1)
	M.Set(2, 0, 1)
}
