package matutils

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMaxVec(t *testing.T) {
	v := mat.NewVecDense(4, []float64{-1.0, 3.0, 3.0, 2.0})
	if got := MaxVec(v); got != 1 {
		t.Errorf("MaxVec = %d, want 1", got)
	}
}

func TestRowSums(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		0.2, 0.3, 0.5,
		1.0, 2.0, 3.0,
	})

	sums := RowSums(m)
	if sums.AtVec(0) != 1.0 || sums.AtVec(1) != 6.0 {
		t.Errorf("RowSums = %v", sums)
	}
}

func TestVecOnes(t *testing.T) {
	ones := VecOnes(3)
	for i := 0; i < ones.Len(); i++ {
		if ones.AtVec(i) != 1.0 {
			t.Errorf("entry %d is %v", i, ones.AtVec(i))
		}
	}
}

func TestFormat(t *testing.T) {
	m := mat.NewDense(1, 2, []float64{1.0, 2.0})
	if Format(m) == "" {
		t.Error("empty formatting")
	}
}
