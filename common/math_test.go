package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-5

func assertMatrix(t *testing.T, want, got [16]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tolerance, "element %d", i)
	}
}

func TestMul4Identity(t *testing.T) {
	id := Identity4()
	m := [16]float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

	var out [16]float32
	Mul4(out[:], id[:], m[:])
	assertMatrix(t, m, out)

	Mul4(out[:], m[:], id[:])
	assertMatrix(t, m, out)
}

func TestMul4Translation(t *testing.T) {
	translate := Identity4()
	translate[12], translate[13], translate[14] = 1, 2, 3
	scale := Identity4()
	scale[0], scale[5], scale[10] = 2, 2, 2

	var ts [16]float32
	Mul4(ts[:], translate[:], scale[:])

	p := MulVec4(ts, [4]float32{1, 1, 1, 1})
	assert.Equal(t, [4]float32{3, 4, 5, 1}, p)
}

func TestMul4Aliasing(t *testing.T) {
	m := Identity4()
	m[12] = 4
	Mul4(m[:], m[:], m[:])
	assert.Equal(t, float32(8), m[12])
}

func TestPerspective(t *testing.T) {
	var out [16]float32
	Perspective(out[:], DegToRad(90), 640.0/480.0, 0.1, 1000)

	assert.InDelta(t, 0.75, out[0], tolerance)
	assert.InDelta(t, 1.0, out[5], tolerance)
	assert.InDelta(t, 1000/(0.1-1000), out[10], tolerance)
	assert.Equal(t, float32(-1), out[11])
	assert.InDelta(t, 0.1*1000/(0.1-1000), out[14], tolerance)
	assert.Equal(t, float32(0), out[15])

	near := MulVec4(out, [4]float32{0, 0, -0.1, 1})
	assert.InDelta(t, 0, near[2]/near[3], tolerance)
	far := MulVec4(out, [4]float32{0, 0, -1000, 1})
	assert.InDelta(t, 1, far[2]/far[3], tolerance)
}

func TestVectorHelpers(t *testing.T) {
	x := [3]float32{1, 0, 0}
	y := [3]float32{0, 1, 0}

	assert.Equal(t, [3]float32{0, 0, 1}, Cross3(x, y))
	assert.Equal(t, float32(0), Dot3(x, y))

	n := Normalize3([3]float32{3, 0, 4})
	assert.InDelta(t, 1, math32.Sqrt(Dot3(n, n)), tolerance)
	assert.Equal(t, [3]float32{}, Normalize3([3]float32{}))
	assert.InDelta(t, math32.Pi/2, DegToRad(90), tolerance)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]uint16{}))
	assert.Equal(t, []byte{1, 0, 2, 0}, SliceToBytes([]uint16{1, 2}))
}
