// File: game/test_utils.go
package game

// ScriptedRand replays fixed draws so tests and demos can pin down every random choice.
// Ints are consumed in order (modulo n) and wrap around; Floats likewise.
type ScriptedRand struct {
	Ints   []int
	Floats []float64
	ni, nf int
}

func (r *ScriptedRand) Intn(n int) int {
	if len(r.Ints) == 0 {
		return 0
	}
	v := r.Ints[r.ni%len(r.Ints)]
	r.ni++
	if v < 0 {
		v = -v
	}
	return v % n
}

func (r *ScriptedRand) Float64() float64 {
	if len(r.Floats) == 0 {
		return 0.5
	}
	v := r.Floats[r.nf%len(r.Floats)]
	r.nf++
	return v
}

// Draws reports how many integer draws were consumed.
func (r *ScriptedRand) Draws() int { return r.ni }
