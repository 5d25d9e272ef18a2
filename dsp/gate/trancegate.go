package gate

// TranceGate chops interleaved stereo audio with a periodic envelope: an
// open half that holds and fades toward the floor, and a closed half that
// holds and fades back open. The floor keeps 10% of the signal so the
// gate pumps instead of muting, and MixFactor blends the whole effect
// against the dry input.
//
// A freshly constructed or deinitialized gate is bypassed and leaves
// buffers untouched.
type TranceGate struct {
	params  Parameters
	active  bool
	counter int
}

// NewTranceGate returns a bypassed gate with no parameters loaded.
func NewTranceGate() *TranceGate {
	return &TranceGate{}
}

// Initialize loads p and restarts the cycle at the fully open position.
func (g *TranceGate) Initialize(p Parameters) {
	g.params = p
	g.active = true
	g.counter = 0
}

// Deinitialize clears the loaded parameters and bypasses the gate.
func (g *TranceGate) Deinitialize() {
	g.params = Parameters{}
	g.active = false
}

// Reset restarts the cycle without touching parameters or bypass state.
func (g *TranceGate) Reset() {
	g.counter = 0
}

// Active reports whether parameters are loaded.
func (g *TranceGate) Active() bool {
	return g.active
}

// Process applies the gate to an interleaved stereo block in place.
// Both samples of a frame receive the same factor; a trailing sample
// without a partner is left untouched. The cycle position carries over
// between calls, so streaming a signal block by block matches processing
// it in one call.
//
// position is reserved for host-synchronized timing and currently unused.
func (g *TranceGate) Process(position int, block []float64) {
	if !g.active {
		return
	}

	p := g.params
	frames := len(block) / 2

	for i := 0; i < frames; i++ {
		if g.counter >= p.GateLength {
			g.counter = 0
		}

		factor := p.envelope(g.counter)
		factor = factor*(1-floorLevel) + floorLevel
		factor = factor*p.MixFactor + (1 - p.MixFactor)

		block[2*i] *= factor
		block[2*i+1] *= factor
		g.counter++
	}
}

// envelope returns the raw gate shape at a frame offset within the cycle.
// Ramps are not clamped, so hand-tuned parameter sets can overshoot
// [0, 1]. FadeIn == 0 turns a ramp into an instantaneous step.
func (p Parameters) envelope(counter int) float64 {
	if counter < p.GateMidpoint {
		if counter <= p.FadeOut {
			return 1
		}
		if p.FadeIn <= 0 {
			return 0
		}
		return 1 - float64(counter-p.FadeOut)/float64(p.FadeIn)
	}

	after := counter - p.GateMidpoint
	if after <= p.FadeOut {
		return 0
	}
	if p.FadeIn <= 0 {
		return 1
	}
	return float64(after-p.FadeOut) / float64(p.FadeIn)
}
