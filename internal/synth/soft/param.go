package soft

// param holds one automation segment: the value is v0 until t0, moves
// linearly to v1 at t1 and stays there.
type param struct {
	ctx    *Context
	t0, v0 float64
	t1, v1 float64
}

func newParam(c *Context, v float64) *param {
	return &param{ctx: c, v0: v, v1: v}
}

func (p *param) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return p.at(p.ctx.now())
}

func (p *param) SetValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.t0, p.v0, p.t1, p.v1 = t, v, t, v
}

func (p *param) LinearRampToValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.t0, p.v0 = p.t1, p.v1
	p.t1, p.v1 = t, v
}

// at evaluates the segment at t. Caller holds ctx.mu.
func (p *param) at(t float64) float64 {
	switch {
	case t >= p.t1:
		return p.v1
	case t <= p.t0:
		return p.v0
	}
	return p.v0 + (p.v1-p.v0)*(t-p.t0)/(p.t1-p.t0)
}
