package timeline

// Player plays a Timeline against the host frame clock.
//
// Advance is called once per tick with the elapsed seconds. OnComplete runs
// exactly once, on the tick where the timeline finishes. Stop drops a
// pending completion.
type Player struct {
	timeline   *Timeline
	elapsed    float64
	done       bool
	stopped    bool
	OnComplete func()
}

// NewPlayer creates a player positioned at the start of tl.
func NewPlayer(tl *Timeline) *Player {
	return &Player{timeline: tl}
}

// Advance moves the playhead forward by dt seconds.
func (p *Player) Advance(dt float64) {
	if p.done || p.stopped || p.timeline == nil {
		return
	}
	if dt > 0 {
		p.elapsed += dt
	}
	if p.elapsed < p.timeline.Total() {
		return
	}

	p.done = true
	if p.OnComplete != nil {
		p.OnComplete()
	}
}

// Values returns the current value of every track.
func (p *Player) Values() map[string]float64 {
	if p.timeline == nil {
		return nil
	}
	return p.timeline.Sample(p.elapsed)
}

// Elapsed returns the seconds played so far.
func (p *Player) Elapsed() float64 {
	return p.elapsed
}

// Done reports whether the timeline finished playing.
func (p *Player) Done() bool {
	return p.done
}

// Stop halts playback. A completion that has not fired yet never will.
func (p *Player) Stop() {
	p.stopped = true
}

// Stopped reports whether Stop was called.
func (p *Player) Stopped() bool {
	return p.stopped
}
