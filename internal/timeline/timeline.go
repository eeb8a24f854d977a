package timeline

// Track animates one named property.
type Track struct {
	Name          string
	Keyframes     []Keyframe
	Interpolation string
}

// Timeline groups the tracks of one animation. Every track shares the same
// delay and duration.
type Timeline struct {
	Delay    float64 // 开始前的等待时间（秒）
	Duration float64 // 播放时长（秒）
	Tracks   []Track
}

// Total returns the time in seconds after which the timeline has finished.
func (tl *Timeline) Total() float64 {
	return tl.Delay + tl.Duration
}

// Progress converts elapsed seconds into normalized time.
// Returns 0 during the delay and 1 once the timeline has finished.
func (tl *Timeline) Progress(elapsed float64) float64 {
	if elapsed <= tl.Delay {
		return 0
	}
	if tl.Duration <= 0 {
		return 1
	}
	p := (elapsed - tl.Delay) / tl.Duration
	if p > 1 {
		return 1
	}
	return p
}

// Sample evaluates every track at the given elapsed time.
func (tl *Timeline) Sample(elapsed float64) map[string]float64 {
	p := tl.Progress(elapsed)
	values := make(map[string]float64, len(tl.Tracks))
	for _, track := range tl.Tracks {
		values[track.Name] = Evaluate(track.Keyframes, p, track.Interpolation)
	}
	return values
}

// Track returns the track with the given name.
func (tl *Timeline) Track(name string) (Track, bool) {
	for _, track := range tl.Tracks {
		if track.Name == name {
			return track, true
		}
	}
	return Track{}, false
}
