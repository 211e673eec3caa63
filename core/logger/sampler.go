package logger

import (
	"strconv"
	"strings"
	"sync"
)

// ratioSampler admits the first numerator events out of every denominator.
// A zero ratio admits everything; high-volume debug lines use it to keep
// log volume bounded without going fully silent.
type ratioSampler struct {
	mu      sync.Mutex
	allow   int
	window  int
	counter int
}

func newRatioSampler(allow, window int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(allow, window)
	return s
}

// Set reconfigures the ratio and restarts the window.
func (s *ratioSampler) Set(allow, window int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if allow <= 0 || window <= 0 {
		s.allow, s.window, s.counter = 0, 0, 0
		return
	}
	if allow > window {
		allow = window
	}
	s.allow = allow
	s.window = window
	s.counter = 0
}

// Allow reports whether the current event passes sampling.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.window <= 0 || s.allow <= 0 {
		return true
	}
	s.counter++
	if s.counter > s.window {
		s.counter = 1
	}
	return s.counter <= s.allow
}

// parseRatioSpec accepts "N/M" or a bare "M" meaning 1/M. Anything invalid
// or non-positive disables sampling.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0
	}
	if num, den, found := strings.Cut(spec, "/"); found {
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 == nil && err2 == nil {
			return n, d
		}
		return 0, 0
	}
	if v, err := strconv.Atoi(spec); err == nil && v > 0 {
		return 1, v
	}
	return 0, 0
}
