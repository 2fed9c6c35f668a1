// Package signals generates synthetic data series for exercising graphs.
package signals

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

type Unit uint8

func (u Unit) String() string {
	switch u {
	case Joules:
		return "J"
	case Watts:
		return "W"
	case Amps:
		return "A"
	case Volts:
		return "V"
	default:
		return "?"
	}
}

const (
	Joules Unit = iota
	Watts
	Amps
	Volts
	Unknown
)

// Signal produces one value per key. Keys passed to Read never decrease.
type Signal interface {
	Name() string
	Unit() Unit
	Read(key float64) float64
}

// Sine oscillates around Offset.
type Sine struct {
	Label     string
	Units     Unit
	Amplitude float64
	// Period is in key units.
	Period float64
	Phase  float64
	Offset float64
}

func (s *Sine) Name() string { return s.Label }
func (s *Sine) Unit() Unit   { return s.Units }

func (s *Sine) Read(key float64) float64 {
	return s.Offset + s.Amplitude*math.Sin(2*math.Pi*key/s.Period+s.Phase)
}

// RandomWalk moves by a uniformly distributed step on every read, never
// dropping below Floor.
type RandomWalk struct {
	Label string
	Units Unit
	Step  float64
	Floor float64
	value float64
	rng   *rand.Rand
}

func NewRandomWalk(label string, units Unit, start, step float64, seed uint64) *RandomWalk {
	return &RandomWalk{
		Label: label,
		Units: units,
		Step:  step,
		Floor: math.Inf(-1),
		value: start,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (w *RandomWalk) Name() string { return w.Label }
func (w *RandomWalk) Unit() Unit   { return w.Units }

func (w *RandomWalk) Read(float64) float64 {
	w.value = max(w.Floor, w.value+(w.rng.Float64()*2-1)*w.Step)
	return w.value
}

// Spikes reads Base except on every Every-th read, which reads Height.
type Spikes struct {
	Label  string
	Units  Unit
	Every  int
	Base   float64
	Height float64
	reads  int
}

func (s *Spikes) Name() string { return s.Label }
func (s *Spikes) Unit() Unit   { return s.Units }

func (s *Spikes) Read(float64) float64 {
	s.reads++
	if s.Every > 0 && s.reads%s.Every == 0 {
		return s.Height
	}
	return s.Base
}

// Gappy reads NaN instead of the wrapped signal for Length reads out of
// every Every, leaving gaps in the plotted line.
type Gappy struct {
	Signal
	Every  int
	Length int
	reads  int
}

func (g *Gappy) Name() string { return "gappy " + g.Signal.Name() }

func (g *Gappy) Read(key float64) float64 {
	v := g.Signal.Read(key)
	g.reads++
	if g.Every > 0 && g.reads%g.Every < g.Length {
		return math.NaN()
	}
	return v
}

// Integral accumulates the wrapped signal over the keys it is read at,
// using the value of each read for the interval that precedes it. Gaps
// contribute nothing.
type Integral struct {
	Signal
	started bool
	last    float64
	total   float64
}

func (i *Integral) Name() string { return "integrated " + i.Signal.Name() }

func (i *Integral) Unit() Unit {
	if i.Signal.Unit() == Watts {
		return Joules
	}
	return Unknown
}

func (i *Integral) Read(key float64) float64 {
	v := i.Signal.Read(key)
	if i.started && !math.IsNaN(v) {
		i.total += v * (key - i.last)
	}
	i.started = true
	i.last = key
	return i.total
}

// Kinds lists the signal kinds accepted by New.
var Kinds = []string{"sine", "walk", "spikes", "gappy", "integral"}

// New returns a signal of the named kind. The index distinguishes several
// signals of one kind, and seed makes random signals reproducible.
func New(kind string, index int, seed uint64) (Signal, error) {
	n := float64(index + 1)
	switch strings.ToLower(kind) {
	case "sine":
		return &Sine{
			Label:     fmt.Sprintf("sine %d", index),
			Units:     Volts,
			Amplitude: n,
			Period:    10 * n,
			Phase:     n,
		}, nil
	case "walk":
		w := NewRandomWalk(fmt.Sprintf("walk %d", index), Watts, 10*n, n, seed+uint64(index))
		w.Floor = 0
		return w, nil
	case "spikes":
		return &Spikes{
			Label:  fmt.Sprintf("spikes %d", index),
			Units:  Amps,
			Every:  7 + index,
			Base:   1,
			Height: 10 * n,
		}, nil
	case "gappy":
		inner, _ := New("sine", index, seed)
		return &Gappy{Signal: inner, Every: 20, Length: 3}, nil
	case "integral":
		inner, _ := New("walk", index, seed)
		return &Integral{Signal: inner}, nil
	default:
		return nil, fmt.Errorf("unknown signal kind %q (want one of %s)", kind, strings.Join(Kinds, ", "))
	}
}

// Parse builds signals from a comma-separated list of kinds.
func Parse(list string, seed uint64) ([]Signal, error) {
	var out []Signal
	counts := map[string]int{}
	for _, kind := range strings.Split(list, ",") {
		kind = strings.ToLower(strings.TrimSpace(kind))
		if kind == "" {
			continue
		}
		s, err := New(kind, counts[kind], seed)
		if err != nil {
			return nil, err
		}
		counts[kind]++
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no signals in %q", list)
	}
	return out, nil
}
