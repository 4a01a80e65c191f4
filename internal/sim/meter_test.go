package sim

import (
	"math"
	"testing"
)

func TestMeterClamps(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		op      func(*Meter) float64
		want    float64
		applied float64
	}{
		{"add within range", 40, func(m *Meter) float64 { return m.Add(50) }, 90, 50},
		{"add clamps to max", 80, func(m *Meter) float64 { return m.Add(50) }, 100, 20},
		{"drain within range", 40, func(m *Meter) float64 { return m.Drain(10) }, 30, 10},
		{"drain clamps to zero", 10, func(m *Meter) float64 { return m.Drain(25) }, 0, 10},
		{"negative add ignored", 40, func(m *Meter) float64 { return m.Add(-10) }, 40, 0},
		{"negative drain ignored", 40, func(m *Meter) float64 { return m.Drain(-10) }, 40, 0},
		{"NaN ignored", 40, func(m *Meter) float64 { return m.Add(math.NaN()) }, 40, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := Meter{Value: tc.start, Max: 100}
			applied := tc.op(&m)
			if m.Value != tc.want {
				t.Errorf("Value = %v, expected %v", m.Value, tc.want)
			}
			if applied != tc.applied {
				t.Errorf("applied = %v, expected %v", applied, tc.applied)
			}
		})
	}
}

func TestMeterHelpers(t *testing.T) {
	m := NewMeter(160)
	if m.Value != 160 || m.Ratio() != 1 {
		t.Errorf("NewMeter should start full, got %+v", m)
	}

	m.Drain(200)
	if !m.Empty() {
		t.Error("meter should be empty after over-draining")
	}

	m.Fill()
	if m.Value != m.Max {
		t.Error("Fill should restore max")
	}

	if (Meter{}).Ratio() != 0 {
		t.Error("zero-capacity meter ratio should be 0")
	}
}
