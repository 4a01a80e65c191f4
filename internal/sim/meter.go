package sim

// Meter is a bounded resource such as ammo, fuel or health.
// Every mutation clamps the value to [0, Max], so a meter can never hold
// a negative value or exceed its maximum.
type Meter struct {
	Value float64
	Max   float64
}

// NewMeter creates a full meter.
func NewMeter(max float64) Meter {
	if max < 0 {
		max = 0
	}
	return Meter{Value: max, Max: max}
}

// Add increases the value and returns the amount actually added.
// Negative amounts are ignored.
func (m *Meter) Add(amount float64) float64 {
	if !(amount > 0) {
		return 0
	}
	before := m.Value
	m.Value = min(m.Max, m.Value+amount)
	return m.Value - before
}

// Drain decreases the value and returns the amount actually removed.
// Negative amounts are ignored.
func (m *Meter) Drain(amount float64) float64 {
	if !(amount > 0) {
		return 0
	}
	before := m.Value
	m.Value = max(0, m.Value-amount)
	return before - m.Value
}

// Fill sets the meter to its maximum.
func (m *Meter) Fill() {
	m.Value = m.Max
}

// Empty reports whether the meter is at zero.
func (m Meter) Empty() bool {
	return m.Value <= 0
}

// Ratio returns Value/Max, or 0 for a zero-capacity meter.
func (m Meter) Ratio() float64 {
	if m.Max <= 0 {
		return 0
	}
	return m.Value / m.Max
}
