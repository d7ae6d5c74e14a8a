package workflow

import "sync"

const DefaultBatteryCapacityKwh = 5.0

// ChargingCalculator derives kWh charged from the battery percentages while
// auto-calculation is on. Setting kWh by hand turns auto-calculation off for
// the rest of the session.
type ChargingCalculator struct {
	mu       sync.Mutex
	capacity float64
	start    float64
	end      float64
	kwh      float64
	auto     bool
}

// NewChargingCalculator uses DefaultBatteryCapacityKwh when capacityKwh is not positive.
func NewChargingCalculator(capacityKwh float64) *ChargingCalculator {
	if capacityKwh <= 0 {
		capacityKwh = DefaultBatteryCapacityKwh
	}
	return &ChargingCalculator{capacity: capacityKwh, auto: true}
}

func (c *ChargingCalculator) SetStart(percent float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = percent
	c.recalc()
	return c.kwh
}

func (c *ChargingCalculator) SetEnd(percent float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.end = percent
	c.recalc()
	return c.kwh
}

// SetKwh records a manual value and disables auto-calculation permanently.
func (c *ChargingCalculator) SetKwh(kwh float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auto = false
	c.kwh = kwh
}

func (c *ChargingCalculator) Kwh() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kwh
}

func (c *ChargingCalculator) Auto() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auto
}

func (c *ChargingCalculator) recalc() {
	if !c.auto {
		return
	}
	if c.end > c.start {
		c.kwh = (c.end - c.start) / 100 * c.capacity
		return
	}
	c.kwh = 0
}
