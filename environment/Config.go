package environment

import "fmt"

// Config holds the discounting scheme shared by a Model and the tables
// materialized from it. Discount must lie in [0, 1]; Horizon caps the
// number of steps summed in finite-horizon computations and must be
// positive.
type Config struct {
	Discount float64
	Horizon  int
}

// NewConfig validates and returns a Config
func NewConfig(discount float64, horizon int) (Config, error) {
	c := Config{Discount: discount, Horizon: horizon}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate returns an error describing the first invalid field of c,
// or nil if c is valid
func (c Config) Validate() error {
	if c.Discount < 0.0 || c.Discount > 1.0 {
		return fmt.Errorf("discount = %v not in [0, 1]", c.Discount)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon = %d must be positive", c.Horizon)
	}
	return nil
}
