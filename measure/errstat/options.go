package errstat

import (
	"fmt"

	"github.com/cwbudde/algo-approxmul/mul/arch"
)

const defaultWordWidth = arch.DefaultWordWidth

type config struct {
	wordWidth int
}

func defaultConfig() config {
	return config{wordWidth: defaultWordWidth}
}

// Option configures an [Engine].
type Option func(*config) error

// WithWordWidth sets the operand width in bits (2-8, default 8). It
// determines the domain size 2^N and bounds the product to 16 bits.
func WithWordWidth(bits int) Option {
	return func(cfg *config) error {
		if bits < arch.MinWordWidth || bits > arch.MaxWordWidth {
			return fmt.Errorf("errstat: word width must be in [%d, %d]: %d", arch.MinWordWidth, arch.MaxWordWidth, bits)
		}
		cfg.wordWidth = bits
		return nil
	}
}
