package shader

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// ErrInvalidSPIRV is returned when the compiler output is not a SPIR-V module.
var ErrInvalidSPIRV = errors.New("compiler output is not SPIR-V")

// Validate compiles WGSL source to SPIR-V with naga, which parses, type checks and lowers the
// whole module. The GPU still receives the WGSL; the SPIR-V is only returned for inspection.
//
// Parameters:
//   - source: the WGSL source
//
// Returns:
//   - []byte: the SPIR-V module in little-endian words
//   - error: the compiler error, or ErrInvalidSPIRV for malformed output
func Validate(source string) ([]byte, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("wgsl validation failed: %w", err)
	}
	if len(spirv) < 4 || len(spirv)%4 != 0 || binary.LittleEndian.Uint32(spirv) != spirvMagic {
		return nil, ErrInvalidSPIRV
	}
	return spirv, nil
}
