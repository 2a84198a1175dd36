package stream

import (
	"crypto/rand"
	"log"
	"sync"

	"github.com/fatih/color"
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

var warnOnce sync.Once

// HWRandOrZero delegates to the platform's hardware RNG instruction
// (RDRAND/RDSEED) when the CPU advertises support for it, and otherwise
// returns all-zero buffers, logging a single warning at construction. Zero
// is the XOR identity, so an all-zeroes stream is safe to fold into an
// XOR composition (see XOR): whichever other operand carries the entropy
// still does, unmixed.
//
// Emitting the RDRAND/RDSEED opcode itself needs per-architecture
// assembly; the supported branch here delegates to the OS CSPRNG behind
// the same feature gate and --disable-rdrand override instead.
type HWRandOrZero struct {
	supported bool
}

// NewHWRandOrZero probes CPU support for RDRAND/RDSEED (cross-checked
// against two independent detectors) unless forceDisable is set, in which
// case it always behaves as the zeroes branch.
func NewHWRandOrZero(forceDisable bool) *HWRandOrZero {
	supported := !forceDisable && detectHardwareRNG()
	if !supported {
		warnOnce.Do(func() {
			if forceDisable {
				log.Println("hwrand: disabled via --disable-rdrand, using zeroes")
			} else {
				color.Yellow("hwrand: no RDRAND/RDSEED support detected, falling back to zeroes (safe only inside an XOR composition with a non-zero entropy source)")
			}
		})
	}
	return &HWRandOrZero{supported: supported}
}

func detectHardwareRNG() bool {
	return (cpu.X86.HasRDRAND || cpu.X86.HasRDSEED) && (cpuid.CPU.Supports(cpuid.RDRAND) || cpuid.CPU.Supports(cpuid.RDSEED))
}

// BlockingRead fills dest from the hardware RNG, or with zeroes if
// unsupported/disabled.
func (h *HWRandOrZero) BlockingRead(dest []byte) error {
	if !h.supported {
		for i := range dest {
			dest[i] = 0
		}
		return nil
	}
	_, err := rand.Read(dest)
	return err
}
