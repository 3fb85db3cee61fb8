package flux

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-stellar/internal/testutil"
)

func makeBenchFlux(n int) []float64 {
	return testutil.Absorption(testutil.Linspace(400, 700, n),
		testutil.Line{Center: 486.1, Depth: 0.6, Sigma: 1.5},
		testutil.Line{Center: 656.3, Depth: 0.7, Sigma: 2})
}

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{1024, 16384, 65536} {
		f := makeBenchFlux(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for range b.N {
				Calculate(f)
			}
		})
	}
}

func BenchmarkDERSNR(b *testing.B) {
	for _, n := range []int{1024, 16384, 65536} {
		f := makeBenchFlux(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()

			for range b.N {
				DERSNR(f)
			}
		})
	}
}
