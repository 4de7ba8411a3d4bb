package features

import (
	"fmt"
	"testing"

	"github.com/martinblech/rtaudio/dsp/core"
	"github.com/martinblech/rtaudio/internal/testutil"
)

func BenchmarkPipeline_Process(b *testing.B) {
	for _, size := range []int{256, 512, 1024} {
		b.Run(fmt.Sprintf("%d", size), func(b *testing.B) {
			p, err := NewPipeline(core.WithBlockSize(size))
			if err != nil {
				b.Fatal(err)
			}
			f := p.NewFrame()
			copy(f.Samples, testutil.DeterministicNoise(1, 0.5, size))
			b.SetBytes(int64(size * 8))
			b.ResetTimer()

			for range b.N {
				p.Process(f)
			}
		})
	}
}
