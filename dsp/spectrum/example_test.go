package spectrum_test

import (
	"fmt"

	"github.com/martinblech/rtaudio/dsp/spectrum"
)

func ExampleRealFFT_Magnitude() {
	f, err := spectrum.NewRealFFT(8)
	if err != nil {
		panic(err)
	}

	block := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	packed := make([]float64, f.PackedLen())
	mag := make([]float64, f.Bins())

	f.Forward(packed, block)
	f.Magnitude(mag, packed)

	for _, v := range mag {
		fmt.Printf("%.1f ", v)
	}
	fmt.Println()
	// Output:
	// 8.0 0.0 0.0 0.0 0.0
}
