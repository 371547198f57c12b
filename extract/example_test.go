package extract_test

import (
	"fmt"
	"math"

	"github.com/cortexlab/oddball/extract"
)

func ExampleRun() {
	// A minimal session: silence, then one 128-sample trial whose
	// frequency falls halfway through.
	sig := make([]float64, 20, 148)
	for i := 0; i < 64; i++ {
		sig = append(sig, math.Cos(2*math.Pi*9*float64(i)/64))
	}
	for i := 0; i < 64; i++ {
		sig = append(sig, math.Cos(2*math.Pi*2*float64(i)/64))
	}

	res, err := extract.Run(sig,
		extract.WithSignalThreshold(0.5),
		extract.WithPeriodThreshold(64),
		extract.WithSoundDuration(128),
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Onsets, res.Directions)
	fmt.Println(res.Labels["up"], res.Labels["down"])

	// Output:
	// [20] [1]
	// 0 1
}
