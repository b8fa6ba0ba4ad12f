package dnf_test

import (
	"fmt"

	"github.com/cwbudde/algo-dnf/dsp/filter/dnf"
)

func ExampleFilter_ProcessSample() {
	f, err := dnf.New(3, 4)
	if err != nil {
		panic(err)
	}

	fmt.Println("delay:", f.SignalDelaySteps())

	for _, s := range []float64{1, 0, 0, 0} {
		y, err := f.ProcessSample(s, 0)
		if err != nil {
			panic(err)
		}

		fmt.Println(y)
	}
	// Output:
	// delay: 2
	// 0
	// 0
	// 1
	// 0
}

func ExampleFilter_SetLearningRate() {
	f, err := dnf.New(4, 125, dnf.WithSampleRate(250))
	if err != nil {
		panic(err)
	}

	// let the signal delay fill before adapting
	fmt.Println(f.Frozen())

	if err := f.SetLearningRate(0.5); err != nil {
		panic(err)
	}

	fmt.Println(f.Frozen())
	// Output:
	// true
	// false
}
