package buffer_test

import (
	"fmt"
	"os"

	"github.com/c360/ringpolicy/errors"
	"github.com/c360/ringpolicy/pkg/buffer"
)

func ExampleNew_reject() {
	ring, err := buffer.New[int](3, buffer.Reject[int]{}, buffer.NewPrinter[int](os.Stdout))
	if err != nil {
		panic(err)
	}

	for i := 0; i < 4; i++ {
		if err := ring.Push(i); errors.Is(err, errors.ErrOverflow) {
			fmt.Println("overflow on", i)
		}
	}
	for {
		if _, err := ring.Pop(); errors.Is(err, errors.ErrUnderflow) {
			fmt.Println("underflow")
			break
		}
	}

	// Output:
	// pushed 0 [1/3]
	// pushed 1 [2/3]
	// pushed 2 [3/3]
	// overflow on 3
	// popped 0 [2/3]
	// popped 1 [1/3]
	// popped 2 [0/3]
	// underflow
}

func ExampleNew_evict() {
	ring, err := buffer.New[int](3, buffer.EvictOldest[int]{}, buffer.NewPrinter[int](os.Stdout))
	if err != nil {
		panic(err)
	}

	for i := 0; i < 5; i++ {
		_ = ring.Push(i)
	}
	for i := 0; i < 3; i++ {
		_, _ = ring.Pop()
	}

	// Output:
	// pushed 0 [1/3]
	// pushed 1 [2/3]
	// pushed 2 [3/3]
	// popped 0 [2/3]
	// pushed 3 [3/3]
	// popped 1 [2/3]
	// pushed 4 [3/3]
	// popped 2 [2/3]
	// popped 3 [1/3]
	// popped 4 [0/3]
}

func ExampleRing_Take() {
	src, _ := buffer.NewRejecting[string](2)
	_ = src.Push("a")
	_ = src.Push("b")

	dst := src.Take()
	fmt.Println(dst.Len(), src.Released())

	if err := src.Push("c"); errors.Is(err, errors.ErrReleased) {
		fmt.Println("source released")
	}
	fmt.Println(dst.PopBatch(2))

	// Output:
	// 2 true
	// source released
	// [a b]
}
