package staticmap

import "fmt"

func ExampleMap_Get() {
	m, err := New([]KV[string, int]{
		{Key: "apple", Value: 1},
		{Key: "banana", Value: 2},
		{Key: "cherry", Value: 3},
	}, StringKeyBytes[string]())
	if err != nil {
		panic(err)
	}

	v, ok := m.Get("banana")
	fmt.Println(v, ok)

	_, ok = m.Get("date")
	fmt.Println(ok)

	// Output:
	// 2 true
	// false
}

func ExampleMap_ForEach() {
	m, err := New([]KV[string, int]{
		{Key: "gamma", Value: 3},
		{Key: "alpha", Value: 1},
		{Key: "beta", Value: 2},
	}, StringKeyBytes[string]())
	if err != nil {
		panic(err)
	}

	m.ForEach(func(key string, value int) bool {
		fmt.Println(key, value)
		return true
	})

	// Output:
	// gamma 3
	// alpha 1
	// beta 2
}

func ExampleNewFromSlices() {
	keys := []string{"one", "two", "three"}
	values := []int{1, 2, 3}

	m, err := NewFromSlices(keys, values, StringKeyBytes[string]())
	if err != nil {
		panic(err)
	}

	fmt.Println(m.MustGet("two"))
	// Output: 2
}
