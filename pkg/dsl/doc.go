/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing automata.

It allows developers to define states and transitions using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful for tests,
fixtures and generated automata.

Example usage:

	package main

	import (
		"fmt"

		"github.com/aretw0/automata"
		"github.com/aretw0/automata/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.State("even").Initial().Final().
			On("1", "odd").
			Loop("0")

		b.State("odd").
			On("1", "even").
			Loop("0")

		a, err := b.Build()
		if err != nil {
			panic(err)
		}
		fmt.Println(automata.New().Simulate(a, "1001").Accepted())
	}
*/
package dsl
