//go:build js && wasm

// Command gocalc-wasm-js is the WebAssembly entrypoint for browser and Node.js.
//
// It exposes a global `gocalc` object with the following API:
//
//	gocalc.version()         → string
//	gocalc.normalize(text)   → string
//	gocalc.eval(source)      → number  (throws on error)
//	gocalc.compile(source)   → { eval() → number }  (throws on error)
//
// eval takes canonical source; informal input goes through normalize first:
//
//	gocalc.eval(gocalc.normalize('2(3+1)^2'))  // 32
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o gocalc.wasm ./cmd/wasm/js/
package main

import (
	"fmt"
	"syscall/js"

	"github.com/acarlucci/gocalc"
	"github.com/acarlucci/gocalc/pkg/evaluator"
)

// jsThrow panics with a JS Error so the caller receives a thrown exception.
func jsThrow(msg string) {
	js.Global().Get("Error").New(msg)
	panic(msg)
}

// jsNormalize implements gocalc.normalize(text) → string.
func jsNormalize(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		jsThrow("gocalc.normalize requires 1 argument: text (string)")
	}
	return gocalc.Normalize(args[0].String())
}

// jsEval implements gocalc.eval(source) → number.
func jsEval(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		jsThrow("gocalc.eval requires 1 argument: source (string)")
	}
	result, err := gocalc.Eval(args[0].String())
	if err != nil {
		jsThrow(fmt.Sprintf("gocalc.eval: %v", err))
	}
	return result
}

// jsCompile implements gocalc.compile(source) → { eval() → number }.
// Compilation is validated once; the handle can be evaluated repeatedly.
func jsCompile(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		jsThrow("gocalc.compile requires 1 argument: source (string)")
	}
	expr, err := gocalc.Compile(args[0].String())
	if err != nil {
		jsThrow(fmt.Sprintf("gocalc.compile: %v", err))
	}

	ev := evaluator.New()
	evalFn := js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
		r, e := ev.Eval(expr)
		if e != nil {
			jsThrow(fmt.Sprintf("compiled.eval: %v", e))
		}
		return r
	})

	return js.ValueOf(map[string]interface{}{"eval": evalFn})
}

func main() {
	api := map[string]interface{}{
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return gocalc.Version()
		}),
		"normalize": js.FuncOf(jsNormalize),
		"eval":      js.FuncOf(jsEval),
		"compile":   js.FuncOf(jsCompile),
	}
	js.Global().Set("gocalc", js.ValueOf(api))

	// Block forever; the JS event loop owns execution from here.
	select {}
}
