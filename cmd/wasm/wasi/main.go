//go:build wasip1

// Command gocalc-wasm-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "expression": "<informal math text>" }
//	stdout: { "result": <number>, "normalized": "<canonical form>" }  on success
//	        { "error": "<message>", "code": "<error code>" }          on failure (exit code 1)
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o gocalc.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"expression":"2(3+1)^2"}' | wasmtime gocalc.wasm
package main

import (
	"encoding/json"
	"os"

	"github.com/acarlucci/gocalc"
	"github.com/acarlucci/gocalc/pkg/types"
)

type request struct {
	Expression string `json:"expression"`
}

type response struct {
	// Result is a pointer so a result of 0 still serializes.
	Result     *float64 `json:"result,omitempty"`
	Normalized string   `json:"normalized,omitempty"`
	Error      string   `json:"error,omitempty"`
	Code       string   `json:"code,omitempty"`
}

func writeResponse(r response, exitCode int) {
	_ = json.NewEncoder(os.Stdout).Encode(r)
	os.Exit(exitCode)
}

func main() {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(response{Error: "invalid request JSON: " + err.Error()}, 1)
	}

	normalized := gocalc.Normalize(req.Expression)
	result, err := gocalc.Eval(normalized)
	if err != nil {
		writeResponse(response{
			Error:      err.Error(),
			Code:       string(types.CodeOf(err)),
			Normalized: normalized,
		}, 1)
	}

	writeResponse(response{Result: &result, Normalized: normalized}, 0)
}
