package linter

// DefaultGlobals lists the predefined bindings the module scope is
// seeded with (spec.md §4.5 "the fixed set of ECMAScript global names").
// The set is grounded on the global names a JavaScript host built from
// this corpus exposes at its top level
// (_examples/nooga-paserati/pkg/builtins/globals_init.go and its sibling
// *_init.go files), pared down to standard ECMAScript/web-platform
// globals and stripped of engine-specific extras (e.g. "clock",
// "Paserati") that no ECMAScript program can rely on existing.
var DefaultGlobals = []string{
	"undefined", "NaN", "Infinity", "globalThis",
	"eval", "isFinite", "isNaN", "parseFloat", "parseInt",

	"Object", "Function", "Boolean", "Symbol", "Error",
	"EvalError", "RangeError", "ReferenceError", "SyntaxError", "TypeError", "URIError",
	"Number", "BigInt", "Math", "Date", "String", "RegExp",
	"Array", "Int8Array", "Uint8Array", "Uint8ClampedArray", "Int16Array",
	"Uint16Array", "Int32Array", "Uint32Array", "BigInt64Array", "BigUint64Array",
	"Float32Array", "Float64Array", "ArrayBuffer", "SharedArrayBuffer",
	"DataView", "Atomics", "JSON", "WeakRef",
	"Map", "Set", "WeakMap", "WeakSet", "Promise", "Reflect", "Proxy",
	"Iterator",

	"console", "fetch", "Request", "Response", "Headers", "performance",
	"AbortController", "AbortSignal", "Blob", "FormData",
}
