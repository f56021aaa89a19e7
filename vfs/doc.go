// Package vfs implements the in-memory filesystem and descriptor table
// backing one guest invocation.
//
// A virtual file is a named byte blob in a name-to-bytes map. The host
// seeds the map with the input file before invoking the guest; files the
// guest creates become visible in the map only when their descriptor
// closes (flush on close). Descriptors 1-4 are fixed: stdout and stderr
// route to a shared log buffer, 3 and 4 are directory preopens scoping
// which virtual paths the guest may open. Dynamic descriptors start at 5.
//
// The table is reset to this baseline at the start of every invocation.
// It holds no locks; the engine serializes invocations.
package vfs
