// Package corobus implements a coroutine channel bus: a collection of
// named, bounded, FIFO channels of uint32 values multiplexed under stable
// integer handles.
//
// A Bus holds zero or more open Channels. Open returns the lowest free
// handle and Close frees it for reuse. Send/Recv are the blocking FIFO
// operations; TrySend/TryRecv are their non-blocking counterparts, and
// Broadcast/TryBroadcast apply a value to every currently open channel as
// a single atomic step. SendBatch/RecvBatch transfer more than one value
// per call without splitting a request across a suspension.
//
// Every operation returns ErrNoChannel for an invalid, free, or closed
// handle. Once a channel is closed, every subsequent operation on its
// handle returns ErrNoChannel, including to goroutines already parked on
// it.
//
// Unlike the cooperative scheduler this package is modeled on (see
// original_source/1/corobus.c, where a single OS thread runs all
// coroutines and no locking is required), Go goroutines are preemptive.
// Each Channel therefore carries its own mutex, and Bus itself holds one
// for the handle table.
package corobus
