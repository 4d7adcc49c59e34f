// Package ecs provides ECS adapters for shatter's sequence events.
//
// The primary adapter is [NewDonburiSink], which publishes phase changes,
// caption progress and completion into a [Donburi] world as typed events.
// Subscribe to [SequenceEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	seq, err := shatter.NewWarp(w, h, cfg, shatter.WarpOptions{Sink: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
