// Package daemon provides the main orchestration for notishiftd.
// It runs the single event loop that serializes window-creation events,
// overlay poll ticks, control requests, and config hot-reload onto the
// repositioning engine.
package daemon
