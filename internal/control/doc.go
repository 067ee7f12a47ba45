// Package control provides aimers: policies that turn a game state into the
// input for the next frame.
//
//   - [None]: never fires
//   - [Random]: fires at a random upward angle
//   - [Greedy]: aims at the most promising bubble of the loaded colour
//   - [Manual]: replays input set by a front end
//
// # Usage
//
//	aimer := control.NewGreedy(0.02, seed)
//	s := sim.New(rules, aimer)
//	// Aimer.Compute is called every frame
package control
