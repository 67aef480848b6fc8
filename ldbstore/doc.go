// Package ldbstore implements a CFR strategy profile that keeps node
// policies on disk in a LevelDB database, rather than in memory.
//
// It is substantially slower than the in-memory cfr.StrategyTable but
// survives process restarts, so long training runs can be resumed.
package ldbstore
