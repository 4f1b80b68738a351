// Package experiment runs the greedy constructors over benchmark instances,
// times each run, and renders the outcome as tab-separated lines, CSV, JSON or
// a per-heuristic summary.
package experiment
