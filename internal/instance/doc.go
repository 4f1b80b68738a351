// Package instance reads bin packing benchmark instances. It understands the
// OR-Library binpack text format and a JSON document form, and turns both into
// packing.Instance values.
package instance
