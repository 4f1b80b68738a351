// Package application provides application initialization and dependency wiring.
// It encapsulates the creation of result storage, handlers, routers and the HTTP
// server for the service mode, and the load-run-report pipeline for experiment
// runs, keeping the main package focused on CLI parsing and orchestration.
package application
