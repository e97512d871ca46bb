// Package app assembles the dashboard server: configuration, logging,
// services, middleware chain, routes, and the run/shutdown lifecycle.
package app
