// Package tco computes the total cost of ownership of a vehicle fleet.
//
// Capital assets (vehicles, batteries, charging infrastructure) are scheduled
// for procurement and replacement across the project horizon, annuitized over
// their useful life and discounted to the base year. Operating cost drivers
// are escalated year by year and discounted the same way. The Calculator sums
// both into a Result normalized by the distance the fleet travels.
//
// Every function in this package is pure: inputs are read-only values and no
// state survives a calculation, so independent runs may execute in parallel.
package tco
