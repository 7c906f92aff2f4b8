// Package dispatch implements the interval-by-interval dispatch engine for
// a battery energy storage system, optionally paired with co-located solar
// PV. Power allocation is an ordered list of rules applied per interval;
// state of charge is the single accumulator threaded through a sequential
// fold over the price series.
package dispatch
