// Package dashboard holds the in-memory analytics core of the recruitment
// dashboard: filtering, aggregation, trend bucketing, pagination and the
// state reducer that ties them together.
//
// Everything here is pure. Callers pass "now" explicitly; its location is
// the time zone used for calendar math (months, week starts, day of week).
package dashboard
