// Package analytics derives streaks, completion statistics and calendar views
// from a habit and its check-ins.
//
// Every function here is pure: callers load a consistent snapshot of habits and
// check-ins and pass "today" explicitly as a calendar date. Nothing in this
// package reads the clock or touches storage.
package analytics
