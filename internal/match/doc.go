// Package match provides the data model for scraped football results.
//
// A Snapshot maps league names to the matches listed under them, in the order the
// results page shows them. Each Match carries both teams, their optional results and
// a time field that is either an RFC 3339 kickoff instant or an opaque status label
// such as "45'" or "Final". The package also normalizes raw clock times from the
// source page into absolute instants.
package match
