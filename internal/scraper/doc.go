// Package scraper provides HTTP fetching and HTML parsing for the promiedos.com.ar results page.
//
// The scraper fetches the public results page and extracts every league section with its
// fixture rows: both team names, their results when published, and the kickoff time or
// live status. All markup coupling lives in a selector table (selectors.yaml) so a layout
// change on the site is a data change rather than a code change. Clock times are
// normalized to absolute instants in the Argentina time zone.
package scraper
