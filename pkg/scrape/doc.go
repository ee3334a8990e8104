// Package scrape extracts company lists from saved HTML pages into tables.
//
// What to extract is described by a Profile: an item selector, an optional
// container that scopes it, and one selector per output column. Profiles are
// YAML files embedded in the binary:
//
//	name: ranking
//	container: tbody
//	item: tr.company
//	fields:
//	  - column: Rank
//	    selector: td.rank div.first-line
//	    default: N/A
//	  - column: Company Name
//	    selector: td.name a
//	    required: true
//
// The resulting sheet.Table is written with sheet.Save.
package scrape
