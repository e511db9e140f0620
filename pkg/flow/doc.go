// Package flow decides which terminal question sequence a session runs.
//
// The decision is a fixed table over the two branch questions:
//
//	company_status        = new      -> new-company sequence
//	company_status        = existing -> follow-up: incorporation_country
//	incorporation_country = uae      -> existing-UAE sequence
//	incorporation_country = other    -> existing-other-country sequence
//
// A Selector is pure. It never mutates session state; the runtime engine
// applies its Outcome.
package flow
