// Package model defines the data structures shared across the application.
//
// The central type is Report, which accumulates everything collected while
// analyzing a single web page: fetch metadata, the parsed document tree,
// and the tag and word frequency rankings. Reports are created fresh per
// page, passed through the pipeline steps, rendered by the report writers,
// and optionally persisted by the database package.
package model
