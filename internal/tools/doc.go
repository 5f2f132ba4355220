// Package tools holds the utilities the controller can call while answering
// a query: a relational database accessor and an HTTP fetcher.
package tools
