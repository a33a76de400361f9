// Package stagelib is the query facade over the built stage catalog and the
// private environment pool. Every exported method is safe for concurrent use
// once the service is constructed.
package stagelib
