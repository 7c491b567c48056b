// Package aassert provides assertions on relationships between entities
// for use with the normal Go testing system.
//
// The package encourages you to use the stretchr/testify/assert package
// and follows its design decisions as close as possible:
// every assertion returns a bool indicating whether it was successful.
//
// # Example
//
//	s.Add(ctx, book, "authors", author)
//	aassert.Linked(t, book, "authors", author, "books")
package aassert
