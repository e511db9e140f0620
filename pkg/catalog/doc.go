/*
Package catalog holds the immutable question catalog of the incorporation chat.

A Catalog is built once from a Definition (the built-in Default, or a YAML/JSON
file via LoadFile), validated for integrity, and then shared read-only by every
session. Lookups of unknown question ids fail loudly with domain.ErrUnknownQuestion.
*/
package catalog
