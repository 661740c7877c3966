// Package cookie implements the storage mechanism backed by document cookies.
//
// The document exposes a single cookie string: reading it returns every
// visible cookie as "k1=v1; k2=v2", writing it merges one cookie into the
// jar. Deleting a cookie means writing it again with the same name, path and
// domain and an expiration in the past, so the mechanism keeps a metadata
// side table with the path, domain, expiration and secure flag used when
// each cookie was written.
//
// Jar is a Go implementation of the document cookie jar for environments
// without a browser.
package cookie
