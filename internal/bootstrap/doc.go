// Package bootstrap builds a ready-to-use proxystore from configuration.
//
// Open plays the part of a page load: it opens the four mechanisms for one
// tab, probes them and selects the default. Close persists what the tab
// keeps between runs (session items, the cookie jar) and releases the
// local store.
package bootstrap
