// Package browser binds the storage primitives of a browser page when the
// program runs as WebAssembly: window.localStorage, window.sessionStorage,
// document.cookie and window.name.
//
// On other platforms the package is empty.
package browser
