// Package keycodec holds the small value helpers used by the storage facade
// and the cookie mechanism: key validation, best-effort JSON decoding with an
// explicit parsed/raw result, wire serialization, plain-object detection,
// value cloning, cookie date arithmetic and URI component encoding.
package keycodec
