// Package output renders CLI results as a table, JSON or YAML.
//
// Results that know their tabular shape implement Tabular; maps and plain
// values get a generic rendering.
package output
