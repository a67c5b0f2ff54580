// Package types defines the record union, configuration, and standard
// errors for the shelf catalog system.
package types
