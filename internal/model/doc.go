// Package model defines the domain types shared across the shipit CLI:
// identity profiles and match rules, export outcomes, and the error/exit
// code machinery used to translate failures into process exit codes.
package model
