// Package domain defines the key set models and contracts shared across
// transportkeys. Types live in domain/types and interfaces in
// domain/interfaces; this package re-exports both under one import.
package domain
