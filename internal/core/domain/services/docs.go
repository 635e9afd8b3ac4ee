// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the order system. It implements business
// workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - AvailabilitySettler: A domain service reconciling line items against stock availability
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
