// Package order provides domain entities and business logic for order management
// in the order service. It implements the Order aggregate root with lifecycle
// management and policy-checked state transitions.
//
// The package includes:
//   - Order: The aggregate root that owns line items, monetary totals, and lifecycle state
//   - LineItem: One product-quantity entry with its own status
//   - Status: The closed set of lifecycle states
//   - TransitionPolicy: The rule table mapping a target status to the statuses
//     legally preceding it
//
// Key business rules:
//   - Orders start in Pending at placement and progress through
//     PaymentCompleted -> PreparingProduct -> AwaitingRelease
//   - Cancellation and the refund path (RefundRequest -> Refunded) branch off
//     according to the transition table; targets absent from the table are
//     unreachable
//   - Overall status changes apply uniformly to every line item; single line
//     items may diverge only along the Canceled/RefundRequest/Refunded path
//   - Orders are never physically deleted; terminal states are logical
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
