// Package policy is the single authorization gate. Every mutating entry
// point calls Check before touching the gateway; denials never reach a
// write.
package policy

import (
	"fmt"

	"github.com/rmaciel/fundiario/internal/domain"
)

// Operation names a gated action.
type Operation string

const (
	OpProjectCreate  Operation = "project.create"
	OpProjectDelete  Operation = "project.delete"
	OpStepTransition Operation = "step.transition"
	OpFinanceCreate  Operation = "finance.create"
	OpFinanceUpdate  Operation = "finance.update"
	OpFinanceDelete  Operation = "finance.delete"
	OpRecordDelete   Operation = "record.delete"
)

// adminOnly lists the operations reserved to administrators: financial
// record mutation beyond creation, and any destructive delete.
var adminOnly = map[Operation]bool{
	OpProjectDelete: true,
	OpFinanceUpdate: true,
	OpFinanceDelete: true,
	OpRecordDelete:  true,
}

// Check evaluates (role, operation, resource) and returns nil to allow.
// The resource identifier is carried for the denial message only; gating is
// by role and operation.
func Check(role domain.Role, op Operation, resource string) error {
	switch role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleOperator:
		if adminOnly[op] {
			return fmt.Errorf("role %s is not allowed to perform %s on %s", role, op, resource)
		}
		return nil
	default:
		return fmt.Errorf("unknown role %q is not allowed to perform %s on %s", role, op, resource)
	}
}
