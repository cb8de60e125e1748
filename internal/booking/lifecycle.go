package booking

// Command is the kind of request that moves a booking between statuses.
type Command string

const (
	// CommandCancel is issued by the owning guest or by staff.
	CommandCancel Command = "cancel"
	// CommandConfirm is a staff confirmation that money was received or returned.
	CommandConfirm Command = "confirm"
)

// transitions is the complete lifecycle. A pair missing from the table is illegal.
// Cancelled and Refunded have no outgoing edges.
var transitions = map[Status]map[Status]Command{
	StatusPending: {
		StatusPaid:      CommandConfirm,
		StatusCancelled: CommandCancel,
	},
	StatusPaid: {
		StatusRefundPending: CommandCancel,
	},
	StatusRefundPending: {
		StatusRefunded: CommandConfirm,
	},
}

// CanTransition reports whether cmd may move a booking from one status to another.
func CanTransition(from, to Status, cmd Command) bool {
	c, ok := transitions[from][to]
	return ok && c == cmd
}

// CancelTarget returns the status a cancellation leads to from the given status.
// A paid booking goes to RefundPending, never straight to Cancelled.
func CancelTarget(from Status) (Status, bool) {
	for to, cmd := range transitions[from] {
		if cmd == CommandCancel {
			return to, true
		}
	}
	return "", false
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// InitialStatus is the status a new booking starts in.
// Cash is collected on arrival, so it starts Pending. A mobile transfer is
// treated as settled on submission when the policy trusts it; the reference
// the guest enters is never verified.
func InitialStatus(method PaymentMethod, trustMobilePayment bool) Status {
	if method == PaymentMobileTransfer && trustMobilePayment {
		return StatusPaid
	}
	return StatusPending
}
