package domain

type StepStatus string

const (
	StepNotStarted      StepStatus = "NOT_STARTED"
	StepInProgress      StepStatus = "IN_PROGRESS"
	StepWaitingApproval StepStatus = "WAITING_APPROVAL"
	StepCompleted       StepStatus = "COMPLETED"
)

// ValidStepStatuses is the closed set of accepted step statuses.
var ValidStepStatuses = map[StepStatus]bool{
	StepNotStarted:      true,
	StepInProgress:      true,
	StepWaitingApproval: true,
	StepCompleted:       true,
}

type TransactionType string

const (
	TransactionIncome   TransactionType = "INCOME"
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionTransfer TransactionType = "TRANSFER"
)

type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "PENDING"
	TransactionPaid     TransactionStatus = "PAID"
	TransactionOverdue  TransactionStatus = "OVERDUE"
	TransactionCanceled TransactionStatus = "CANCELED"
)

type PaymentMethod string

const (
	PaymentPix      PaymentMethod = "pix"
	PaymentBoleto   PaymentMethod = "boleto"
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "bank_transfer"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)
