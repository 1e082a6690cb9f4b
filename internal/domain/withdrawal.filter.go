package domain

// WithdrawalFilter narrows a withdrawal listing. A zero UserID means all
// users (admin view); a nil Status means any status.
type WithdrawalFilter struct {
	UserID string
	Status *WithdrawalStatus
	Limit  int
	Offset int
}
