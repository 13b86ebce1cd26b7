package domain

import "time"

type AccountType string

const (
	AccountTypeBank         AccountType = "bank"
	AccountTypeUPI          AccountType = "upi"
	AccountTypeCash         AccountType = "cash"
	AccountTypeCardTerminal AccountType = "card_terminal"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// PaymentAccount is a named money pool. OpeningBalance is fixed at creation;
// CurrentBalance moves with every payment applied against the account and has
// no enforced floor — outbound purchase payments may drive it negative.
type PaymentAccount struct {
	ID             int32         `json:"id"`
	Name           string        `json:"name"`
	AccountType    AccountType   `json:"account_type"`
	AccountNumber  string        `json:"account_number,omitempty"`
	BankName       string        `json:"bank_name,omitempty"`
	IFSCCode       string        `json:"ifsc_code,omitempty"`
	UPIID          string        `json:"upi_id,omitempty"`
	OpeningBalance float64       `json:"opening_balance"`
	CurrentBalance float64       `json:"current_balance"`
	Status         AccountStatus `json:"status"`
	Description    string        `json:"description,omitempty"`
	CreatedBy      *int32        `json:"created_by,omitempty"`
	CreatedOn      time.Time     `json:"created_on"`
	UpdatedOn      time.Time     `json:"updated_on"`
}

// AccountTransaction is one payment applied against an account, extracted from
// the bill payment history for the per-account trail.
type AccountTransaction struct {
	BillID      int32     `json:"bill_id"`
	BillNumber  string    `json:"bill_number"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method"`
	PaymentDate time.Time `json:"payment_date"`
	Notes       string    `json:"notes,omitempty"`
}
