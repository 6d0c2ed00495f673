package payment

import "time"

type Kind string

const (
	KindPlanPayment Kind = "plan_payment"
	KindAdjustment  Kind = "adjustment"
)

// Payment is one immutable ledger entry. Amounts are snapshots of the plan
// price at recording time; corrections are new signed adjustment entries,
// never edits.
type Payment struct {
	ID        int       `db:"id" json:"id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	PlanID    *int      `db:"plan_id" json:"plan_id,omitempty"`
	Amount    int64     `db:"amount" json:"amount"`
	Kind      Kind      `db:"kind" json:"kind"`
	Note      string    `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PaymentWithPlan struct {
	Payment
	PlanName *string `db:"plan_name" json:"plan_name,omitempty"`
}

// RenewalResult carries everything a caller needs after a plan payment:
// the ledger entry, the extended subscription, and the member contact for
// the receipt mail.
type RenewalResult struct {
	Payment         *Payment  `json:"payment"`
	MemberName      string    `json:"member_name"`
	MemberEmail     string    `json:"-"`
	PlanName        string    `json:"plan_name"`
	SubscriptionEnd time.Time `json:"subscription_end"`
}

type RecordPaymentRequest struct {
	MemberID int `json:"member_id" binding:"required"`
	PlanID   int `json:"plan_id" binding:"required"`
}

type RecordAdjustmentRequest struct {
	MemberID int    `json:"member_id" binding:"required"`
	Amount   int64  `json:"amount" binding:"required"`
	Note     string `json:"note" binding:"required"`
}

type HistoryFilter struct {
	MemberID *int
	From     *time.Time
	To       *time.Time
}
