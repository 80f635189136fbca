package events

const (
	// TypeAccountCreated is emitted when a customer signs up.
	TypeAccountCreated = "loyalty.account.created"
	// TypeAccountToppedUp is emitted when a customer adds funds.
	TypeAccountToppedUp = "loyalty.account.topped_up"
	// TypePurchaseCompleted is emitted when a purchase debits an account.
	TypePurchaseCompleted = "loyalty.purchase.completed"
	// TypePurchaseRejected is emitted when a purchase is refused without
	// touching the account.
	TypePurchaseRejected = "loyalty.purchase.rejected"
)

// Purchase rejection reasons carried by PurchaseRejected.
const (
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonPriceOutOfRange   = "price_index_out_of_range"
)

// AccountCreated captures the key metadata of a freshly signed-up account.
type AccountCreated struct {
	AccountID int64
	FullName  string
	Balance   float64
}

// EventType implements the Event interface.
func (AccountCreated) EventType() string { return TypeAccountCreated }

// AccountToppedUp reports a balance top-up.
type AccountToppedUp struct {
	AccountID int64
	Amount    float64
	Balance   float64
}

// EventType implements the Event interface.
func (AccountToppedUp) EventType() string { return TypeAccountToppedUp }

// PurchaseCompleted reports a settled purchase.
type PurchaseCompleted struct {
	AccountID         int64
	Company           string
	Title             string
	ListPrice         float64
	EffectiveDiscount float64
	PricePaid         float64
	Balance           float64
}

// EventType implements the Event interface.
func (PurchaseCompleted) EventType() string { return TypePurchaseCompleted }

// PurchaseRejected reports a purchase refused on a failure path. The account
// is guaranteed untouched.
type PurchaseRejected struct {
	AccountID int64
	Title     string
	Reason    string
}

// EventType implements the Event interface.
func (PurchaseRejected) EventType() string { return TypePurchaseRejected }
