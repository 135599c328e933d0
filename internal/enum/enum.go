package enum

// ── Staff roles (carried as strings in JWT claims) ──

const (
	UserRoleOwner   = "OWNER"
	UserRoleManager = "MANAGER"
	UserRoleCashier = "CASHIER"
	UserRoleKitchen = "KITCHEN"
	UserRoleWaiter  = "WAITER"
)

// ── Wire labels (no DB constraint) ──

const (
	AlertCashPaymentPending = "CASH_PAYMENT_PENDING"
)

const (
	PublicStatusSentToKitchen   = "SENT_TO_KITCHEN"
	PublicStatusPaymentRequired = "PAYMENT_REQUIRED"
)

const (
	IntentAddItems       = "ADD_ITEMS"
	IntentModifyQuantity = "MODIFY_QUANTITY"
	IntentRemoveItems    = "REMOVE_ITEMS"
	IntentResetOrder     = "RESET_ORDER"
	IntentNotFound       = "NOT_FOUND"
	IntentUnknown        = "UNKNOWN"
)
