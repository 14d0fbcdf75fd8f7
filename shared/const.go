package shared

const (
	UserID     = "user_id"
	SessionKey = "session"

	RoleAdmin  = "ADMIN"
	RoleDealer = "DEALER"

	StatusActive  = "ACTIVE"
	StatusBlocked = "BLOCKED"

	AdminHome  = "/admin"
	DealerHome = "/dealer"
	LoginRoute = "/login"

	SessionCookie = "autolane_session"

	VehicleStatusAvailable = "available"
	VehicleStatusInTransit = "in_transit"
	VehicleStatusDelivered = "delivered"
	VehicleStatusInactive  = "inactive"

	InvoiceStatusOpen = "open"
	InvoiceStatusPaid = "paid"
	InvoiceStatusVoid = "void"

	TxKindTopUp          = "top_up"
	TxKindInvoicePayment = "invoice_payment"
	TxKindAdjustment     = "adjustment"
)

// HomeForRole maps a session role to its landing route. Unknown roles land
// on the dealer area, never the admin one.
func HomeForRole(role string) string {
	if role == RoleAdmin {
		return AdminHome
	}
	return DealerHome
}
