package billingaddress

const (
	EventBillingAddressCreated = "BillingAddressCreated"
	EventBillingAddressUpdated = "BillingAddressUpdated"
	EventBillingAddressDeleted = "BillingAddressDeleted"
)

type BillingAddressCreated struct {
	Address Address `json:"address"`
}

type BillingAddressUpdated struct {
	Patch Patch `json:"patch"`
}

type BillingAddressDeleted struct{}
