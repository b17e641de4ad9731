package ledger

import "fmt"

// EntityKind identifies one of the ledger's entity collections. It is a
// closed enumeration: adding a kind requires extending every exhaustive
// switch below, which keeps dispatch over entity kinds compile-visible.
type EntityKind string

const (
	KindClient  EntityKind = "Client"
	KindProduct EntityKind = "Product"
	KindPayment EntityKind = "Payment"
)

// Kinds returns all known entity kinds in dependency order (parents first).
func Kinds() []EntityKind {
	return []EntityKind{KindClient, KindProduct, KindPayment}
}

// Valid reports whether k is a known entity kind.
func (k EntityKind) Valid() bool {
	switch k {
	case KindClient, KindProduct, KindPayment:
		return true
	default:
		return false
	}
}

// Collection returns the persistence collection name for the kind.
func (k EntityKind) Collection() string {
	switch k {
	case KindClient:
		return "clients"
	case KindProduct:
		return "products"
	case KindPayment:
		return "payments"
	default:
		panic(fmt.Sprintf("ledger: unknown entity kind %q", string(k)))
	}
}

// String implements fmt.Stringer.
func (k EntityKind) String() string {
	return string(k)
}
