package cart

// BackingKind selects which cart representation is authoritative.
type BackingKind int

const (
	// GuestKind is the session-scoped representation held in the guest
	// store. It plays the role browser-local storage plays for the web
	// client: ephemeral and private to one session.
	GuestKind BackingKind = iota + 1
	// CustomerKind is the per-customer representation in the database, the
	// authoritative cart once the shopper signs in.
	CustomerKind
)

// Backing names exactly one cart representation. At most one backing is
// active per session at any instant; callers derive it from auth state once
// and pass it down instead of re-checking a nullable user everywhere.
type Backing struct {
	kind    BackingKind
	ownerID string
}

// GuestBacking addresses the guest cart for a session.
func GuestBacking(sessionID string) Backing {
	return Backing{kind: GuestKind, ownerID: sessionID}
}

// CustomerBacking addresses a signed-in customer's cart.
func CustomerBacking(customerID string) Backing {
	return Backing{kind: CustomerKind, ownerID: customerID}
}

func (k BackingKind) String() string {
	switch k {
	case GuestKind:
		return "guest"
	case CustomerKind:
		return "customer"
	default:
		return "unknown"
	}
}

func (b Backing) Kind() BackingKind { return b.kind }
func (b Backing) OwnerID() string   { return b.ownerID }
