// Package resources defines the concrete record types served by depot and the
// descriptors that name their collections.
package resources

import "fmt"

// Kind describes one resource collection.
type Kind struct {
	// Collection is the collection name and URL path segment.
	Collection string
	// IDPrefix prefixes identifiers generated by the sequence strategy.
	IDPrefix string
	// Missing is the client-facing message template for unknown identifiers.
	Missing string
}

// NotFoundMessage formats the message reported for an unknown id.
func (k Kind) NotFoundMessage(id string) string {
	return fmt.Sprintf(k.Missing, id)
}

var (
	OrderKind       = Kind{Collection: "orders", IDPrefix: "todo", Missing: "Order #%s doesn't exist"}
	MeasurementKind = Kind{Collection: "measurements", IDPrefix: "uuid16-", Missing: "Measurement %s doesn't exist"}
	GoodKind        = Kind{Collection: "goods", IDPrefix: "todo", Missing: "good %s doesn't exist"}
	BuyingKind      = Kind{Collection: "buyings", IDPrefix: "uuid16-", Missing: "Buying %s doesn't exist"}
	UserKind        = Kind{Collection: "users", IDPrefix: "uuid16-", Missing: "User %s doesn't exist"}
)

// Kinds returns every resource kind in routing order.
func Kinds() []Kind {
	return []Kind{OrderKind, MeasurementKind, GoodKind, BuyingKind, UserKind}
}

// Lookup finds a kind by collection name.
func Lookup(collection string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Collection == collection {
			return k, true
		}
	}
	return Kind{}, false
}
