package graph

import "context"

type OperationKind string

const (
	KindQuery    OperationKind = "query"
	KindMutation OperationKind = "mutation"
)

// Resolver produces the data for one operation. It must return a fully
// materialized value: nothing lazy may reach back into the scope after the
// resolver returns.
type Resolver func(ctx context.Context, scope *Scope, vars Variables) (any, error)

// Operation is one row of the static operation table.
type Operation struct {
	Name         string
	Kind         OperationKind
	RequiresAuth bool
	Resolve      Resolver
}

// Schema is the registry of operations, built once at startup from plain
// entries and immutable afterwards.
type Schema struct {
	operations map[string]Operation
}

// NewSchema builds the full operation table.
func NewSchema() *Schema {
	entries := []Operation{
		{Name: "login", Kind: KindMutation, Resolve: resolveLogin},
		{Name: "addUser", Kind: KindMutation, Resolve: resolveAddUser},
		{Name: "addListing", Kind: KindMutation, RequiresAuth: true, Resolve: resolveAddListing},
		{Name: "deleteListing", Kind: KindMutation, RequiresAuth: true, Resolve: resolveDeleteListing},
		{Name: "createListingAssetUrl", Kind: KindMutation, RequiresAuth: true, Resolve: resolveCreateListingAssetURL},
		{Name: "placeOrder", Kind: KindMutation, RequiresAuth: true, Resolve: resolvePlaceOrder},
		{Name: "updateOrderStatus", Kind: KindMutation, RequiresAuth: true, Resolve: resolveUpdateOrderStatus},
		{Name: "connectPlatform", Kind: KindMutation, RequiresAuth: true, Resolve: resolveConnectPlatform},
		{Name: "users", Kind: KindQuery, RequiresAuth: true, Resolve: resolveUsers},
		{Name: "userById", Kind: KindQuery, RequiresAuth: true, Resolve: resolveUserByID},
		{Name: "listings", Kind: KindQuery, Resolve: resolveListings},
		{Name: "ordersByUser", Kind: KindQuery, RequiresAuth: true, Resolve: resolveOrdersByUser},
		{Name: "platforms", Kind: KindQuery, Resolve: resolvePlatforms},
		{Name: "listingTypes", Kind: KindQuery, Resolve: resolveListingTypes},
		{Name: "connections", Kind: KindQuery, RequiresAuth: true, Resolve: resolveConnections},
	}

	ops := make(map[string]Operation, len(entries))
	for _, op := range entries {
		ops[op.Name] = op
	}
	return &Schema{operations: ops}
}

// Lookup returns the operation by name.
func (s *Schema) Lookup(name string) (Operation, bool) {
	op, ok := s.operations[name]
	return op, ok
}
