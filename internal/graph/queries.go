package graph

import (
	"context"
	"errors"
	"fmt"

	"adboard/internal/repository"
)

func pageFromInput(in listPageInput) repository.Page {
	return repository.Page{
		Limit:    in.Limit,
		Offset:   in.Offset,
		SortBy:   in.SortBy,
		SortDesc: in.SortDesc,
	}
}

func resolveUsers(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in listPageInput
	if err := decodeInput(vars, &in); err != nil {
		return nil, fmt.Errorf("users input: %w", err)
	}

	users, err := scope.Users.List(ctx, pageFromInput(in))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	views := make([]UserPayload, len(users))
	for i := range users {
		views[i] = *userToPayload(&users[i])
	}
	return views, nil
}

func resolveUserByID(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in idInput
	if err := decodeInput(vars, &in); err != nil {
		return nil, fmt.Errorf("userById input: %w", err)
	}

	user, err := scope.Users.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Absent user is a null result, not a fault.
			return (*UserPayload)(nil), nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return userToPayload(user), nil
}

func resolveListings(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in listingsInput
	if err := decodeInput(vars, &in); err != nil {
		return nil, fmt.Errorf("listings input: %w", err)
	}

	filter := repository.ListingFilter{
		UserID:        in.UserID,
		ListingTypeID: in.ListingTypeID,
		MaxPrice:      in.MaxPrice,
	}
	listings, err := scope.Listings.ListListings(ctx, filter, pageFromInput(in.listPageInput))
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	views := make([]ListingView, len(listings))
	for i := range listings {
		views[i] = *listingToView(&listings[i])
	}
	return views, nil
}

func resolveOrdersByUser(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in listPageInput
	if err := decodeInput(vars, &in); err != nil {
		return nil, fmt.Errorf("ordersByUser input: %w", err)
	}

	orders, err := scope.Orders.ListByUser(ctx, callerID(ctx), pageFromInput(in))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	views := make([]OrderView, len(orders))
	for i := range orders {
		views[i] = *orderToView(&orders[i])
	}
	return views, nil
}

func resolvePlatforms(ctx context.Context, scope *Scope, _ Variables) (any, error) {
	platforms, err := scope.Platforms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}

	views := make([]PlatformView, len(platforms))
	for i, p := range platforms {
		views[i] = PlatformView{ID: p.ID, Name: p.Name}
	}
	return views, nil
}

func resolveListingTypes(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in platformInput
	if err := decodeInput(vars, &in); err != nil {
		return nil, fmt.Errorf("listingTypes input: %w", err)
	}

	types, err := scope.Types.ListByPlatform(ctx, in.PlatformID)
	if err != nil {
		return nil, fmt.Errorf("list listing types: %w", err)
	}

	views := make([]ListingTypeView, len(types))
	for i, lt := range types {
		views[i] = ListingTypeView{ID: lt.ID, Name: lt.Name, PlatformID: lt.PlatformID}
	}
	return views, nil
}

func resolveConnections(ctx context.Context, scope *Scope, _ Variables) (any, error) {
	conns, err := scope.Connections.ListByUser(ctx, callerID(ctx))
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	views := make([]ConnectionView, len(conns))
	for i := range conns {
		views[i] = *connectionToView(&conns[i])
	}
	return views, nil
}
