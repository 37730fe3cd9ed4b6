package graph

import (
	"context"
	"errors"
	"fmt"

	"adboard/internal/domain"
	"adboard/internal/repository"
	"adboard/internal/service"
)

func resolveAddListing(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in addListingInput
	if err := decodeInput(vars, &in); err != nil {
		return &ListingPayload{Errors: []ErrorDescriptor{validationError(err.Error())}}, nil
	}

	listing, err := scope.Listings.CreateListing(ctx, callerID(ctx), in.ListingTypeID, in.Price, in.Description)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ListingPayload{Errors: []ErrorDescriptor{notFoundError("Listing type does not exist.")}}, nil
		}
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return &ListingPayload{Listing: listingToView(listing)}, nil
}

func resolveDeleteListing(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in idInput
	if err := decodeInput(vars, &in); err != nil {
		return &ListingPayload{Errors: []ErrorDescriptor{validationError(err.Error())}}, nil
	}

	listing, err := scope.Listings.GetListing(ctx, in.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ListingPayload{Errors: []ErrorDescriptor{notFoundError("Listing does not exist.")}}, nil
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if listing.UserID != callerID(ctx) {
		return &ListingPayload{Errors: []ErrorDescriptor{conflictError("Only the listing owner can delete it.")}}, nil
	}

	if err := scope.Listings.DeleteListing(ctx, in.ID); err != nil {
		return nil, fmt.Errorf("delete listing: %w", err)
	}
	return &ListingPayload{Listing: listingToView(listing)}, nil
}

func resolveCreateListingAssetURL(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in assetUploadInput
	if err := decodeInput(vars, &in); err != nil {
		return &AssetUploadPayload{Errors: []ErrorDescriptor{validationError(err.Error())}}, nil
	}

	listing, err := scope.Listings.GetListing(ctx, in.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &AssetUploadPayload{Errors: []ErrorDescriptor{notFoundError("Listing does not exist.")}}, nil
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if listing.UserID != callerID(ctx) {
		return &AssetUploadPayload{Errors: []ErrorDescriptor{conflictError("Only the listing owner can attach assets.")}}, nil
	}

	url, err := scope.Listings.CreateAssetUploadURL(ctx, in.ListingID, in.Filename)
	if err != nil {
		if errors.Is(err, service.ErrStorageUnconfigured) {
			return &AssetUploadPayload{Errors: []ErrorDescriptor{conflictError("Asset storage is not configured.")}}, nil
		}
		return nil, fmt.Errorf("create upload url: %w", err)
	}
	return &AssetUploadPayload{UploadURL: url}, nil
}

func resolvePlaceOrder(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in placeOrderInput
	if err := decodeInput(vars, &in); err != nil {
		return &OrderPayload{Errors: []ErrorDescriptor{validationError(err.Error())}}, nil
	}

	order, err := scope.Orders.PlaceOrder(ctx, in.ListingID, callerID(ctx))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return &OrderPayload{Errors: []ErrorDescriptor{notFoundError("Listing does not exist.")}}, nil
		case errors.Is(err, service.ErrOwnListing):
			return &OrderPayload{Errors: []ErrorDescriptor{conflictError("You cannot order your own listing.")}}, nil
		}
		return nil, fmt.Errorf("place order: %w", err)
	}
	return &OrderPayload{Order: orderToView(order)}, nil
}

func resolveUpdateOrderStatus(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in updateOrderStatusInput
	if err := decodeInput(vars, &in); err != nil {
		return &OrderPayload{Errors: []ErrorDescriptor{validationError(err.Error())}}, nil
	}

	order, err := scope.Orders.GetOrder(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &OrderPayload{Errors: []ErrorDescriptor{notFoundError("Order does not exist.")}}, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	listing, err := scope.Listings.GetListing(ctx, order.ListingID)
	if err != nil {
		return nil, fmt.Errorf("get order listing: %w", err)
	}
	if listing.UserID != callerID(ctx) {
		return &OrderPayload{Errors: []ErrorDescriptor{conflictError("Only the listing owner can change an order's status.")}}, nil
	}

	order, err = scope.Orders.UpdateStatus(ctx, in.OrderID, domain.OrderStatus(in.Status))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return &OrderPayload{Errors: []ErrorDescriptor{notFoundError("Order does not exist.")}}, nil
		case errors.Is(err, service.ErrInvalidTransition):
			return &OrderPayload{Errors: []ErrorDescriptor{conflictError("This status change is not allowed.")}}, nil
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return &OrderPayload{Order: orderToView(order)}, nil
}

func resolveConnectPlatform(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in connectPlatformInput
	if err := decodeInput(vars, &in); err != nil {
		return &ConnectionPayload{Errors: []ErrorDescriptor{validationError(err.Error())}}, nil
	}

	conn, err := scope.Connections.Connect(ctx, callerID(ctx), in.PlatformID, in.Code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ConnectionPayload{Errors: []ErrorDescriptor{notFoundError("Platform does not exist.")}}, nil
		}
		return nil, fmt.Errorf("connect platform: %w", err)
	}
	return &ConnectionPayload{Connection: connectionToView(conn)}, nil
}
