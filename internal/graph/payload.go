package graph

import (
	"time"

	"adboard/internal/domain"
)

// Error typenames are stable, machine-checkable tags. Messages are for humans
// and carry no contract.
const (
	ErrTypeInvalidCredentials = "InvalidCredentialsError"
	ErrTypeValidation         = "ValidationError"
	ErrTypeEmailTaken         = "EmailTakenError"
	ErrTypeNotFound           = "NotFoundError"
	ErrTypeConflict           = "ConflictError"
)

// invalidCredentialsMessage is shared by the unknown-email and wrong-password
// paths. The two cases must be indistinguishable to the caller.
const invalidCredentialsMessage = "Invalid email address or password."

// ErrorDescriptor is a tagged, user-facing failure inside a mutation payload.
type ErrorDescriptor struct {
	Typename string `json:"typename"`
	Message  string `json:"message"`
}

func invalidCredentialsError() ErrorDescriptor {
	return ErrorDescriptor{Typename: ErrTypeInvalidCredentials, Message: invalidCredentialsMessage}
}

func validationError(message string) ErrorDescriptor {
	return ErrorDescriptor{Typename: ErrTypeValidation, Message: message}
}

func emailTakenError() ErrorDescriptor {
	return ErrorDescriptor{Typename: ErrTypeEmailTaken, Message: "An account with this email already exists."}
}

func notFoundError(message string) ErrorDescriptor {
	return ErrorDescriptor{Typename: ErrTypeNotFound, Message: message}
}

func conflictError(message string) ErrorDescriptor {
	return ErrorDescriptor{Typename: ErrTypeConflict, Message: message}
}

// UserPayload is the sanitized user shape embedded in responses.
type UserPayload struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func userToPayload(user *domain.User) *UserPayload {
	if user == nil {
		return nil
	}
	return &UserPayload{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// LoginPayload is a sum type: a populated User+Token with empty Errors, or a
// nil User with at least one error. The constructors below are the only way
// resolvers build one, which keeps the invariant by construction.
type LoginPayload struct {
	User   *UserPayload      `json:"user"`
	Token  string            `json:"token,omitempty"`
	Errors []ErrorDescriptor `json:"errors,omitempty"`
}

func loginSuccess(user *domain.User, token string) *LoginPayload {
	return &LoginPayload{User: userToPayload(user), Token: token}
}

func loginFailure(errs ...ErrorDescriptor) *LoginPayload {
	if len(errs) == 0 {
		panic("failure payload requires at least one error")
	}
	return &LoginPayload{Errors: errs}
}

// UserMutationPayload carries registration results.
type UserMutationPayload struct {
	User   *UserPayload      `json:"user"`
	Errors []ErrorDescriptor `json:"errors,omitempty"`
}

func userSuccess(user *domain.User) *UserMutationPayload {
	return &UserMutationPayload{User: userToPayload(user)}
}

func userFailure(errs ...ErrorDescriptor) *UserMutationPayload {
	if len(errs) == 0 {
		panic("failure payload requires at least one error")
	}
	return &UserMutationPayload{Errors: errs}
}

// ListingPayload carries listing mutation results.
type ListingPayload struct {
	Listing *ListingView      `json:"listing"`
	Errors  []ErrorDescriptor `json:"errors,omitempty"`
}

// OrderPayload carries order mutation results.
type OrderPayload struct {
	Order  *OrderView        `json:"order"`
	Errors []ErrorDescriptor `json:"errors,omitempty"`
}

// ConnectionPayload carries platform connection results.
type ConnectionPayload struct {
	Connection *ConnectionView   `json:"connection"`
	Errors     []ErrorDescriptor `json:"errors,omitempty"`
}

// AssetUploadPayload carries a presigned upload URL for a listing creative.
type AssetUploadPayload struct {
	UploadURL string            `json:"uploadUrl,omitempty"`
	Errors    []ErrorDescriptor `json:"errors,omitempty"`
}

type ListingView struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	ListingTypeID int64  `json:"listingTypeId"`
	Price         int64  `json:"price"`
	Description   string `json:"description"`
	AssetLocation string `json:"assetLocation,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

func listingToView(listing *domain.Listing) *ListingView {
	if listing == nil {
		return nil
	}
	return &ListingView{
		ID:            listing.ID,
		UserID:        listing.UserID,
		ListingTypeID: listing.ListingTypeID,
		Price:         listing.Price,
		Description:   listing.Description,
		AssetLocation: listing.AssetLocation,
		CreatedAt:     listing.CreatedAt.Format(time.RFC3339),
	}
}

type OrderView struct {
	ID        int64  `json:"id"`
	ListingID int64  `json:"listingId"`
	UserID    int64  `json:"userId"`
	Price     int64  `json:"price"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func orderToView(order *domain.Order) *OrderView {
	if order == nil {
		return nil
	}
	return &OrderView{
		ID:        order.ID,
		ListingID: order.ListingID,
		UserID:    order.UserID,
		Price:     order.Price,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
	}
}

type ConnectionView struct {
	ID            int64  `json:"id"`
	PlatformID    int64  `json:"platformId"`
	AccountHandle string `json:"accountHandle"`
	CreatedAt     string `json:"createdAt"`
}

func connectionToView(conn *domain.Connection) *ConnectionView {
	if conn == nil {
		return nil
	}
	// AccessToken stays server-side.
	return &ConnectionView{
		ID:            conn.ID,
		PlatformID:    conn.PlatformID,
		AccountHandle: conn.AccountHandle,
		CreatedAt:     conn.CreatedAt.Format(time.RFC3339),
	}
}

type PlatformView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ListingTypeView struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PlatformID int64  `json:"platformId"`
}
