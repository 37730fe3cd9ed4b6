package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared: the validator caches struct metadata and is safe for
// concurrent use.
var validate = validator.New()

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type addUserInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type addListingInput struct {
	ListingTypeID int64  `json:"listingTypeId" validate:"required,gt=0"`
	Price         int64  `json:"price" validate:"required,gt=0"`
	Description   string `json:"description"`
}

type idInput struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

type assetUploadInput struct {
	ListingID int64  `json:"listingId" validate:"required,gt=0"`
	Filename  string `json:"filename" validate:"required"`
}

type placeOrderInput struct {
	ListingID int64 `json:"listingId" validate:"required,gt=0"`
}

type updateOrderStatusInput struct {
	OrderID int64  `json:"orderId" validate:"required,gt=0"`
	Status  string `json:"status" validate:"required,oneof=accepted declined completed"`
}

type connectPlatformInput struct {
	PlatformID int64  `json:"platformId" validate:"required,gt=0"`
	Code       string `json:"code" validate:"required"`
}

type listPageInput struct {
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
	SortBy   string `json:"sortBy"`
	SortDesc bool   `json:"sortDesc"`
}

type listingsInput struct {
	listPageInput
	ListingTypeID int64 `json:"listingTypeId"`
	UserID        int64 `json:"userId"`
	MaxPrice      int64 `json:"maxPrice"`
}

type platformInput struct {
	PlatformID int64 `json:"platformId" validate:"required,gt=0"`
}

// ErrInvalidInput marks variables the caller can correct. The transport maps
// it to a client error rather than a server fault.
var ErrInvalidInput = errors.New("invalid input")

// decodeInput maps variables onto a typed input and validates it. The error
// message is user-facing; it names the offending fields only.
func decodeInput(vars Variables, dst any) error {
	raw, err := json.Marshal(vars)
	if err != nil {
		return fmt.Errorf("%w: variables are not encodable", ErrInvalidInput)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: variables have the wrong shape", ErrInvalidInput)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fieldMessage(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(fields, "; "))
		}
		return err
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

type callerKey struct{}

// withCaller records the authenticated user id for resolvers.
func withCaller(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, callerKey{}, userID)
}

// callerID returns the authenticated user id, 0 for anonymous callers.
func callerID(ctx context.Context) int64 {
	id, _ := ctx.Value(callerKey{}).(int64)
	return id
}
