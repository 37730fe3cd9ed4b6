package graph

import (
	"context"
	"errors"
	"fmt"

	"adboard/internal/service"
)

// resolveLogin verifies credentials and issues a session token. Expected
// failures come back inside the payload; only store or signer faults surface
// as errors to the executor.
func resolveLogin(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in loginInput
	if err := decodeInput(vars, &in); err != nil {
		return loginFailure(validationError(err.Error())), nil
	}

	user, err := scope.Users.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One payload for unknown email and wrong password.
			return loginFailure(invalidCredentialsError()), nil
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	token, err := scope.Issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return loginSuccess(user, token), nil
}

func resolveAddUser(ctx context.Context, scope *Scope, vars Variables) (any, error) {
	var in addUserInput
	if err := decodeInput(vars, &in); err != nil {
		return userFailure(validationError(err.Error())), nil
	}

	user, err := scope.Users.Register(ctx, in.Email, in.Password, in.FirstName, in.LastName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return userFailure(emailTakenError()), nil
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	return userSuccess(user), nil
}
