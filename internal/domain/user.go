package domain

import (
	"errors"
	"time"
)

var (
	// ErrUsernameAlreadyExists indicates that the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrEmailAlreadyExists indicates that the user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrIdentityNumberAlreadyExists indicates that a customer with the given identity number already exists.
	ErrIdentityNumberAlreadyExists = errors.New("identity number already exists")
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrCustomerNotFound indicates that the customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("wrong password")
)

// User roles. The role tag selects the role-specific payload
// (Customer for RoleCustomer); there is no subclassing.
const (
	RoleCustomer = "CUSTOMER"
	RoleAgent    = "AGENT"
)

// User holds shared identity and credential data for customers and agents.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// Customer is the role-specific payload for users tagged RoleCustomer.
type Customer struct {
	UserID         int64     `json:"user_id"`
	Username       string    `json:"username"`
	IdentityNumber string    `json:"identity_number"`
	BirthDate      time.Time `json:"birth_date"`
	PostalAddress  string    `json:"postal_address"`
}

// CreateCustomerParams is the input data to register a customer.
type CreateCustomerParams struct {
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	IdentityNumber string    `json:"identity_number"`
	BirthDate      time.Time `json:"birth_date"`
	PostalAddress  string    `json:"postal_address"`
}

// UserWithoutPassword is User data excluding credential data.
type UserWithoutPassword struct {
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
