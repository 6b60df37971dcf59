package catalog

import (
	"errors"
	"strings"
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"

	"github.com/go-playground/validator/v10"
)

var (
	ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")
	ErrRestaurantInactive         = errs.NewConflictError("restaurant is not accepting orders")

	emailValidator = validator.New(validator.WithRequiredStructEnabled())
)

// Restaurant is a merchant on the platform.
type Restaurant struct {
	id                kernel.UUID
	name              string
	notificationEmail string
	active            bool
	createdAt         time.Time

	guard guard.ConstructorGuard
}

// NewRestaurant resolves the notification address once, preferring the contact email
// over the owner's account email. At least one must be a valid address.
func NewRestaurant(id kernel.UUID, name, contactEmail, ownerEmail string, now time.Time) (*Restaurant, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	email, emailErr := resolveNotificationEmail(contactEmail, ownerEmail)
	if err := errors.Join(id.Validate(), nameErr, emailErr); err != nil {
		return nil, err
	}

	return &Restaurant{
		id:                id,
		name:              name,
		notificationEmail: email,
		active:            true,
		createdAt:         now,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// RestoreRestaurant rebuilds a restaurant from storage.
func RestoreRestaurant(id kernel.UUID, name, notificationEmail string, active bool, createdAt time.Time) (*Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Restaurant{
		id:                id,
		name:              name,
		notificationEmail: notificationEmail,
		active:            active,
		createdAt:         createdAt,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the restaurant was created through a constructor.
func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

// ID returns the restaurant's unique identifier.
func (r *Restaurant) ID() kernel.UUID { return r.id }

// Name returns the restaurant's display name.
func (r *Restaurant) Name() string { return r.name }

// NotificationEmail returns the address order notifications are sent to.
func (r *Restaurant) NotificationEmail() string { return r.notificationEmail }

// IsActive reports whether the restaurant accepts orders.
func (r *Restaurant) IsActive() bool { return r.active }

// CreatedAt returns when the restaurant was created.
func (r *Restaurant) CreatedAt() time.Time { return r.createdAt }

func (r *Restaurant) SetActive(active bool) {
	r.active = active
}

func resolveNotificationEmail(candidates ...string) (string, error) {
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if err := emailValidator.Var(candidate, "email"); err != nil {
			return "", errs.NewValueIsInvalidErrorWithCause("email", err)
		}
		return candidate, nil
	}
	return "", errs.NewValueIsRequiredError("email")
}
