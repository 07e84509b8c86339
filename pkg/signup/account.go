package signup

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"neocommerce.in/storefront/pkg/models"
)

// ErrSignupFailed is a retryable rejection from the account service.
var ErrSignupFailed = errors.New("signup failed")

// FailureMessage is shown to the user when ErrSignupFailed is returned.
const FailureMessage = "Signup failed. Please try again."

// AccountCreator registers a completed draft and returns the new session record.
type AccountCreator interface {
	CreateAccount(ctx context.Context, draft models.SignupDraft) (*models.UserSession, error)
}

// SimulatedAPI stands in for a registration backend: it waits Delay and then fails with
// probability FailureRate.
type SimulatedAPI struct {
	Delay       time.Duration
	FailureRate float64
	Roll        func() float64
	Now         func() time.Time
}

func (a *SimulatedAPI) CreateAccount(ctx context.Context, draft models.SignupDraft) (*models.UserSession, error) {
	if a.Delay > 0 {
		timer := time.NewTimer(a.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	roll := a.Roll
	if roll == nil {
		roll = rand.Float64
	}
	if roll() < a.FailureRate {
		return nil, ErrSignupFailed
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return &models.UserSession{
		UserID:       NewUserID(),
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		Email:        draft.Email,
		PasswordHash: draft.PasswordHash,
		Phone:        draft.Phone,
		DateOfBirth:  draft.DateOfBirth,
		Interests:    append([]string(nil), draft.Interests...),
		Newsletter:   draft.Newsletter,
		SignupTime:   now().UTC(),
	}, nil
}

// NewUserID returns an id of the form user_xxxxxxxxx.
func NewUserID() string {
	return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}
