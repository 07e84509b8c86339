// Package signup implements the three-step registration wizard.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"neocommerce.in/storefront/pkg/models"
	"neocommerce.in/storefront/pkg/notify"
	"neocommerce.in/storefront/pkg/storage"
)

type Step int

const (
	Step1 Step = iota + 1
	Step2
	Step3
	Submitted
)

func (s Step) String() string {
	switch s {
	case Step1:
		return "account"
	case Step2:
		return "profile"
	case Step3:
		return "confirm"
	case Submitted:
		return "submitted"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var ErrInvalidTransition = errors.New("invalid wizard transition")

type Options struct {
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
	Logger   *zap.Logger
}

// Wizard holds one client's signup progress. The draft is written to storage after every
// accepted step so a later request can resume it.
type Wizard struct {
	mu       sync.Mutex
	store    storage.Store
	creator  AccountCreator
	notifier notify.Notifier
	cost     int
	logger   *zap.Logger

	draft   models.SignupDraft
	session *models.UserSession
}

// New resumes the stored draft, or starts at Step1 when none can be read.
func New(ctx context.Context, store storage.Store, creator AccountCreator, notifier notify.Notifier, opts Options) (*Wizard, error) {
	w := &Wizard{
		store:    store,
		creator:  creator,
		notifier: notifier,
		cost:     opts.HashCost,
		logger:   opts.Logger,
		draft:    models.SignupDraft{Step: int(Step1)},
	}
	if w.notifier == nil {
		w.notifier = notify.Nop
	}
	if w.cost == 0 {
		w.cost = bcrypt.DefaultCost
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}

	raw, err := store.Get(ctx, storage.SignupDraftKey)
	if errors.Is(err, storage.ErrNotFound) {
		return w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load signup draft: %w", err)
	}

	var draft models.SignupDraft
	if err := json.Unmarshal(raw, &draft); err != nil || draft.Step < int(Step1) || draft.Step > int(Step3) {
		w.logger.Warn("Discarding unreadable signup draft", zap.Error(err), zap.Int("step", draft.Step))
		return w, nil
	}
	w.draft = draft
	return w, nil
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Step(w.draft.Step)
}

// Draft returns a copy of the collected fields.
func (w *Wizard) Draft() models.SignupDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.draft
	d.Interests = append([]string(nil), d.Interests...)
	return d
}

// Session is the record created by a successful Submit, nil before that.
func (w *Wizard) Session() *models.UserSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}

// Identity validates the account step and advances to Step2.
func (w *Wizard) Identity(ctx context.Context, req models.IdentityRequest) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if Step(w.draft.Step) != Step1 {
		return ErrInvalidTransition
	}
	if errs := ValidateIdentity(req); len(errs) > 0 {
		w.notifier.Notify(notify.Notification{
			Severity: notify.Error,
			Title:    "Validation Error",
			Message:  "Please fix the errors before continuing",
		})
		return errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), w.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	next := w.draft
	next.FirstName = strings.TrimSpace(req.FirstName)
	next.LastName = strings.TrimSpace(req.LastName)
	next.Email = strings.TrimSpace(req.Email)
	next.PasswordHash = string(hash)
	next.Step = int(Step2)
	return w.commit(ctx, next)
}

// Profile records the optional details and advances to Step3.
func (w *Wizard) Profile(ctx context.Context, req models.ProfileRequest) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if Step(w.draft.Step) != Step2 {
		return ErrInvalidTransition
	}
	next := w.draft
	next.Phone = strings.TrimSpace(req.Phone)
	next.DateOfBirth = strings.TrimSpace(req.DateOfBirth)
	next.Interests = cleanInterests(req.Interests)
	next.Newsletter = req.Newsletter
	next.Step = int(Step3)
	return w.commit(ctx, next)
}

// Back returns to the previous step. Entered data is kept.
func (w *Wizard) Back(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch Step(w.draft.Step) {
	case Step2, Step3:
	default:
		return ErrInvalidTransition
	}
	next := w.draft
	next.Step--
	return w.commit(ctx, next)
}

// Submit checks consent and registers the account. On success the session is stored, the
// draft discarded and the wizard moves to Submitted. ErrSignupFailed leaves it on Step3 so the
// user can retry.
func (w *Wizard) Submit(ctx context.Context, req models.ConsentRequest) (*models.UserSession, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if Step(w.draft.Step) != Step3 {
		return nil, ErrInvalidTransition
	}
	if errs := ValidateConsent(req); len(errs) > 0 {
		w.notifier.Notify(notify.Notification{
			Severity: notify.Error,
			Title:    "Validation Error",
			Message:  "Please complete all required fields",
		})
		return nil, errs
	}

	next := w.draft
	next.Terms = req.Terms
	next.AgeConfirmed = req.AgeVerification
	if err := w.commit(ctx, next); err != nil {
		return nil, err
	}

	sess, err := w.creator.CreateAccount(ctx, w.draft)
	if err != nil {
		if errors.Is(err, ErrSignupFailed) {
			w.notifier.Notify(notify.Notification{
				Severity: notify.Error,
				Title:    "Signup Failed",
				Message:  FailureMessage,
			})
		}
		return nil, err
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := w.store.Set(ctx, storage.UserKey, raw); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := w.store.Delete(ctx, storage.SignupDraftKey); err != nil {
		w.logger.Warn("Failed to discard signup draft", zap.Error(err))
	}

	w.draft.Step = int(Submitted)
	w.session = sess
	w.logger.Info("Account created", zap.String("user_id", sess.UserID))
	w.notifier.Notify(notify.Notification{
		Severity: notify.Success,
		Title:    "Account created!",
		Message:  fmt.Sprintf("Welcome to NeoCommerce, %s.", sess.FirstName),
	})
	return sess, nil
}

// Summary is the review panel shown on the final step.
type Summary struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Interests string `json:"interests"`
}

func (w *Wizard) Summary() Summary {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Summary{
		Name:      strings.TrimSpace(w.draft.FirstName + " " + w.draft.LastName),
		Email:     w.draft.Email,
		Interests: "None selected",
	}
	if s.Name == "" {
		s.Name = "-"
	}
	if s.Email == "" {
		s.Email = "-"
	}
	if len(w.draft.Interests) > 0 {
		s.Interests = strings.Join(w.draft.Interests, ", ")
	}
	return s
}

func (w *Wizard) commit(ctx context.Context, next models.SignupDraft) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal signup draft: %w", err)
	}
	if err := w.store.Set(ctx, storage.SignupDraftKey, raw); err != nil {
		return fmt.Errorf("failed to persist signup draft: %w", err)
	}
	w.draft = next
	return nil
}

func cleanInterests(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
