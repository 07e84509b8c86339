package models

// SignupDraft accumulates the wizard's fields. It never holds a plaintext password: the Step1
// password is bcrypt-hashed before the draft is stored.
type SignupDraft struct {
	Step         int      `json:"step"`
	FirstName    string   `json:"firstName,omitempty"`
	LastName     string   `json:"lastName,omitempty"`
	Email        string   `json:"email,omitempty"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	DateOfBirth  string   `json:"dateOfBirth,omitempty"`
	Interests    []string `json:"interests,omitempty"`
	Newsletter   bool     `json:"newsletter"`
	Terms        bool     `json:"terms"`
	AgeConfirmed bool     `json:"ageVerification"`
}

type IdentityRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ProfileRequest struct {
	Phone       string   `json:"phone"`
	DateOfBirth string   `json:"date_of_birth"`
	Interests   []string `json:"interests"`
	Newsletter  bool     `json:"newsletter"`
}

type ConsentRequest struct {
	Terms           bool `json:"terms"`
	AgeVerification bool `json:"age_verification"`
}

type PasswordStrengthRequest struct {
	Password string `json:"password"`
}
