package users

import (
	"fmt"
	"strconv"
	"time"

	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Role represents a user's access level within the service.
type Role string

const (
	RoleStandard      Role = "Standard"      // Regular rider
	RoleAdministrator Role = "Administrator" // Fleet and user administration
)

// User is a stored credential record: identity, password hash, role and
// account balances. The password hash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	Credit       float64   `json:"credit"`
	EcoPoints    int       `json:"ecoPoints"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the read-oriented projection of a User handed to rendering
// logic and returned by the API. It is always derived, never persisted.
type Profile struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Role      Role    `json:"role"`
	Credit    float64 `json:"credit"`
	EcoPoints int     `json:"ecoPoints"`
}

// Profile returns the read projection of the user.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Credit:    u.Credit,
		EcoPoints: u.EcoPoints,
	}
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdministrator returns true if the user can manage the fleet.
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p *Profile) IsAdministrator() bool {
	return p.Role == RoleAdministrator
}

// SubjectID renders the user ID the way token claims carry it.
func (u *User) SubjectID() string {
	return strconv.FormatInt(u.ID, 10)
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
