package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/anjuman-committee/community-backend/config"
	"github.com/anjuman-committee/community-backend/internal/auditlog"
)

// ValidationError marks input problems so the handler can answer 400
// instead of 500.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// CredentialNotifier delivers the generated username/password to a new
// member. Implementations are best-effort; registration never fails on a
// delivery error.
type CredentialNotifier interface {
	SendCredentials(user *User, username, plainPassword string)
}

type Service interface {
	Register(in RegisterInput, ip string) (*User, string, error)
	Login(username, password, ip string) (string, *User, error)
	AdminLogin(email, password, ip string) (string, error)
	GetUserByID(userID uint) (User, error)
	UpdateProfile(userID uint, in UpdateProfileInput) (*User, error)
	ChangePassword(userID uint, oldPassword, newPassword string) error
}

type service struct {
	repo     Repository
	notifier CredentialNotifier
	cfg      *config.Config
	auditSvc auditlog.Service
	ttl      time.Duration
}

func NewService(r Repository, notifier CredentialNotifier, cfg *config.Config, auditSvc auditlog.Service) Service {
	return &service{
		repo:     r,
		notifier: notifier,
		cfg:      cfg,
		auditSvc: auditSvc,
		ttl:      time.Duration(cfg.JWTTTLHours) * time.Hour,
	}
}

// audit records an auth event. Logging is best-effort and never blocks
// the credential flow.
func (s *service) audit(userID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.LogAction(context.Background(), userID, action, details, ip, status)
}

// =============================
// Register
// =============================

type RegisterInput struct {
	FullName   string
	Gender     string
	DOB        string // yyyy-mm-dd
	KhandanID  uint
	Contact    Contact
	Address    Address
	Profession Profession
}

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

func (s *service) Register(in RegisterInput, ip string) (*User, string, error) {
	dob, err := s.validateRegister(in)
	if err != nil {
		return nil, "", err
	}

	username, err := s.resolveUsername(DeriveUsername(in.FullName, dob))
	if err != nil {
		return nil, "", err
	}

	plainPassword, err := GeneratePassword(8)
	if err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &User{
		FullName:     strings.TrimSpace(in.FullName),
		Gender:       strings.ToLower(in.Gender),
		DOB:          dob,
		Username:     username,
		PasswordHash: string(hash),
		KhandanID:    in.KhandanID,
		Contact:      in.Contact,
		Address:      in.Address,
		Profession:   in.Profession,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	s.audit(&user.ID, "USER_REGISTERED", map[string]interface{}{
		"username":   username,
		"khandan_id": user.KhandanID,
	}, ip, "success")

	// Best-effort credential delivery, never fatal
	if s.notifier != nil {
		s.notifier.SendCredentials(user, username, plainPassword)
	}

	token, err := s.generateUserToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) validateRegister(in RegisterInput) (time.Time, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return time.Time{}, ValidationError("full name is required")
	}
	switch strings.ToLower(in.Gender) {
	case "male", "female", "other":
	default:
		return time.Time{}, ValidationError("gender must be male, female or other")
	}
	if in.DOB == "" {
		return time.Time{}, ValidationError("date of birth is required")
	}
	dob, err := time.Parse("2006-01-02", in.DOB)
	if err != nil {
		return time.Time{}, ValidationError("date of birth must be in yyyy-mm-dd format")
	}
	if in.KhandanID == 0 {
		return time.Time{}, ValidationError("khandan id is required")
	}
	if strings.TrimSpace(in.Address.Line1) == "" {
		return time.Time{}, ValidationError("address is required")
	}
	if in.Contact.Email == "" && in.Contact.Mobile == "" {
		return time.Time{}, ValidationError("at least one of email or mobile is required")
	}
	if in.Contact.Email != "" && !emailRegex.MatchString(in.Contact.Email) {
		return time.Time{}, ValidationError("invalid email address")
	}
	if in.Contact.Mobile != "" && !mobileRegex.MatchString(in.Contact.Mobile) {
		return time.Time{}, ValidationError("mobile number must be 10 digits")
	}
	return dob, nil
}

// DeriveUsername builds the base login name: lowercase first name + dob as ddmmyy.
func DeriveUsername(fullName string, dob time.Time) string {
	first := strings.ToLower(strings.Fields(strings.TrimSpace(fullName))[0])
	var b strings.Builder
	for _, r := range first {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String() + dob.Format("020106")
}

// resolveUsername appends an incrementing numeric suffix until the store
// reports no collision. The read-then-write window is not transactionally
// guarded; a concurrent duplicate surfaces as a unique-constraint error.
func (s *service) resolveUsername(base string) (string, error) {
	candidate := base
	for suffix := 1; ; suffix++ {
		exists, err := s.repo.UsernameExists(candidate)
		if err != nil {
			return "", fmt.Errorf("username lookup failed: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePassword returns a random alphanumeric password of the given length
func GeneratePassword(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = passwordCharset[int(b)%len(passwordCharset)]
	}
	return string(buf), nil
}

// =============================
// Login
// =============================

func (s *service) Login(username, password, ip string) (string, *User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.audit(nil, "USER_LOGIN", map[string]interface{}{
				"username": username,
				"reason":   "unknown username",
			}, ip, "failure")
			return "", nil, errors.New("user does not exist")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.audit(&user.ID, "USER_LOGIN", map[string]interface{}{
			"username": username,
			"reason":   "wrong password",
		}, ip, "failure")
		return "", nil, errors.New("invalid credentials")
	}

	token, err := s.generateUserToken(user)
	if err != nil {
		return "", nil, err
	}

	s.audit(&user.ID, "USER_LOGIN", map[string]interface{}{
		"username": username,
	}, ip, "success")
	return token, user, nil
}

// AdminLogin checks the fixed env-provided admin identity and issues a
// token independent of the users table.
func (s *service) AdminLogin(email, password, ip string) (string, error) {
	if email != s.cfg.AdminEmail || password != s.cfg.AdminPassword {
		s.audit(nil, "ADMIN_LOGIN", map[string]interface{}{
			"email": email,
		}, ip, "failure")
		return "", errors.New("invalid admin credentials")
	}

	claims := jwt.MapClaims{
		"role":  "admin",
		"email": email,
		"exp":   time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	s.audit(nil, "ADMIN_LOGIN", map[string]interface{}{
		"email": email,
	}, ip, "success")
	return signed, nil
}

func (s *service) generateUserToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// =============================
// Profile
// =============================

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

type UpdateProfileInput struct {
	FullName   string
	Gender     string
	DOB        string
	KhandanID  uint
	Contact    Contact
	Address    Address
	Profession Profession
}

// UpdateProfile mutates identity/contact fields; the username never changes.
func (s *service) UpdateProfile(userID uint, in UpdateProfileInput) (*User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if in.FullName != "" {
		user.FullName = strings.TrimSpace(in.FullName)
	}
	if in.Gender != "" {
		g := strings.ToLower(in.Gender)
		if g != "male" && g != "female" && g != "other" {
			return nil, ValidationError("gender must be male, female or other")
		}
		user.Gender = g
	}
	if in.DOB != "" {
		dob, err := time.Parse("2006-01-02", in.DOB)
		if err != nil {
			return nil, ValidationError("date of birth must be in yyyy-mm-dd format")
		}
		user.DOB = dob
	}
	if in.KhandanID != 0 {
		user.KhandanID = in.KhandanID
	}
	if in.Contact.Email != "" {
		if !emailRegex.MatchString(in.Contact.Email) {
			return nil, ValidationError("invalid email address")
		}
		user.Contact.Email = in.Contact.Email
	}
	if in.Contact.Mobile != "" {
		if !mobileRegex.MatchString(in.Contact.Mobile) {
			return nil, ValidationError("mobile number must be 10 digits")
		}
		user.Contact.Mobile = in.Contact.Mobile
	}
	if in.Contact.CountryCode != "" {
		user.Contact.CountryCode = in.Contact.CountryCode
	}
	if in.Contact.WhatsAppNumber != "" {
		user.Contact.WhatsAppNumber = in.Contact.WhatsAppNumber
	}
	if in.Address.Line1 != "" {
		user.Address = in.Address
	}
	if in.Profession.Occupation != "" || in.Profession.Company != "" || in.Profession.Designation != "" {
		user.Profession = in.Profession
	}

	if err := s.repo.Update(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ValidationError("old password is incorrect")
	}
	if len(newPassword) < 8 {
		return ValidationError("new password must be at least 8 characters")
	}
	if newPassword == oldPassword {
		return ValidationError("new password must differ from the old one")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(userID, string(hash))
}
