package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/anjuman-committee/community-backend/config"
	"github.com/anjuman-committee/community-backend/internal/auditlog"
)

type fakeRepo struct {
	users      map[string]*User
	byID       map[uint]*User
	nextID     uint
	lastUpdate *User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}, byID: map[uint]*User{}, nextID: 1}
}

func (r *fakeRepo) Create(user *User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.Username] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeRepo) FindByUsername(username string) (*User, error) {
	u, ok := r.users[username]
	if !ok {
		return &User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeRepo) FindByID(userID uint) (User, error) {
	u, ok := r.byID[userID]
	if !ok {
		return User{}, gorm.ErrRecordNotFound
	}
	return *u, nil
}

func (r *fakeRepo) UsernameExists(username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *fakeRepo) Update(user *User) error {
	r.lastUpdate = user
	r.users[user.Username] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeRepo) UpdatePassword(userID uint, passwordHash string) error {
	if u, ok := r.byID[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

type recordingNotifier struct {
	username string
	password string
	calls    int
}

func (n *recordingNotifier) SendCredentials(user *User, username, plainPassword string) {
	n.username = username
	n.password = plainPassword
	n.calls++
}

type auditEntry struct {
	action string
	status string
	ip     string
}

type recordingAudit struct {
	entries []auditEntry
}

func (a *recordingAudit) LogAction(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip, status string) error {
	a.entries = append(a.entries, auditEntry{action: action, status: status, ip: ip})
	return nil
}

func (a *recordingAudit) GetAuditLogs(ctx context.Context, filter auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}

func (a *recordingAudit) GetAuditLogByID(ctx context.Context, id uint) (*auditlog.AuditLog, error) {
	return nil, nil
}

func (a *recordingAudit) last() auditEntry {
	if len(a.entries) == 0 {
		return auditEntry{}
	}
	return a.entries[len(a.entries)-1]
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTTTLHours:   72,
		AdminEmail:    "admin@example.com",
		AdminPassword: "super-secret",
	}
}

func newTestService(t *testing.T) (Service, *fakeRepo, *recordingNotifier, *recordingAudit) {
	t.Helper()
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	audit := &recordingAudit{}
	return NewService(repo, notifier, testConfig(), audit), repo, notifier, audit
}

func validInput() RegisterInput {
	return RegisterInput{
		FullName:  "Akbar Hussain",
		Gender:    "male",
		DOB:       "1990-03-15",
		KhandanID: 3,
		Contact:   Contact{Mobile: "9876543210"},
		Address:   Address{Line1: "12 Main Road", City: "Pune"},
	}
}

func TestDeriveUsername(t *testing.T) {
	dob := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "akbar150390", DeriveUsername("Akbar Hussain", dob))
	assert.Equal(t, "akbar150390", DeriveUsername("  AKBAR  ", dob))
	// non-alphanumeric runes in the first name are dropped
	assert.Equal(t, "dsouza150390", DeriveUsername("D'Souza Fernandes", dob))
}

func TestGeneratePassword(t *testing.T) {
	p1, err := GeneratePassword(8)
	require.NoError(t, err)
	assert.Len(t, p1, 8)
	for _, r := range p1 {
		assert.Contains(t, passwordCharset, string(r))
	}

	p2, err := GeneratePassword(8)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}

func TestRegister(t *testing.T) {
	svc, _, notifier, audit := newTestService(t)

	user, token, err := svc.Register(validInput(), "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "akbar150390", user.Username)
	assert.NotEmpty(t, token)

	// the stored hash must verify against the delivered password
	assert.Equal(t, 1, notifier.calls)
	assert.Len(t, notifier.password, 8)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(notifier.password)))

	assert.Equal(t, auditEntry{action: "USER_REGISTERED", status: "success", ip: "10.0.0.1"}, audit.last())
}

func TestRegisterUsernameCollision(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	first, _, err := svc.Register(validInput(), "")
	require.NoError(t, err)
	assert.Equal(t, "akbar150390", first.Username)

	second, _, err := svc.Register(validInput(), "")
	require.NoError(t, err)
	assert.Equal(t, "akbar1503901", second.Username)

	third, _, err := svc.Register(validInput(), "")
	require.NoError(t, err)
	assert.Equal(t, "akbar1503902", third.Username)
}

func TestRegisterValidation(t *testing.T) {
	svc, repo, _, audit := newTestService(t)

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing full name", func(in *RegisterInput) { in.FullName = "  " }},
		{"bad gender", func(in *RegisterInput) { in.Gender = "unknown" }},
		{"missing dob", func(in *RegisterInput) { in.DOB = "" }},
		{"malformed dob", func(in *RegisterInput) { in.DOB = "15-03-1990" }},
		{"missing khandan", func(in *RegisterInput) { in.KhandanID = 0 }},
		{"missing address", func(in *RegisterInput) { in.Address.Line1 = "" }},
		{"no contact at all", func(in *RegisterInput) { in.Contact = Contact{} }},
		{"bad email", func(in *RegisterInput) { in.Contact = Contact{Email: "not-an-email"} }},
		{"short mobile", func(in *RegisterInput) { in.Contact = Contact{Mobile: "12345"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, _, err := svc.Register(in, "")
			require.Error(t, err)
			assert.IsType(t, ValidationError(""), err)
		})
	}

	// nothing must be persisted on validation failure
	assert.Empty(t, repo.users)
	assert.Empty(t, audit.entries)
}

func TestLogin(t *testing.T) {
	svc, _, notifier, audit := newTestService(t)

	user, _, err := svc.Register(validInput(), "")
	require.NoError(t, err)

	token, got, err := svc.Login(user.Username, notifier.password, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, auditEntry{action: "USER_LOGIN", status: "success", ip: "10.0.0.2"}, audit.last())

	_, _, err = svc.Login(user.Username, "wrong-password", "10.0.0.2")
	assert.EqualError(t, err, "invalid credentials")
	assert.Equal(t, auditEntry{action: "USER_LOGIN", status: "failure", ip: "10.0.0.2"}, audit.last())

	_, _, err = svc.Login("ghost010100", "whatever", "10.0.0.2")
	assert.EqualError(t, err, "user does not exist")
	assert.Equal(t, "failure", audit.last().status)
}

func TestUserTokenClaims(t *testing.T) {
	cfg := testConfig()
	svc := NewService(newFakeRepo(), &recordingNotifier{}, cfg, &recordingAudit{})

	user, tokenStr, err := svc.Register(validInput(), "")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["user_id"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok, "token must carry an expiry claim")
	assert.Greater(t, int64(exp), time.Now().Unix())
}

func TestAdminLogin(t *testing.T) {
	cfg := testConfig()
	audit := &recordingAudit{}
	svc := NewService(newFakeRepo(), &recordingNotifier{}, cfg, audit)

	tokenStr, err := svc.AdminLogin(cfg.AdminEmail, cfg.AdminPassword, "10.0.0.3")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, cfg.AdminEmail, claims["email"])
	assert.Equal(t, auditEntry{action: "ADMIN_LOGIN", status: "success", ip: "10.0.0.3"}, audit.last())

	_, err = svc.AdminLogin(cfg.AdminEmail, "wrong", "10.0.0.3")
	assert.Error(t, err)
	assert.Equal(t, auditEntry{action: "ADMIN_LOGIN", status: "failure", ip: "10.0.0.3"}, audit.last())

	_, err = svc.AdminLogin("someone@else.com", cfg.AdminPassword, "10.0.0.3")
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, repo, notifier, _ := newTestService(t)

	user, _, err := svc.Register(validInput(), "")
	require.NoError(t, err)
	old := notifier.password

	err = svc.ChangePassword(user.ID, "not-the-password", "newpassword1")
	assert.IsType(t, ValidationError(""), err)

	err = svc.ChangePassword(user.ID, old, "short")
	assert.IsType(t, ValidationError(""), err)

	err = svc.ChangePassword(user.ID, old, old)
	assert.IsType(t, ValidationError(""), err)

	require.NoError(t, svc.ChangePassword(user.ID, old, "newpassword1"))
	stored := repo.byID[user.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword1")))
}
