package auth

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/sharath018/property-board-backend/config"
)

type fakeAuthRepo struct {
	nextID uint
	users  map[string]*User
	roles  map[string]*UserRole
}

func newFakeAuthRepo() *fakeAuthRepo {
	repo := &fakeAuthRepo{
		users: make(map[string]*User),
		roles: make(map[string]*UserRole),
	}
	for i, name := range []string{RolePropertyAgent, RoleFieldAgent, RoleTenant, RoleBuyer} {
		repo.roles[name] = &UserRole{ID: uint(i + 1), RoleName: name}
	}
	return repo
}

func (f *fakeAuthRepo) Create(user *User) error {
	if _, exists := f.users[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.nextID++
	user.ID = f.nextID
	for _, r := range f.roles {
		if r.ID == user.RoleID {
			user.Role = *r
		}
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeAuthRepo) FindByEmail(email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeAuthRepo) FindByID(userID uint) (User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return *u, nil
		}
	}
	return User{}, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) FindRoleByName(name string) (*UserRole, error) {
	r, ok := f.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeAuthRepo) ListUsers(roleName string) ([]User, error) {
	var out []User
	for _, u := range f.users {
		if roleName != "" && u.Role.RoleName != roleName {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeAuthRepo) Update(user *User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeAuthRepo) SeedRoles(names []string) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	}
}

func registerInput() RegisterInput {
	return RegisterInput{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     RoleTenant,
		Phone:    "+91 98765 43210",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewService(repo, testConfig())

	if err := svc.Register(registerInput()); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	stored := repo.users["asha@example.com"]
	if stored == nil {
		t.Fatal("user not stored")
	}
	if stored.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}
	if stored.Phone != "9876543210" {
		t.Errorf("phone = %q, want cleaned 10 digits", stored.Phone)
	}

	tokens, user, err := svc.Login(LoginInput{Email: "Asha@Example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("token pair incomplete")
	}
	if user.ID != stored.ID {
		t.Errorf("user id = %d, want %d", user.ID, stored.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeAuthRepo(), testConfig())

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"unknown role", func(in *RegisterInput) { in.Role = "landlord" }},
		{"bad phone", func(in *RegisterInput) { in.Phone = "12345" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := registerInput()
			tt.mutate(&in)
			if err := svc.Register(in); err == nil {
				t.Error("Register accepted invalid input")
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeAuthRepo(), testConfig())

	if err := svc.Register(registerInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := svc.Register(registerInput()); err == nil {
		t.Error("duplicate email accepted")
	}
}

func TestLoginFailures(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewService(repo, testConfig())
	if err := svc.Register(registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(LoginInput{Email: "nobody@example.com", Password: "x"}); err == nil {
		t.Error("login with unknown email succeeded")
	}
	if _, _, err := svc.Login(LoginInput{Email: "asha@example.com", Password: "wrong"}); err == nil {
		t.Error("login with wrong password succeeded")
	}

	repo.users["asha@example.com"].Status = "inactive"
	if _, _, err := svc.Login(LoginInput{Email: "asha@example.com", Password: "secret123"}); err == nil {
		t.Error("login with inactive account succeeded")
	}
}

func TestRefresh(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewService(repo, testConfig())
	if err := svc.Register(registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	tokens, _, err := svc.Login(LoginInput{Email: "asha@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	access, err := svc.Refresh(tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if access == "" {
		t.Error("empty access token")
	}

	if _, err := svc.Refresh("not-a-token"); err == nil {
		t.Error("refresh with garbage token succeeded")
	}
	// An access token is signed with the wrong secret for refresh.
	if _, err := svc.Refresh(tokens.AccessToken); err == nil {
		t.Error("refresh with access token succeeded")
	}
}

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"+91 98765 43210", "9876543210", false},
		{"919876543210", "9876543210", false},
		{"98765-43210", "9876543210", false},
		{"12345", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := cleanPhone(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("cleanPhone(%q) accepted", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("cleanPhone(%q) error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("cleanPhone(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestListUsers(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewService(repo, testConfig())

	if err := svc.Register(registerInput()); err != nil {
		t.Fatalf("register tenant: %v", err)
	}
	agent := registerInput()
	agent.Email = "ravi@example.com"
	agent.Role = RolePropertyAgent
	if err := svc.Register(agent); err != nil {
		t.Fatalf("register agent: %v", err)
	}

	all, err := svc.ListUsers("")
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("users = %d, want 2", len(all))
	}

	tenants, err := svc.ListUsers("Tenant")
	if err != nil {
		t.Fatalf("ListUsers(tenant) returned error: %v", err)
	}
	if len(tenants) != 1 || tenants[0].Email != "asha@example.com" {
		t.Errorf("tenants = %+v, want just asha", tenants)
	}

	if _, err := svc.ListUsers("landlord"); err == nil {
		t.Error("unknown role accepted")
	}
}

func TestGetUserByID(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewService(repo, testConfig())
	if err := svc.Register(registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.GetUserByID(1)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if u.Email != "asha@example.com" {
		t.Errorf("email = %q", u.Email)
	}

	if _, err := svc.GetUserByID(999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want record not found", err)
	}
}
