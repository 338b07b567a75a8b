package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/8syncdev/elearn-auth/internal/security"
	"github.com/8syncdev/elearn-auth/internal/user/domain"
)

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) List(_ context.Context, limit, offset int32, search string) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.User
	for id := int64(1); id < m.nextID; id++ {
		u, ok := m.users[id]
		if !ok {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(search)) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	if int(offset) >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if int(limit) < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memUserRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.nextID
	m.nextID++
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) Update(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return errors.New("no such user")
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

func newTestService() (*Service, *memUserRepo) {
	repo := newMemUserRepo()
	hasher := &security.Hasher{Iterations: 1000}
	return NewService(repo, hasher), repo
}

func TestCreate_HashesPassword(t *testing.T) {
	svc, _ := newTestService()
	u, err := svc.Create(context.Background(), CreateInput{
		Username: "alice01",
		Password: "Str0ngP@ss!",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Error("Create should assign an ID")
	}
	if u.Password == "Str0ngP@ss!" {
		t.Error("password stored in plaintext")
	}
	if !strings.Contains(u.Password, ":") {
		t.Errorf("stored password %q is not in salt:hash form", u.Password)
	}
	if !u.IsActive {
		t.Error("new accounts should be active")
	}
	hasher := &security.Hasher{Iterations: 1000}
	if !hasher.Verify("Str0ngP@ss!", u.Password) {
		t.Error("stored hash does not verify against original password")
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, CreateInput{Username: "alice01", Password: "Str0ngP@ss!"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Username: "alice01", Password: "0therP@ss!"}); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate username: got %v, want ErrUsernameTaken", err)
	}
}

func TestCreate_WeakPassword(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Create(context.Background(), CreateInput{Username: "alice01", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("short password: got %v, want ErrWeakPassword", err)
	}
}

func TestCreate_InvalidUsername(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Create(context.Background(), CreateInput{Username: "ab", Password: "Str0ngP@ss!"}); err == nil {
		t.Error("username shorter than 5 chars should be rejected")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Get missing user: got %v, want ErrUserNotFound", err)
	}
	if _, err := svc.GetByUsername(context.Background(), "nobody1"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByUsername missing user: got %v, want ErrUserNotFound", err)
	}
}

func TestUpdate_RehashOnlyWhenPasswordProvided(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Username: "alice01", Password: "Str0ngP@ss!"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	email := "new@example.com"
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Email: &email})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Password != created.Password {
		t.Error("password hash changed on update without new password")
	}
	if updated.Email != email {
		t.Errorf("email = %q, want %q", updated.Email, email)
	}

	newPass := "N3wP@ssword!"
	updated, err = svc.Update(ctx, created.ID, UpdateInput{Password: &newPass})
	if err != nil {
		t.Fatalf("Update with password: %v", err)
	}
	if updated.Password == created.Password {
		t.Error("password hash unchanged after supplying new password")
	}
	hasher := &security.Hasher{Iterations: 1000}
	if !hasher.Verify(newPass, updated.Password) {
		t.Error("new hash does not verify against new password")
	}
}

func TestUpdate_EmptyPasswordKeepsHash(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Username: "alice01", Password: "Str0ngP@ss!"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	empty := ""
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Password: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Password != created.Password {
		t.Error("empty password should leave the stored hash unchanged")
	}
}

func TestUpdate_UsernameConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, CreateInput{Username: "alice01", Password: "Str0ngP@ss!"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	bob, err := svc.Create(ctx, CreateInput{Username: "bobby01", Password: "Str0ngP@ss!"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	taken := "alice01"
	if _, err := svc.Update(ctx, bob.ID, UpdateInput{Username: &taken}); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("rename to taken username: got %v, want ErrUsernameTaken", err)
	}
}

func TestUpdate_StatusFlags(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Username: "alice01", Password: "Str0ngP@ss!"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	blocked := true
	updated, err := svc.Update(ctx, created.ID, UpdateInput{IsBlocked: &blocked})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.IsBlocked {
		t.Error("IsBlocked not applied")
	}
	if updated.CanAuthenticate() {
		t.Error("blocked account should fail the status gates")
	}
}

func TestList_Pagination(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for _, name := range []string{"alice01", "bobby01", "carol01"} {
		if _, err := svc.Create(ctx, CreateInput{Username: name, Password: "Str0ngP@ss!"}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	users, total, err := svc.List(ctx, 1, 2, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(users) != 2 {
		t.Errorf("page 1 size = %d, want 2", len(users))
	}

	users, _, err = svc.List(ctx, 2, 2, "")
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("page 2 size = %d, want 1", len(users))
	}

	// out-of-range page defaults are clamped, not rejected
	users, _, err = svc.List(ctx, 0, 0, "")
	if err != nil {
		t.Fatalf("List with zero page/size: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("clamped list size = %d, want 3", len(users))
	}
}

func TestList_Search(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for _, name := range []string{"alice01", "bobby01"} {
		if _, err := svc.Create(ctx, CreateInput{Username: name, Password: "Str0ngP@ss!"}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}
	users, _, err := svc.List(ctx, 1, 10, "alice")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 1 || users[0].Username != "alice01" {
		t.Errorf("search result = %+v, want single alice01", users)
	}
}

func TestVerifyPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, CreateInput{Username: "alice01", Password: "Str0ngP@ss!"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := svc.VerifyPassword(ctx, "alice01", "Str0ngP@ss!")
	if err != nil || !ok {
		t.Errorf("VerifyPassword correct = %v, %v; want true", ok, err)
	}
	ok, err = svc.VerifyPassword(ctx, "alice01", "WrongP@ss1")
	if err != nil || ok {
		t.Errorf("VerifyPassword wrong = %v, %v; want false", ok, err)
	}
	ok, err = svc.VerifyPassword(ctx, "nobody1", "Str0ngP@ss!")
	if err != nil || ok {
		t.Errorf("VerifyPassword missing user = %v, %v; want false, nil", ok, err)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Username: "alice01", Password: "Str0ngP@ss!"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second delete: got %v, want ErrUserNotFound", err)
	}
}
