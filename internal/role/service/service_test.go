package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/8syncdev/elearn-auth/internal/role/domain"
)

type memRoleRepo struct {
	mu      sync.Mutex
	nextID  int64
	roles   map[int64]*domain.Role
	links   map[[2]int64]bool
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{nextID: 1, roles: map[int64]*domain.Role{}, links: map[[2]int64]bool{}}
}

func (m *memRoleRepo) GetByID(_ context.Context, id int64) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roles[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memRoleRepo) GetByName(_ context.Context, name string) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRoleRepo) List(_ context.Context, limit, offset int32) ([]*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Role
	for id := int64(1); id < m.nextID; id++ {
		if r, ok := m.roles[id]; ok {
			cp := *r
			out = append(out, &cp)
		}
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

func (m *memRoleRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.roles)), nil
}

func (m *memRoleRepo) Create(_ context.Context, r *domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.nextID
	m.nextID++
	cp := *r
	m.roles[r.ID] = &cp
	return nil
}

func (m *memRoleRepo) Update(_ context.Context, r *domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[r.ID]; !ok {
		return errors.New("no such role")
	}
	cp := *r
	m.roles[r.ID] = &cp
	return nil
}

func (m *memRoleRepo) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[id]; !ok {
		return false, nil
	}
	delete(m.roles, id)
	return true, nil
}

func (m *memRoleRepo) ListLinks(_ context.Context, limit, offset int32) ([]*domain.UserRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.UserRole
	for key := range m.links {
		out = append(out, &domain.UserRole{UserID: key[0], RoleID: key[1]})
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

func (m *memRoleRepo) CountLinks(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.links)), nil
}

func (m *memRoleRepo) HasLink(_ context.Context, userID, roleID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.links[[2]int64{userID, roleID}], nil
}

func (m *memRoleRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Role
	for id := int64(1); id < m.nextID; id++ {
		if m.links[[2]int64{userID, id}] {
			if r, ok := m.roles[id]; ok {
				cp := *r
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

func (m *memRoleRepo) HasRole(_ context.Context, userID int64, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.roles {
		if r.Name == name && m.links[[2]int64{userID, id}] {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRoleRepo) Assign(_ context.Context, userID, roleID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[[2]int64{userID, roleID}] = true
	return nil
}

func (m *memRoleRepo) Unassign(_ context.Context, userID, roleID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, roleID}
	if !m.links[key] {
		return false, nil
	}
	delete(m.links, key)
	return true, nil
}

func TestCreate_Role(t *testing.T) {
	svc := NewService(newMemRoleRepo())
	role, err := svc.Create(context.Background(), "admin", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if role.ID == 0 || role.Name != "admin" {
		t.Errorf("role = %+v", role)
	}
	if _, err := svc.Create(context.Background(), "admin", ""); !errors.Is(err, ErrRoleNameTaken) {
		t.Errorf("duplicate role name: got %v, want ErrRoleNameTaken", err)
	}
	if _, err := svc.Create(context.Background(), "", ""); err == nil {
		t.Error("empty role name should be rejected")
	}
}

func TestCount_Role(t *testing.T) {
	svc := NewService(newMemRoleRepo())
	ctx := context.Background()
	n, err := svc.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("Count = %d, %v; want 0", n, err)
	}
	for _, name := range []string{RoleAdmin, RoleUser} {
		if _, err := svc.Create(ctx, name, ""); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}
	n, err = svc.Count(ctx)
	if err != nil || n != 2 {
		t.Errorf("Count = %d, %v; want 2", n, err)
	}
}

func TestUpdate_Role(t *testing.T) {
	svc := NewService(newMemRoleRepo())
	ctx := context.Background()
	role, err := svc.Create(ctx, "moderator", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "admin", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	renamed, err := svc.Update(ctx, role.ID, "teacher", "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if renamed.Name != "teacher" {
		t.Errorf("name = %q, want teacher", renamed.Name)
	}
	if _, err := svc.Update(ctx, role.ID, "admin", ""); !errors.Is(err, ErrRoleNameTaken) {
		t.Errorf("rename to taken name: got %v, want ErrRoleNameTaken", err)
	}
	if _, err := svc.Update(ctx, 999, "x", ""); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("update missing role: got %v, want ErrRoleNotFound", err)
	}
}

func TestDelete_Role(t *testing.T) {
	svc := NewService(newMemRoleRepo())
	ctx := context.Background()
	role, err := svc.Create(ctx, "temp", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, role.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, role.ID); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("second delete: got %v, want ErrRoleNotFound", err)
	}
}

func TestAssignByNames(t *testing.T) {
	svc := NewService(newMemRoleRepo())
	ctx := context.Background()
	for _, name := range []string{RoleAdmin, RoleUser} {
		if _, err := svc.Create(ctx, name, ""); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	if err := svc.AssignByNames(ctx, 7, []string{RoleAdmin, RoleUser}); err != nil {
		t.Fatalf("AssignByNames: %v", err)
	}
	roles, err := svc.ListByUser(ctx, 7)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(roles) != 2 {
		t.Errorf("roles = %d, want 2", len(roles))
	}
	ok, err := svc.HasRole(ctx, 7, RoleAdmin)
	if err != nil || !ok {
		t.Errorf("HasRole(admin) = %v, %v; want true", ok, err)
	}

	// assigning again is a no-op
	if err := svc.AssignByNames(ctx, 7, []string{RoleAdmin}); err != nil {
		t.Fatalf("re-assign: %v", err)
	}
	roles, _ = svc.ListByUser(ctx, 7)
	if len(roles) != 2 {
		t.Errorf("roles after re-assign = %d, want 2", len(roles))
	}

	if err := svc.AssignByNames(ctx, 7, []string{"ghost"}); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("assign unknown role: got %v, want ErrRoleNotFound", err)
	}
}

func TestAssignUnassignByID(t *testing.T) {
	svc := NewService(newMemRoleRepo())
	ctx := context.Background()
	role, err := svc.Create(ctx, RoleUser, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Assign(ctx, 7, role.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	ok, err := svc.HasLink(ctx, 7, role.ID)
	if err != nil || !ok {
		t.Errorf("HasLink = %v, %v; want true", ok, err)
	}
	if err := svc.Assign(ctx, 7, 999); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("assign to missing role: got %v, want ErrRoleNotFound", err)
	}

	links, total, err := svc.ListLinks(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListLinks: %v", err)
	}
	if total != 1 || len(links) != 1 {
		t.Errorf("links = %d (total %d), want 1", len(links), total)
	}

	if err := svc.Unassign(ctx, 7, role.ID); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	if err := svc.Unassign(ctx, 7, role.ID); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("second unassign: got %v, want ErrRoleNotFound", err)
	}
}

func TestUnassignByNames(t *testing.T) {
	svc := NewService(newMemRoleRepo())
	ctx := context.Background()
	if _, err := svc.Create(ctx, RoleAdmin, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.AssignByNames(ctx, 7, []string{RoleAdmin}); err != nil {
		t.Fatalf("AssignByNames: %v", err)
	}
	if err := svc.UnassignByNames(ctx, 7, []string{RoleAdmin, "ghost"}); err != nil {
		t.Fatalf("UnassignByNames: %v", err)
	}
	ok, err := svc.HasRole(ctx, 7, RoleAdmin)
	if err != nil || ok {
		t.Errorf("HasRole after unassign = %v, %v; want false", ok, err)
	}
}
