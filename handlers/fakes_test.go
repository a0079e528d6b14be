package handlers

import (
	"sort"
	"strings"
	"time"

	"github.com/opikzxx/ad-catering/models"
	"github.com/opikzxx/ad-catering/repository"

	"golang.org/x/crypto/bcrypt"
)

// In-memory repository fakes. They mirror the behavior of the real
// implementations closely enough for handler tests: hashing on create,
// nil results for unknown ids, sentinel errors for business rules.

type fakeUserRepo struct {
	users  []*models.User
	nextID int64
	calls  int
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	f.calls++
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users = append(f.users, &stored)
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	f.calls++
	for _, u := range f.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByID(id int64) (*models.User, error) {
	f.calls++
	for _, u := range f.users {
		if u.ID == id {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session
	calls    int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (f *fakeSessionRepo) CreateSession(s *models.Session) error {
	f.calls++
	stored := *s
	f.sessions[s.Token] = &stored
	return nil
}

func (f *fakeSessionRepo) GetSession(token string) (*models.Session, error) {
	f.calls++
	s, ok := f.sessions[token]
	if !ok || s.Expired() {
		return nil, nil
	}
	copy := *s
	return &copy, nil
}

func (f *fakeSessionRepo) DeleteSession(token string) error {
	f.calls++
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) DeleteSessionsForUser(userID int64) error {
	f.calls++
	for k, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, k)
		}
	}
	return nil
}

type fakeCategoryRepo struct {
	categories []*models.Category
	menuCounts map[int64]int
	nextID     int64
	calls      int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{menuCounts: map[int64]int{}}
}

func (f *fakeCategoryRepo) CreateCategory(c *models.Category) error {
	f.calls++
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return repository.ErrDuplicateName
		}
	}
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	f.categories = append(f.categories, &stored)
	return nil
}

func (f *fakeCategoryRepo) ListCategories(params repository.CategoryListParams) ([]*models.Category, int, error) {
	f.calls++
	var matched []*models.Category
	for _, c := range f.categories {
		if params.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(params.Search)) {
			continue
		}
		copy := *c
		copy.MenuCount = f.menuCounts[c.ID]
		matched = append(matched, &copy)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	start := (params.Page - 1) * params.Limit
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeCategoryRepo) GetCategoryByID(id int64) (*models.Category, error) {
	f.calls++
	for _, c := range f.categories {
		if c.ID == id {
			copy := *c
			copy.MenuCount = f.menuCounts[id]
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) GetCategoryByName(name string) (*models.Category, error) {
	f.calls++
	for _, c := range f.categories {
		if c.Name == name {
			copy := *c
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) UpdateCategory(c *models.Category) error {
	f.calls++
	for _, existing := range f.categories {
		if existing.Name == c.Name && existing.ID != c.ID {
			return repository.ErrDuplicateName
		}
	}
	for _, existing := range f.categories {
		if existing.ID == c.ID {
			existing.Name = c.Name
			existing.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCategoryRepo) DeleteCategory(id int64) error {
	f.calls++
	if f.menuCounts[id] > 0 {
		return repository.ErrCategoryNotEmpty
	}
	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCategoryRepo) CountMenus(categoryID int64) (int, error) {
	f.calls++
	return f.menuCounts[categoryID], nil
}

type fakeMenuRepo struct {
	menus      []*models.Menu
	categories *fakeCategoryRepo
	nextID     int64
	calls      int
}

func newFakeMenuRepo(categories *fakeCategoryRepo) *fakeMenuRepo {
	return &fakeMenuRepo{categories: categories}
}

func (f *fakeMenuRepo) CreateMenu(m *models.Menu) error {
	f.calls++
	f.nextID++
	m.ID = f.nextID
	if m.Status == "" {
		m.Status = models.MenuStatusDraft
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	stored := *m
	f.menus = append(f.menus, &stored)
	if f.categories != nil {
		f.categories.menuCounts[m.CategoryID]++
	}
	return nil
}

func (f *fakeMenuRepo) ListMenus(params repository.MenuListParams) ([]*models.Menu, int, error) {
	f.calls++
	var matched []*models.Menu
	for _, m := range f.menus {
		if params.Search != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(params.Search)) {
			continue
		}
		if params.CategoryID != 0 && m.CategoryID != params.CategoryID {
			continue
		}
		if params.Status != "" && m.Status != params.Status {
			continue
		}
		copy := *m
		matched = append(matched, &copy)
	}

	total := len(matched)
	start := (params.Page - 1) * params.Limit
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeMenuRepo) GetMenuByID(id int64) (*models.Menu, error) {
	f.calls++
	for _, m := range f.menus {
		if m.ID == id {
			copy := *m
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeMenuRepo) UpdateMenu(menu *models.Menu) error {
	f.calls++
	for i, m := range f.menus {
		if m.ID == menu.ID {
			if f.categories != nil && m.CategoryID != menu.CategoryID {
				f.categories.menuCounts[m.CategoryID]--
				f.categories.menuCounts[menu.CategoryID]++
			}
			stored := *menu
			f.menus[i] = &stored
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMenuRepo) DeleteMenu(id int64) error {
	f.calls++
	for i, m := range f.menus {
		if m.ID == id {
			if f.categories != nil {
				f.categories.menuCounts[m.CategoryID]--
			}
			f.menus = append(f.menus[:i], f.menus[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMenuRepo) PublicCatalog(categoryName string) ([]*models.CategoryWithMenus, error) {
	f.calls++
	catalog := []*models.CategoryWithMenus{}
	index := map[int64]*models.CategoryWithMenus{}
	for _, m := range f.menus {
		if m.Status != models.MenuStatusPublished {
			continue
		}
		if categoryName != "" && !strings.EqualFold(m.CategoryName, categoryName) {
			continue
		}
		entry, ok := index[m.CategoryID]
		if !ok {
			entry = &models.CategoryWithMenus{ID: m.CategoryID, Name: m.CategoryName}
			index[m.CategoryID] = entry
			catalog = append(catalog, entry)
		}
		copy := *m
		entry.Menus = append(entry.Menus, &copy)
	}
	return catalog, nil
}
