package services

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/sweetshop/app/models"
	"github.com/shashiranjanraj/sweetshop/app/repositories"
)

// fakeUsers is an in-memory UserRepository keyed by email.
type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.Email]; ok {
		return repositories.ErrDuplicateEmail
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	f.users[user.Email] = &cp
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ID.Hex() == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) UpdateRole(_ context.Context, email, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Role = role
	return nil
}

// fakeSweets is an in-memory SweetRepository keyed by hex id.
type fakeSweets struct {
	mu     sync.Mutex
	sweets map[string]models.Sweet
}

func newFakeSweets() *fakeSweets {
	return &fakeSweets{sweets: map[string]models.Sweet{}}
}

func (f *fakeSweets) Insert(_ context.Context, sweet *models.Sweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sweet.ID.IsZero() {
		sweet.ID = primitive.NewObjectID()
	}
	f.sweets[sweet.ID.Hex()] = *sweet
	return nil
}

func (f *fakeSweets) FindByID(_ context.Context, id string) (*models.Sweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sweet, ok := f.sweets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &sweet, nil
}

func (f *fakeSweets) Find(_ context.Context, filter repositories.SweetFilter) ([]models.Sweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Sweet{}
	for _, sweet := range f.sweets {
		if filter.Name != "" && !strings.Contains(strings.ToLower(sweet.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && !strings.Contains(strings.ToLower(sweet.Category), strings.ToLower(filter.Category)) {
			continue
		}
		if filter.MinPrice != nil && sweet.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && sweet.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, sweet)
	}
	return out, nil
}

func (f *fakeSweets) Purchase(_ context.Context, id string) (*models.Sweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sweet, ok := f.sweets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if sweet.Quantity <= 0 {
		return nil, repositories.ErrOutOfStock
	}
	sweet.Quantity--
	sweet.Sold++
	f.sweets[id] = sweet
	return &sweet, nil
}

func (f *fakeSweets) AddQuantity(_ context.Context, id string, n int) (*models.Sweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sweet, ok := f.sweets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	sweet.Quantity += n
	f.sweets[id] = sweet
	return &sweet, nil
}

func (f *fakeSweets) Update(_ context.Context, id string, patch repositories.SweetPatch) (*models.Sweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sweet, ok := f.sweets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if patch.Name != nil {
		sweet.Name = *patch.Name
	}
	if patch.Category != nil {
		sweet.Category = *patch.Category
	}
	if patch.Price != nil {
		sweet.Price = *patch.Price
	}
	if patch.Image != nil {
		sweet.Image = *patch.Image
	}
	f.sweets[id] = sweet
	return &sweet, nil
}

func (f *fakeSweets) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.sweets[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.sweets, id)
	return nil
}

// memDisk is an in-memory storage.Disk.
type memDisk struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemDisk() *memDisk {
	return &memDisk{files: map[string][]byte{}}
}

func (d *memDisk) Put(_ context.Context, path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[path] = append([]byte(nil), content...)
	return nil
}

func (d *memDisk) Get(_ context.Context, path string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.files[path], nil
}

func (d *memDisk) Exists(_ context.Context, path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[path]
	return ok
}

func (d *memDisk) Delete(_ context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
	return nil
}

func (d *memDisk) URL(path string) string {
	return "http://cdn.test/" + path
}
