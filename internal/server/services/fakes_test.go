package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/dbx"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/assignments"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/measurements"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/photos"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/plants"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/pots"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

// memStore is an in-memory stand-in for the database. It enforces the same
// unique constraints as the schema.
type memStore struct {
	mu sync.Mutex

	nextID       int64
	users        map[string]*models.User
	plants       map[int64]*models.Plant
	pots         map[int64]*models.Pot
	links        []models.Assignment
	measurements []models.Measurement
	photos       map[int64]*models.Photo

	// failures injected per operation name
	fail map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[string]*models.User{},
		plants: map[int64]*models.Plant{},
		pots:   map[int64]*models.Pot{},
		photos: map[int64]*models.Photo{},
		fail:   map[string]error{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) failure(op string) error {
	return s.fail[op]
}

func (s *memStore) addPlant(owner int64, name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.plants[id] = &models.Plant{ID: id, Name: name, OwnerID: owner, CreatedAt: time.Now()}
	return id
}

func (s *memStore) addPot(owner int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.pots[id] = &models.Pot{ID: id, OwnerID: owner, CreatedAt: time.Now()}
	return id
}

func (s *memStore) linkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links)
}

// users

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, email, hash string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.Create"); err != nil {
		return nil, err
	}
	if _, ok := r.s.users[email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := &models.User{ID: r.s.id(), Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	r.s.users[email] = u
	return u, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.GetByEmail"); err != nil {
		return nil, err
	}
	u, ok := r.s.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// plants

type memPlants struct{ s *memStore }

func (r memPlants) Create(ctx context.Context, ownerID int64, name string) (*models.Plant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("plants.Create"); err != nil {
		return nil, err
	}
	p := &models.Plant{ID: r.s.id(), Name: name, OwnerID: ownerID, CreatedAt: time.Now()}
	r.s.plants[p.ID] = p
	cp := *p
	return &cp, nil
}

func (r memPlants) GetByID(ctx context.Context, id int64) (*models.Plant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("plants.GetByID"); err != nil {
		return nil, err
	}
	p, ok := r.s.plants[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPlants) ListByOwner(ctx context.Context, ownerID int64) ([]models.Plant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("plants.ListByOwner"); err != nil {
		return nil, err
	}
	out := []models.Plant{}
	for _, p := range r.s.plants {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memPlants) Rename(ctx context.Context, id, ownerID int64, name string) (*models.Plant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.plants[id]
	if !ok || p.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	p.Name = name
	cp := *p
	return &cp, nil
}

func (r memPlants) Delete(ctx context.Context, id, ownerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.plants[id]
	if !ok || p.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.s.plants, id)
	kept := r.s.links[:0]
	for _, l := range r.s.links {
		if l.PlantID != id {
			kept = append(kept, l)
		}
	}
	r.s.links = kept
	return nil
}

// pots

type memPots struct{ s *memStore }

func (r memPots) Create(ctx context.Context, ownerID int64) (*models.Pot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("pots.Create"); err != nil {
		return nil, err
	}
	p := &models.Pot{ID: r.s.id(), OwnerID: ownerID, CreatedAt: time.Now()}
	r.s.pots[p.ID] = p
	cp := *p
	return &cp, nil
}

func (r memPots) GetByID(ctx context.Context, id int64) (*models.Pot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("pots.GetByID"); err != nil {
		return nil, err
	}
	p, ok := r.s.pots[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPots) view(p *models.Pot) models.PotView {
	v := models.PotView{Pot: *p}
	for _, l := range r.s.links {
		if l.PotID == p.ID {
			plantID := l.PlantID
			v.PlantID = &plantID
			if plant, ok := r.s.plants[l.PlantID]; ok {
				name := plant.Name
				v.PlantName = &name
			}
		}
	}
	return v
}

func (r memPots) GetView(ctx context.Context, id, ownerID int64) (*models.PotView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pots[id]
	if !ok || p.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	v := r.view(p)
	return &v, nil
}

func (r memPots) ListViewsByOwner(ctx context.Context, ownerID int64) ([]models.PotView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("pots.ListViewsByOwner"); err != nil {
		return nil, err
	}
	out := []models.PotView{}
	for _, p := range r.s.pots {
		if p.OwnerID == ownerID {
			out = append(out, r.view(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// assignments

type memAssignments struct{ s *memStore }

func (r memAssignments) ExistsForPot(ctx context.Context, potID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("assignments.Exists"); err != nil {
		return false, err
	}
	for _, l := range r.s.links {
		if l.PotID == potID {
			return true, nil
		}
	}
	return false, nil
}

func (r memAssignments) ExistsForPlant(ctx context.Context, plantID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("assignments.Exists"); err != nil {
		return false, err
	}
	for _, l := range r.s.links {
		if l.PlantID == plantID {
			return true, nil
		}
	}
	return false, nil
}

func (r memAssignments) Create(ctx context.Context, plantID, potID int64) (*models.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("assignments.Create"); err != nil {
		return nil, err
	}
	for _, l := range r.s.links {
		if l.PlantID == plantID || l.PotID == potID {
			return nil, common.ErrorAlreadyExists
		}
	}
	a := models.Assignment{PlantID: plantID, PotID: potID, CreatedAt: time.Now()}
	r.s.links = append(r.s.links, a)
	return &a, nil
}

func (r memAssignments) DeleteOwned(ctx context.Context, plantID, potID, ownerID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("assignments.DeleteOwned"); err != nil {
		return 0, err
	}
	var removed int64
	kept := r.s.links[:0]
	for _, l := range r.s.links {
		pot, ok := r.s.pots[l.PotID]
		if l.PlantID == plantID && l.PotID == potID && ok && pot.OwnerID == ownerID {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	r.s.links = kept
	return removed, nil
}

// measurements

type memMeasurements struct{ s *memStore }

func (r memMeasurements) Create(ctx context.Context, m *models.Measurement) (*models.Measurement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("measurements.Create"); err != nil {
		return nil, err
	}
	m.ID = r.s.id()
	r.s.measurements = append(r.s.measurements, *m)
	return m, nil
}

func (r memMeasurements) ListByPot(ctx context.Context, potID int64) ([]models.Measurement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Measurement{}
	for _, m := range r.s.measurements {
		if m.PotID == potID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// photos

type memPhotos struct{ s *memStore }

func (r memPhotos) Create(ctx context.Context, plantID int64, key string) (*models.Photo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("photos.Create"); err != nil {
		return nil, err
	}
	p := &models.Photo{ID: r.s.id(), PlantID: plantID, StorageKey: key, Status: models.PhotoPending, CreatedAt: time.Now()}
	r.s.photos[p.ID] = p
	cp := *p
	return &cp, nil
}

func (r memPhotos) ListByPlant(ctx context.Context, plantID int64) ([]models.Photo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Photo{}
	for _, p := range r.s.photos {
		if p.PlantID == plantID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memPhotos) MarkCompleted(ctx context.Context, id, plantID int64) (*models.Photo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.photos[id]
	if !ok || p.PlantID != plantID {
		return nil, common.ErrorNotFound
	}
	p.Status = models.PhotoCompleted
	cp := *p
	return &cp, nil
}

// fakeRepoManager hands out repositories backed by one memStore,
// regardless of the DBTX it is given.
type fakeRepoManager struct {
	s *memStore
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository               { return memUsers{m.s} }
func (m *fakeRepoManager) Plants(dbx.DBTX) plants.Repository             { return memPlants{m.s} }
func (m *fakeRepoManager) Pots(dbx.DBTX) pots.Repository                 { return memPots{m.s} }
func (m *fakeRepoManager) Assignments(dbx.DBTX) assignments.Repository   { return memAssignments{m.s} }
func (m *fakeRepoManager) Measurements(dbx.DBTX) measurements.Repository { return memMeasurements{m.s} }
func (m *fakeRepoManager) Photos(dbx.DBTX) photos.Repository             { return memPhotos{m.s} }

// serialTx replaces withTx with a version that runs bodies one at a time,
// the way SERIALIZABLE isolation makes them appear to run.
func serialTx(t *testing.T) *int {
	t.Helper()
	orig := withTx
	t.Cleanup(func() { withTx = orig })

	var (
		mu    sync.Mutex
		calls int
	)
	withTx = func(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn dbx.TxFunc) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if opts == nil || opts.Isolation != sql.LevelSerializable {
			t.Errorf("expected serializable isolation, got %+v", opts)
		}
		return fn(ctx, nil)
	}
	return &calls
}
