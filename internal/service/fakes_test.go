package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-labs/incident-service/internal/domain"
	"github.com/helpdesk-labs/incident-service/internal/repository"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.users[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeAdminRepo struct {
	admins map[string]*domain.Administrator
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*domain.Administrator{}}
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id int64) (*domain.Administrator, error) {
	for _, a := range f.admins {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Administrator, error) {
	if a, ok := f.admins[email]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) List(_ context.Context) ([]domain.Administrator, error) {
	out := make([]domain.Administrator, 0, len(f.admins))
	for _, a := range f.admins {
		out = append(out, *a)
	}
	return out, nil
}

type fakeStatusRepo struct {
	statuses map[int64]domain.Status
}

func newFakeStatusRepo(statuses ...domain.Status) *fakeStatusRepo {
	repo := &fakeStatusRepo{statuses: map[int64]domain.Status{}}
	for _, s := range statuses {
		repo.statuses[s.ID] = s
	}
	return repo
}

func (f *fakeStatusRepo) List(_ context.Context) ([]domain.Status, error) {
	out := make([]domain.Status, 0, len(f.statuses))
	for _, s := range f.statuses {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStatusRepo) GetByID(_ context.Context, id int64) (*domain.Status, error) {
	if s, ok := f.statuses[id]; ok {
		return &s, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStatusRepo) Create(_ context.Context, name string) (*domain.Status, error) {
	id := int64(len(f.statuses) + 1)
	s := domain.Status{ID: id, Name: name}
	f.statuses[id] = s
	return &s, nil
}

func (f *fakeStatusRepo) Update(_ context.Context, id int64, name string) error {
	if _, ok := f.statuses[id]; !ok {
		return pgx.ErrNoRows
	}
	f.statuses[id] = domain.Status{ID: id, Name: name}
	return nil
}

func (f *fakeStatusRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.statuses[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.statuses, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[int64]domain.Category
	referenced map[int64]bool
}

func newFakeCategoryRepo(categories ...domain.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: map[int64]domain.Category{}, referenced: map[int64]bool{}}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	if c, ok := f.categories[id]; ok {
		return &c, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCategoryRepo) Create(_ context.Context, name string) (*domain.Category, error) {
	id := int64(len(f.categories) + 1)
	c := domain.Category{ID: id, Name: name}
	f.categories[id] = c
	return &c, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, id int64, name string) error {
	if _, ok := f.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	f.categories[id] = domain.Category{ID: id, Name: name}
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	if f.referenced[id] {
		return repository.ErrReferenced
	}
	delete(f.categories, id)
	return nil
}

type fakeIncidentRepo struct {
	incidents  map[int64]*domain.IncidentDetail
	referenced map[int64]bool
	nextID     int64
	lastFilter repository.IncidentFilter
}

func newFakeIncidentRepo() *fakeIncidentRepo {
	return &fakeIncidentRepo{
		incidents:  map[int64]*domain.IncidentDetail{},
		referenced: map[int64]bool{},
		nextID:     1,
	}
}

func (f *fakeIncidentRepo) Create(_ context.Context, incident *domain.Incident) error {
	incident.ID = f.nextID
	f.nextID++
	f.incidents[incident.ID] = &domain.IncidentDetail{Incident: *incident}
	return nil
}

func (f *fakeIncidentRepo) Update(_ context.Context, incident *domain.Incident) error {
	if _, ok := f.incidents[incident.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.incidents[incident.ID] = &domain.IncidentDetail{Incident: *incident}
	return nil
}

func (f *fakeIncidentRepo) GetByID(_ context.Context, id int64) (*domain.IncidentDetail, error) {
	if d, ok := f.incidents[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeIncidentRepo) ListPage(_ context.Context, filter repository.IncidentFilter) ([]domain.IncidentDetail, int64, error) {
	f.lastFilter = filter
	matched := make([]domain.IncidentDetail, 0, len(f.incidents))
	for _, d := range f.incidents {
		if filter.OwnerUserID != nil && d.OwnerUserID != *filter.OwnerUserID {
			continue
		}
		if filter.StatusID != nil && d.StatusID != *filter.StatusID {
			continue
		}
		if filter.CategoryID != nil && d.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.SearchTerm != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
			if needle != "" && !strings.Contains(strings.ToLower(d.Title), needle) &&
				!strings.Contains(strings.ToLower(d.Description), needle) {
				continue
			}
		}
		matched = append(matched, *d)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (f *fakeIncidentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.incidents[id]; !ok {
		return pgx.ErrNoRows
	}
	if f.referenced[id] {
		return repository.ErrReferenced
	}
	delete(f.incidents, id)
	return nil
}

type fakeAuditRepo struct {
	entries map[int64]*domain.AuditDetail
	nextID  int64
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{entries: map[int64]*domain.AuditDetail{}, nextID: 1}
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditEntry) error {
	entry.ID = f.nextID
	f.nextID++
	f.entries[entry.ID] = &domain.AuditDetail{AuditEntry: *entry}
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context) ([]domain.AuditDetail, error) {
	out := make([]domain.AuditDetail, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeAuditRepo) ListByIncident(_ context.Context, incidentID int64) ([]domain.AuditDetail, error) {
	out := []domain.AuditDetail{}
	for _, e := range f.entries {
		if e.IncidentID == incidentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeAuditRepo) GetByID(_ context.Context, id int64) (*domain.AuditDetail, error) {
	if e, ok := f.entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuditRepo) Update(_ context.Context, entry *domain.AuditEntry) error {
	if _, ok := f.entries[entry.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.entries[entry.ID] = &domain.AuditDetail{AuditEntry: *entry}
	return nil
}

func (f *fakeAuditRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.entries[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.entries, id)
	return nil
}
