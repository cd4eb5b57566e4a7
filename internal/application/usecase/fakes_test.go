package usecase_test

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/solicitudes-api/internal/domain/entity"
	"github.com/jhoicas/solicitudes-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos, para probar los use cases sin DB ni disco.
// ──────────────────────────────────────────────────────────────────────────────

type fakeSolicitudRepo struct {
	items map[string]*entity.Solicitud
}

func newFakeSolicitudRepo() *fakeSolicitudRepo {
	return &fakeSolicitudRepo{items: make(map[string]*entity.Solicitud)}
}

func (r *fakeSolicitudRepo) Create(s *entity.Solicitud) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSolicitudRepo) GetByID(id string) (*entity.Solicitud, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSolicitudRepo) List(f repository.SolicitudFilter, limit, offset int) ([]*entity.Solicitud, int, error) {
	var matched []*entity.Solicitud
	for _, s := range r.items {
		if f.OwnerID != "" && s.UserID != f.OwnerID {
			continue
		}
		if f.Estado != "" && s.Estado != f.Estado {
			continue
		}
		if f.Prioridad != "" && s.Prioridad != f.Prioridad {
			continue
		}
		cp := *s
		matched = append(matched, &cp)
	}
	// fecha_creacion DESC, id DESC (mismo orden que la implementación SQL)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].FechaCreacion.Equal(matched[j].FechaCreacion) {
			return matched[i].FechaCreacion.After(matched[j].FechaCreacion)
		}
		return matched[i].ID > matched[j].ID
	})
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *fakeSolicitudRepo) Update(s *entity.Solicitud) error {
	if _, ok := r.items[s.ID]; !ok {
		return errors.New("no existe")
	}
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSolicitudRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type fakeFileStore struct {
	blobs   map[string]string
	seq     int
	failPut bool
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{blobs: make(map[string]string)}
}

func (s *fakeFileStore) Put(dir, originalName string, content io.Reader) (string, error) {
	if s.failPut {
		return "", errors.New("disco lleno")
	}
	var b strings.Builder
	if content != nil {
		if _, err := io.Copy(&b, content); err != nil {
			return "", err
		}
	}
	s.seq++
	path := fmt.Sprintf("%s/blob-%d%s", dir, s.seq, ext(originalName))
	s.blobs[path] = b.String()
	return path, nil
}

func (s *fakeFileStore) Delete(path string) error {
	if _, ok := s.blobs[path]; !ok {
		return errors.New("no existe: " + path)
	}
	delete(s.blobs, path)
	return nil
}

func (s *fakeFileStore) Resolve(path string) (string, error) {
	if _, ok := s.blobs[path]; !ok {
		return "", errors.New("no existe: " + path)
	}
	return "/fake/" + path, nil
}

func ext(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePassword(id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("no existe")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, int, error) {
	var all []*entity.User
	for _, u := range r.users {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}
