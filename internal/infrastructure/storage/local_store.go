// Package storage implementa el FileStore sobre disco local. Los objetos se
// direccionan por ruta relativa al directorio base; las solicitudes guardan
// esa ruta en la DB.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/solicitudes-api/internal/application/ports"
	"github.com/jhoicas/solicitudes-api/internal/domain"
)

var _ ports.FileStore = (*LocalStore)(nil)

// LocalStore almacén de adjuntos en el filesystem local.
type LocalStore struct {
	basePath string
}

// NewLocalStore construye el almacén sobre el directorio base dado (se crea
// si no existe).
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio base: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// Put guarda el contenido bajo dir con un nombre generado (UUID + extensión
// original) y devuelve la ruta relativa del objeto.
func (s *LocalStore) Put(dir, originalName string, content io.Reader) (string, error) {
	relDir, err := s.safeRel(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(s.basePath, relDir), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio %s: %w", dir, err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	rel := filepath.ToSlash(filepath.Join(relDir, name))
	abs := filepath.Join(s.basePath, relDir, name)

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(abs)
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("cerrar archivo: %w", err)
	}
	return rel, nil
}

// Delete elimina el objeto en la ruta relativa dada.
func (s *LocalStore) Delete(path string) error {
	rel, err := s.safeRel(path)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.basePath, rel)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return fmt.Errorf("borrar %s: %w", path, err)
	}
	return nil
}

// Resolve devuelve la ruta absoluta del objeto, o ErrNotFound si no existe.
func (s *LocalStore) Resolve(path string) (string, error) {
	rel, err := s.safeRel(path)
	if err != nil {
		return "", err
	}
	abs := filepath.Join(s.basePath, rel)
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return abs, nil
}

// safeRel normaliza una ruta y rechaza cualquier escape del directorio base.
func (s *LocalStore) safeRel(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || clean == "" || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: ruta inválida: %q", domain.ErrInvalidInput, path)
	}
	return clean, nil
}
