// Package ports define contratos hacia servicios externos que la capa de
// aplicación consume pero no implementa.
package ports

import "io"

// FileStore es el puerto del almacén de adjuntos (blobs direccionados por
// ruta). Las solicitudes guardan solo la ruta relativa devuelta por Put.
//
// Contrato de orden en actualizaciones: el blob nuevo se escribe (Put) antes
// de borrar el anterior y antes de persistir la fila; un fallo de Put aborta
// la operación, un fallo de Delete es best-effort.
type FileStore interface {
	// Put guarda el contenido bajo el directorio lógico dado y devuelve la
	// ruta relativa del objeto. El nombre final es generado por el store;
	// originalName solo aporta la extensión.
	Put(dir, originalName string, content io.Reader) (string, error)

	// Delete elimina el objeto en la ruta relativa dada.
	Delete(path string) error

	// Resolve devuelve la ruta absoluta del objeto, o error si no existe.
	Resolve(path string) (string, error)
}
