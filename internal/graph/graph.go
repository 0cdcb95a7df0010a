// Package graph guarda la relación bipartita usuario-libro de calificaciones.
//
// Usuarios y libros viven en mapas de adyacencia separados, así un id de
// usuario y un ISBN con el mismo texto nunca chocan. Cada calificación se
// guarda dos veces, una por lado: la búsqueda de vecinos es O(1) en ambas
// direcciones y el lado de libros sirve de índice invertido libro -> lectores
// para la similitud entre libros.
//
// Un Graph se puede usar desde varias goroutines. Las escrituras pasan por un
// único lock y las lecturas lo comparten. Los escaneos largos van por View
// para ver un solo estado consistente.
package graph

import (
	"sort"
	"sync"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
)

// Graph grafo de interacciones usuario-libro. El valor cero no sirve; usar New.
type Graph struct {
	mu      sync.RWMutex
	users   map[string]map[string]float64 // userID -> bookID -> rating
	books   map[string]map[string]float64 // bookID -> userID -> rating
	ratings int
}

// New devuelve un grafo vacío.
func New() *Graph {
	return &Graph{
		users: make(map[string]map[string]float64),
		books: make(map[string]map[string]float64),
	}
}

// AddRating registra ambos nodos si hace falta y fija el peso de la arista.
// Repetir el par pisa la calificación anterior. El valor se guarda tal cual.
func (g *Graph) AddRating(userID, bookID string, rating float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addRating(userID, bookID, rating)
}

// Load carga un lote de registros bajo un solo lock de escritura.
func (g *Graph) Load(records []models.RatingRecord) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range records {
		g.addRating(r.UserID, r.BookID, r.Rating)
	}
}

func (g *Graph) addRating(userID, bookID string, rating float64) {
	ub, ok := g.users[userID]
	if !ok {
		ub = make(map[string]float64)
		g.users[userID] = ub
	}
	bu, ok := g.books[bookID]
	if !ok {
		bu = make(map[string]float64)
		g.books[bookID] = bu
	}
	if _, exists := ub[bookID]; !exists {
		g.ratings++
	}
	ub[bookID] = rating
	bu[userID] = rating
}

// UserBooks copia de los libros calificados por userID; vacío si no existe.
func (g *Graph) UserBooks(userID string) map[string]float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return copyEdges(g.users[userID])
}

// BookUsers copia de los usuarios que calificaron bookID; vacío si no existe.
func (g *Graph) BookUsers(bookID string) map[string]float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return copyEdges(g.books[bookID])
}

// Rating peso guardado, o 0 si la arista no existe.
func (g *Graph) Rating(userID, bookID string) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.users[userID][bookID]
}

// HasUser indica si userID está en la partición de usuarios.
func (g *Graph) HasUser(userID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.users[userID]
	return ok
}

// HasBook indica si bookID está en la partición de libros.
func (g *Graph) HasBook(bookID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.books[bookID]
	return ok
}

func (g *Graph) UserCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.users)
}

func (g *Graph) BookCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.books)
}

// RatingCount cantidad de aristas.
func (g *Graph) RatingCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ratings
}

// Stats tamaño de cada partición, aristas y densidad bipartita
// ratings / (users * books).
func (g *Graph) Stats() models.Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := models.Stats{
		Users:   len(g.users),
		Books:   len(g.books),
		Ratings: g.ratings,
	}
	if s.Users > 0 && s.Books > 0 {
		s.Density = float64(s.Ratings) / (float64(s.Users) * float64(s.Books))
	}
	return s
}

// View ejecuta fn con el lock de lectura tomado. El Snapshot no debe salir de fn.
func (g *Graph) View(fn func(s Snapshot)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn(Snapshot{g: g})
}

// Snapshot vista de lectura sin lock, válida solo dentro de View.
// Los mapas que devuelve son los del grafo: no modificarlos.
type Snapshot struct {
	g *Graph
}

func (s Snapshot) UserBooks(userID string) map[string]float64 { return s.g.users[userID] }

func (s Snapshot) BookUsers(bookID string) map[string]float64 { return s.g.books[bookID] }

func (s Snapshot) HasUser(userID string) bool {
	_, ok := s.g.users[userID]
	return ok
}

func (s Snapshot) HasBook(bookID string) bool {
	_, ok := s.g.books[bookID]
	return ok
}

func (s Snapshot) Users() []string { return sortedKeys(s.g.users) }

func copyEdges(src map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
