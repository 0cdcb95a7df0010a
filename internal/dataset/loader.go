// Package dataset lee los CSV de Book-Crossing (Books.csv, Ratings.csv,
// Users.csv) y los convierte en registros para el grafo más metadata.
//
// Los archivos vienen en latin-1 y traen líneas rotas; esas se saltan y se
// cuentan en vez de abortar la carga. Las calificaciones 0 son implícitas y
// nunca llegan al grafo.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
)

const (
	BooksFile   = "Books.csv"
	RatingsFile = "Ratings.csv"
	UsersFile   = "Users.csv"

	// SampleSeed semilla fija para que la muestra sea reproducible.
	SampleSeed = 42
)

// Dataset todo lo leído del directorio de datos.
type Dataset struct {
	Books   []models.Book
	Ratings []models.RatingRecord
	Users   []models.User
	// Skipped líneas mal formadas por archivo.
	Skipped map[string]int
}

// Loader lee los CSV de Dir.
type Loader struct {
	Dir string
	// SampleSize > 0 deja solo esa cantidad de ratings, al azar con SampleSeed.
	SampleSize int
	Logger     zerolog.Logger
}

// LoadAll lee libros, ratings y usuarios.
func (l *Loader) LoadAll() (*Dataset, error) {
	ds := &Dataset{Skipped: make(map[string]int)}

	l.Logger.Info().Str("file", BooksFile).Msg("loading")
	books, skipped, err := readFile(filepath.Join(l.Dir, BooksFile), ParseBooks)
	if err != nil {
		return nil, err
	}
	ds.Books, ds.Skipped[BooksFile] = books, skipped

	ratings, skipped, err := l.loadRatings()
	if err != nil {
		return nil, err
	}
	ds.Ratings, ds.Skipped[RatingsFile] = ratings, skipped

	l.Logger.Info().Str("file", UsersFile).Msg("loading")
	users, skipped, err := readFile(filepath.Join(l.Dir, UsersFile), ParseUsers)
	if err != nil {
		return nil, err
	}
	ds.Users, ds.Skipped[UsersFile] = users, skipped

	l.Logger.Info().
		Int("books", len(ds.Books)).
		Int("ratings", len(ds.Ratings)).
		Int("users", len(ds.Users)).
		Interface("skipped", ds.Skipped).
		Msg("dataset loaded")
	return ds, nil
}

// LoadRatings lee solo Ratings.csv y aplica SampleSize.
func (l *Loader) LoadRatings() ([]models.RatingRecord, error) {
	ratings, _, err := l.loadRatings()
	return ratings, err
}

func (l *Loader) loadRatings() ([]models.RatingRecord, int, error) {
	l.Logger.Info().Str("file", RatingsFile).Msg("loading")
	ratings, skipped, err := readFile(filepath.Join(l.Dir, RatingsFile), ParseRatings)
	if err != nil {
		return nil, 0, err
	}
	if skipped > 0 {
		l.Logger.Warn().Str("file", RatingsFile).Int("skipped", skipped).Msg("malformed lines skipped")
	}

	if l.SampleSize > 0 && l.SampleSize < len(ratings) {
		l.Logger.Warn().Int("sample_size", l.SampleSize).Int("total", len(ratings)).Msg("using a sample of the ratings")
		ratings = Sample(ratings, l.SampleSize, SampleSeed)
	}
	return ratings, skipped, nil
}

func readFile[T any](path string, parse func(io.Reader) ([]T, int, error)) ([]T, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	out, skipped, err := parse(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, skipped, nil
}

// ParseRatings lee filas "User-ID,ISBN,Book-Rating". Se descartan las que no
// tienen id, tienen rating ilegible o rating <= 0; solo las mal formadas
// cuentan como saltadas.
func ParseRatings(r io.Reader) ([]models.RatingRecord, int, error) {
	var out []models.RatingRecord
	skipped, err := eachRow(r, 3, func(row []string) bool {
		userID := strings.TrimSpace(row[0])
		bookID := strings.TrimSpace(row[1])
		rating, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if userID == "" || bookID == "" || err != nil {
			return false
		}
		if rating > 0 {
			out = append(out, models.RatingRecord{UserID: userID, BookID: bookID, Rating: rating})
		}
		return true
	})
	return out, skipped, err
}

// ParseBooks lee el formato de 8 columnas de Books.csv.
func ParseBooks(r io.Reader) ([]models.Book, int, error) {
	var out []models.Book
	skipped, err := eachRow(r, 8, func(row []string) bool {
		isbn := strings.TrimSpace(row[0])
		if isbn == "" {
			return false
		}
		out = append(out, models.Book{
			ISBN:      isbn,
			Title:     orUnknown(row[1]),
			Author:    orUnknown(row[2]),
			Year:      parseInt(row[3]),
			Publisher: strings.TrimSpace(row[4]),
			ImageS:    strings.TrimSpace(row[5]),
			ImageURL:  strings.TrimSpace(row[6]),
			ImageL:    strings.TrimSpace(row[7]),
		})
		return true
	})
	return out, skipped, err
}

// ParseUsers lee filas "User-ID,Location,Age". Edad ausente o <= 0 queda en nil.
func ParseUsers(r io.Reader) ([]models.User, int, error) {
	var out []models.User
	skipped, err := eachRow(r, 3, func(row []string) bool {
		id := strings.TrimSpace(row[0])
		if id == "" {
			return false
		}
		age := parseInt(row[2])
		if age != nil && *age <= 0 {
			age = nil
		}
		out = append(out, models.User{UserID: id, Location: strings.TrimSpace(row[1]), Age: age})
		return true
	})
	return out, skipped, err
}

// eachRow salta el encabezado y llama a fn por cada fila de exactamente cols
// campos. Las filas con otra cantidad de campos, comillas rotas o rechazadas
// por fn se cuentan.
func eachRow(r io.Reader, cols int, fn func(row []string) bool) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	skipped := 0
	header := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return skipped, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			skipped++
			continue
		}
		if err != nil {
			return skipped, err
		}
		if header {
			header = false
			continue
		}
		if len(row) != cols || !fn(row) {
			skipped++
		}
	}
}

// Sample elige n registros al azar con semilla fija, respetando el orden del archivo.
func Sample(records []models.RatingRecord, n int, seed int64) []models.RatingRecord {
	if n <= 0 || n >= len(records) {
		return records
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible sampling, not security
	idx := rng.Perm(len(records))[:n]
	sort.Ints(idx)

	out := make([]models.RatingRecord, n)
	for i, j := range idx {
		out[i] = records[j]
	}
	return out
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Unknown"
	}
	return s
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}
