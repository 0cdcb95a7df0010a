package models

// RatingRecord es lo que el loader entrega al grafo: ids ya normalizados a string.
type RatingRecord struct {
	UserID string  `json:"user_id"`
	BookID string  `json:"book_id"`
	Rating float64 `json:"rating"`
}

// Stats resumen del grafo para /api/health.
type Stats struct {
	Users   int     `json:"users"`
	Books   int     `json:"books"`
	Ratings int     `json:"ratings"`
	Density float64 `json:"density"`
}

// ScoredID un id con su puntaje parcial; viaja entre api y nodos ML.
type ScoredID struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}
