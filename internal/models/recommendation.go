package models

import "time"

const (
	MethodCollaborative  = "collaborative_filtering"
	MethodItemSimilarity = "item_similarity"
)

// Recommendation es un ítem recomendado. Score se llena en filtrado
// colaborativo y Similarity en similitud de libros; Method indica cuál.
type Recommendation struct {
	BookID     string   `json:"book_id" bson:"bookId"`
	Score      *float64 `json:"score,omitempty" bson:"score,omitempty"`
	Similarity *float64 `json:"similarity,omitempty" bson:"similarity,omitempty"`
	Method     string   `json:"method" bson:"method"`
	BookInfo   *Book    `json:"book_info,omitempty" bson:"-"`
}

// History es el documento que guardamos en Mongo por cada recomendación servida.
type History struct {
	ID        string           `bson:"_id,omitempty" json:"id"`
	UserID    string           `bson:"userId,omitempty" json:"userId,omitempty"`
	BookID    string           `bson:"bookId,omitempty" json:"bookId,omitempty"`
	Method    string           `bson:"method" json:"method"`
	Params    map[string]any   `bson:"params" json:"params"`
	Items     []Recommendation `bson:"items" json:"items"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
}

// ====== Explicación de una recomendación colaborativa ======

type NeighborContribution struct {
	UserID       string  `json:"user_id"`
	Similarity   float64 `json:"similarity"`
	Rating       float64 `json:"rating"`
	Contribution float64 `json:"contribution"`
}

type Explanation struct {
	UserID    string                 `json:"user_id"`
	BookID    string                 `json:"book_id"`
	Score     float64                `json:"score"`
	Neighbors []NeighborContribution `json:"neighbors"`
}
