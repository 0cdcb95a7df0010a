package models

// Book es la metadata de un libro tal como viene en Books.csv.
type Book struct {
	ISBN      string `json:"isbn" bson:"isbn"`
	Title     string `json:"title" bson:"title"`
	Author    string `json:"author" bson:"author"`
	Year      *int   `json:"year" bson:"year,omitempty"`
	Publisher string `json:"publisher" bson:"publisher"`
	ImageS    string `json:"-" bson:"imageS,omitempty"`
	ImageURL  string `json:"image_url" bson:"imageM,omitempty"`
	ImageL    string `json:"-" bson:"imageL,omitempty"`
}

// RatedBook es un libro junto con la calificación que le dio un usuario.
type RatedBook struct {
	Book
	UserRating float64 `json:"user_rating"`
}
