package models

type User struct {
	UserID   string `json:"user_id" bson:"userId"`
	Location string `json:"location" bson:"location"`
	Age      *int   `json:"age" bson:"age,omitempty"`
}

// SampleUser usuario de ejemplo para el endpoint de debug.
type SampleUser struct {
	UserID     string `json:"user_id"`
	BooksCount int    `json:"books_count"`
}
