package recommend

import (
	"context"

	"github.com/DIEGUS15/readiego-book-recommender/internal/graph"
	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
)

// Explain desglosa por vecino el score colaborativo de bookID para userID.
// Cada aporte es rating*similitud y suman Score antes de redondear.
// Un libro ya calificado o un usuario desconocido dan una explicación vacía.
func (e *Engine) Explain(ctx context.Context, userID, bookID string) (*models.Explanation, error) {
	exp := &models.Explanation{
		UserID:    userID,
		BookID:    bookID,
		Neighbors: []models.NeighborContribution{},
	}

	var err error
	e.graph.View(func(s graph.Snapshot) {
		if !s.HasUser(userID) {
			return
		}
		if _, rated := s.UserBooks(userID)[bookID]; rated {
			return
		}

		var neighbors []models.ScoredID
		neighbors, err = e.similarUsers(ctx, s, userID, e.config.NeighborCount)
		if err != nil {
			return
		}

		var total float64
		for _, n := range neighbors {
			rating, ok := s.UserBooks(n.ID)[bookID]
			if !ok {
				continue
			}
			c := rating * n.Value
			total += c
			exp.Neighbors = append(exp.Neighbors, models.NeighborContribution{
				UserID:       n.ID,
				Similarity:   round2(n.Value),
				Rating:       rating,
				Contribution: round2(c),
			})
		}
		exp.Score = round2(total)
	})
	if err != nil {
		return nil, err
	}
	return exp, nil
}

// SampleUsers hasta limit usuarios, entre los primeros scan por id, con al
// menos minBooks libros calificados.
func (e *Engine) SampleUsers(minBooks, scan, limit int) []models.SampleUser {
	out := []models.SampleUser{}
	e.graph.View(func(s graph.Snapshot) {
		users := s.Users()
		if scan > 0 && len(users) > scan {
			users = users[:scan]
		}
		for _, u := range users {
			if limit > 0 && len(out) >= limit {
				break
			}
			if n := len(s.UserBooks(u)); n >= minBooks {
				out = append(out, models.SampleUser{UserID: u, BooksCount: n})
			}
		}
	})
	return out
}
