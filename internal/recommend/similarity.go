package recommend

import (
	"math"
	"sort"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
)

// Jaccard |A ∩ B| / |A ∪ B| sobre las claves de a y b.
// Dos conjuntos vacíos tienen similitud 0.
func Jaccard[A, B any](a map[string]A, b map[string]B) float64 {
	var inter int
	if len(a) <= len(b) {
		for k := range a {
			if _, ok := b[k]; ok {
				inter++
			}
		}
	} else {
		for k := range b {
			if _, ok := a[k]; ok {
				inter++
			}
		}
	}

	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// sortScored ordena por valor descendente y luego id ascendente.
func sortScored(s []models.ScoredID) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Value != s[j].Value {
			return s[i].Value > s[j].Value
		}
		return s[i].ID < s[j].ID
	})
}

func topScored(s []models.ScoredID, n int) []models.ScoredID {
	sortScored(s)
	if len(s) > n {
		s = s[:n]
	}
	return s
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func sortedSet(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
