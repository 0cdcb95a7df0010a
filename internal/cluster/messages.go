package cluster

import "github.com/DIEGUS15/readiego-book-recommender/internal/models"

// Tarea enviada desde el coordinador (API) a cada nodo ML: calcular la
// similitud de Jaccard del libro BookID contra su parte de los candidatos.
type ShardTask struct {
	BookID  string `json:"bookId"`
	ShardID int    `json:"shardId"` // id del shard (0..Shards-1)
	Shards  int    `json:"shards"`  // total de shards/nodos
}

// Respuesta de un nodo ML a la API. Los parciales no vienen ordenados ni
// redondeados; el coordinador los combina y corta el top N.
type ShardResponse struct {
	ShardID  int               `json:"shardId"`
	NodeID   string            `json:"nodeId"`
	Partials []models.ScoredID `json:"partials"`
	Error    string            `json:"error,omitempty"`
}
