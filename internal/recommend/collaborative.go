package recommend

import (
	"sort"

	"skincare-advisor/internal/models"
	"skincare-advisor/internal/telemetry"
)

const defaultMaxNeighbors = 10

// Neighbor is another user who rated at least one product the target user rated.
type Neighbor struct {
	UserID int64
	// Similarity is shared rated products / products rated by the target user.
	Similarity float64
}

// CollaborativeScorer predicts preference for unseen products from the
// ratings of overlapping users.
type CollaborativeScorer struct {
	MaxNeighbors int
}

func NewCollaborativeScorer(maxNeighbors int) *CollaborativeScorer {
	if maxNeighbors <= 0 {
		maxNeighbors = defaultMaxNeighbors
	}
	return &CollaborativeScorer{MaxNeighbors: maxNeighbors}
}

type feedbackIndex struct {
	byUser    map[int64][]models.Feedback
	byProduct map[int64][]models.Feedback
}

func indexFeedback(feedback []models.Feedback) feedbackIndex {
	idx := feedbackIndex{
		byUser:    make(map[int64][]models.Feedback),
		byProduct: make(map[int64][]models.Feedback),
	}
	for _, f := range feedback {
		idx.byUser[f.UserID] = append(idx.byUser[f.UserID], f)
		idx.byProduct[f.ProductID] = append(idx.byProduct[f.ProductID], f)
	}
	return idx
}

// Neighbors returns up to MaxNeighbors users ordered by similarity. Equal
// similarities keep the order in which the users were first encountered
// while walking the target user's ratings.
func (s *CollaborativeScorer) Neighbors(userID int64, feedback []models.Feedback) []Neighbor {
	idx := indexFeedback(feedback)
	_, neighbors := s.neighbors(userID, idx)
	return neighbors
}

func (s *CollaborativeScorer) neighbors(userID int64, idx feedbackIndex) (map[int64]struct{}, []Neighbor) {
	rated := make(map[int64]struct{})
	var ratedOrder []int64
	for _, f := range idx.byUser[userID] {
		if _, ok := rated[f.ProductID]; !ok {
			rated[f.ProductID] = struct{}{}
			ratedOrder = append(ratedOrder, f.ProductID)
		}
	}
	if len(ratedOrder) == 0 {
		return rated, nil
	}

	shared := make(map[int64]int)
	var firstSeen []int64
	for _, pid := range ratedOrder {
		for _, f := range idx.byProduct[pid] {
			if f.UserID == userID {
				continue
			}
			if _, ok := shared[f.UserID]; !ok {
				firstSeen = append(firstSeen, f.UserID)
			}
			shared[f.UserID]++
		}
	}

	neighbors := make([]Neighbor, 0, len(firstSeen))
	for _, uid := range firstSeen {
		neighbors = append(neighbors, Neighbor{
			UserID:     uid,
			Similarity: float64(shared[uid]) / float64(len(ratedOrder)),
		})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})

	limit := s.MaxNeighbors
	if limit <= 0 {
		limit = defaultMaxNeighbors
	}
	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return rated, neighbors
}

// Predict returns the predicted score for every product at least one
// neighbour rated and the target user has not. The score is the mean of
// rating*similarity over contributing ratings.
//
// TODO: dividing by the summed similarity instead of the vote count gives a
// proper weighted mean; switch once product signs off on the ranking change.
func (s *CollaborativeScorer) Predict(userID int64, feedback []models.Feedback) map[int64]float64 {
	idx := indexFeedback(feedback)
	rated, neighbors := s.neighbors(userID, idx)
	telemetry.CollaborativeNeighbors.Observe(float64(len(neighbors)))

	total := make(map[int64]float64)
	votes := make(map[int64]int)
	for _, n := range neighbors {
		for _, f := range idx.byUser[n.UserID] {
			if _, seen := rated[f.ProductID]; seen {
				continue
			}
			total[f.ProductID] += float64(f.Rating) * n.Similarity
			votes[f.ProductID]++
		}
	}

	scores := make(map[int64]float64, len(total))
	for pid, sum := range total {
		scores[pid] = sum / float64(votes[pid])
	}
	return scores
}

// Rank returns the candidates that received neighbour votes, highest
// predicted score first; ties keep candidate order. A user without feedback
// gets an empty list.
func (s *CollaborativeScorer) Rank(userID int64, feedback []models.Feedback, candidates []models.Product) []models.Product {
	scores := s.Predict(userID, feedback)
	out := make([]models.Product, 0, len(scores))
	if len(scores) == 0 {
		return out
	}

	for i := range candidates {
		if _, ok := scores[candidates[i].ID]; ok {
			out = append(out, candidates[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i].ID] > scores[out[j].ID]
	})
	return out
}
