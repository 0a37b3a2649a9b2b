package service

import (
	"github.com/google/uuid"

	"bookkeeper/internal/model"
)

// childIndex maps each category id to its direct children, in list order.
func childIndex(categories []model.Category) map[uuid.UUID][]uuid.UUID {
	children := make(map[uuid.UUID][]uuid.UUID, len(categories))
	for _, c := range categories {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}
	return children
}

// subtreeChildrenFirst walks the tree under root depth-first and returns every
// reachable id once, descendants before their ancestors and root last. The
// visited set keeps the walk finite when the parent links form a cycle.
func subtreeChildrenFirst(root uuid.UUID, children map[uuid.UUID][]uuid.UUID) []uuid.UUID {
	visited := make(map[uuid.UUID]struct{})
	var order []uuid.UUID

	var visit func(id uuid.UUID)
	visit = func(id uuid.UUID) {
		if _, seen := visited[id]; seen {
			return
		}
		visited[id] = struct{}{}
		for _, child := range children[id] {
			visit(child)
		}
		order = append(order, id)
	}
	visit(root)
	return order
}
