package scenario

import (
	"github.com/dhconnelly/rtreego"

	"dubins-planner/geometry"
)

// minExtent pads degenerate boxes; rtreego rejects zero-length sides
const minExtent = 1e-9

// obstacleEntry wraps an obstacle for R-tree storage
type obstacleEntry struct {
	obstacle Obstacle
	bbox     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// ObstacleIndex answers bounding box queries over a fixed obstacle set
type ObstacleIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewObstacleIndex builds the index. Obstacles without vertices are skipped.
func NewObstacleIndex(obstacles []Obstacle) *ObstacleIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	size := 0
	for _, o := range obstacles {
		if len(o.Polygon.Vertices) == 0 {
			continue
		}
		bbox, err := toRect(o.Polygon.Bounds())
		if err != nil {
			continue
		}
		tree.Insert(&obstacleEntry{obstacle: o, bbox: bbox})
		size++
	}

	return &ObstacleIndex{tree: tree, size: size}
}

// Len is the number of indexed obstacles
func (idx *ObstacleIndex) Len() int {
	return idx.size
}

// Query returns obstacles whose bounding box intersects the given box
func (idx *ObstacleIndex) Query(box geometry.BBox) []Obstacle {
	if idx.size == 0 {
		return nil
	}
	rect, err := toRect(box)
	if err != nil {
		return nil
	}

	results := idx.tree.SearchIntersect(rect)
	obstacles := make([]Obstacle, 0, len(results))
	for _, item := range results {
		obstacles = append(obstacles, item.(*obstacleEntry).obstacle)
	}
	return obstacles
}

func toRect(box geometry.BBox) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{box.MinX - minExtent, box.MinY - minExtent},
		[]float64{box.MaxX - box.MinX + 2*minExtent, box.MaxY - box.MinY + 2*minExtent},
	)
}
