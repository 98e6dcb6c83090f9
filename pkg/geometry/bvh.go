package geometry

import (
	"cmp"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// maxBVHDepth bounds recursion during construction; deeper ranges become a List leaf
const maxBVHDepth = 64

// BVHNode is either an internal node with two children or a leaf holding one shape, never both.
// Its bounding box is fixed at construction.
type BVHNode struct {
	bbox  core.AABB
	left  *BVHNode // nil for leaves
	right *BVHNode // nil for leaves
	leaf  Shape    // nil for internal nodes
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of shapes. The input slice is not modified.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}

	// Construction sorts in place, so work on a copy
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy, 0)}
}

// NewBVHFromList builds a BVH over the shapes of a list
func NewBVHFromList(list *List) *BVH {
	return NewBVH(list.Shapes)
}

// buildBVH recursively median-splits shapes along the longest axis of their union box
func buildBVH(shapes []Shape, depth int) *BVHNode {
	if len(shapes) == 1 {
		return &BVHNode{bbox: shapes[0].BoundingBox(), leaf: shapes[0]}
	}

	boundingBox := core.EmptyAABB
	for _, shape := range shapes {
		boundingBox = boundingBox.Union(shape.BoundingBox())
	}

	if depth >= maxBVHDepth {
		list := NewList(shapes...)
		return &BVHNode{bbox: list.BoundingBox(), leaf: list}
	}

	axis := boundingBox.LongestAxis()
	sortShapesByAxis(shapes, axis)

	mid := len(shapes) / 2
	return &BVHNode{
		bbox:  boundingBox,
		left:  buildBVH(shapes[:mid], depth+1),
		right: buildBVH(shapes[mid:], depth+1),
	}
}

// sortShapesByAxis sorts shapes by the minimum of their bounding box along axis.
// cmp.Less orders NaN before every number, so the comparator stays a strict weak order.
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.Slice(shapes, func(i, j int) bool {
		return cmp.Less(
			shapes[i].BoundingBox().AxisInterval(axis).Min,
			shapes[j].BoundingBox().AxisInterval(axis).Min,
		)
	})
}

// IsLeaf reports whether the node holds a shape rather than children
func (n *BVHNode) IsLeaf() bool {
	return n.leaf != nil
}

// Hit tests the node box, then the children. The right subtree only searches up to the left hit.
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	if n.leaf != nil {
		return n.leaf.Hit(ray, rayT, sampler)
	}

	leftHit, hitLeft := n.left.Hit(ray, rayT, sampler)

	rightT := rayT
	if hitLeft {
		rightT.Max = leftHit.T
	}
	if rightHit, hitRight := n.right.Hit(ray, rightT, sampler); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the node's box
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// Hit implements the Shape interface
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.Hit(ray, rayT, sampler)
}

// BoundingBox implements the Shape interface - returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB
	}
	return bvh.Root.bbox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	AvgDepth    float64
	TotalShapes int
}

// Stats walks the tree and summarizes its shape
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	collectStats(bvh.Root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.LeafNodes++
		if list, ok := node.leaf.(*List); ok {
			stats.TotalShapes += list.Len()
		} else {
			stats.TotalShapes++
		}
		stats.AvgDepth += float64(depth) // summed here, averaged in Stats
		return
	}

	collectStats(node.left, depth+1, stats)
	collectStats(node.right, depth+1, stats)
}
