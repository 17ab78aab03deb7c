package combat

import "regexp"

// ResolveOptions carries the global node policies applied during hit-part
// resolution. Patterns are compiled once at configuration load; nil patterns
// disable their check.
type ResolveOptions struct {
	// FirstPerson relaxes the collision-volume requirement (first-person
	// skeletons carry no hitboxes) and restricts candidates to
	// FirstPersonNodes.
	FirstPerson bool
	// IgnoreHitboxCheck accepts nodes without collision volumes.
	IgnoreHitboxCheck bool
	// ExcludeNodes rejects matching node names outright.
	ExcludeNodes *regexp.Regexp
	// FirstPersonNodes limits first-person candidates to matching names,
	// typically hand and weapon nodes. Nil admits every node.
	FirstPersonNodes *regexp.Regexp
}

// HitPart identifies the body part closest to an impact point.
type HitPart struct {
	Node            *SkeletonNode
	Name            string
	DistanceSquared float64
}

// ResolveHitPart walks the skeleton depth-first and returns the eligible node
// nearest to the impact point. It reports false when no node qualifies, which
// callers treat as an ignorable off-body impact.
//
// A winning node named "SHIELD" is remapped to its parent: shield attachment
// nodes carry the equipment name rather than the limb holding it.
func ResolveHitPart(root *SkeletonNode, impact Vec3, opts ResolveOptions) (HitPart, bool) {
	if root == nil {
		return HitPart{}, false
	}
	node, dist, ok := closestNode(root, impact, opts)
	if !ok {
		return HitPart{}, false
	}
	if node.Name == "SHIELD" && node.Parent != nil {
		node = node.Parent
	}
	return HitPart{Node: node, Name: node.Name, DistanceSquared: dist}, true
}

func closestNode(node *SkeletonNode, impact Vec3, opts ResolveOptions) (*SkeletonNode, float64, bool) {
	var childBest *SkeletonNode
	var childDist float64
	childFound := false

	for _, child := range node.Children {
		if child == nil {
			continue
		}
		hit, dist, ok := closestNode(child, impact, opts)
		if ok && (!childFound || dist < childDist) {
			childBest = hit
			childDist = dist
			childFound = true
		}
	}

	// Cosmetic nodes without a collision volume are skipped unless the
	// caller overrides the check; first-person skeletons never carry one.
	if opts.IgnoreHitboxCheck || opts.FirstPerson || node.HasCollision {
		if opts.ExcludeNodes == nil || !opts.ExcludeNodes.MatchString(node.Name) {
			if !opts.FirstPerson || opts.FirstPersonNodes == nil || opts.FirstPersonNodes.MatchString(node.Name) {
				dist := DistanceSquared(node.World, impact)
				if childFound && childDist < dist {
					return childBest, childDist, true
				}
				return node, dist, true
			}
		}
	}

	if childFound {
		return childBest, childDist, true
	}
	return nil, 0, false
}
