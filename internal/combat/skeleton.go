package combat

// SkeletonNode is one node in an actor's world-space skeleton snapshot. The
// host supplies the tree read-only for the duration of a hit; the resolver
// never mutates it.
type SkeletonNode struct {
	Name         string
	World        Vec3
	HasCollision bool
	Parent       *SkeletonNode
	Children     []*SkeletonNode
}

// NewSkeletonNode constructs a detached node.
func NewSkeletonNode(name string, world Vec3, hasCollision bool) *SkeletonNode {
	return &SkeletonNode{Name: name, World: world, HasCollision: hasCollision}
}

// AttachChild links child under n and returns the child for chaining.
func (n *SkeletonNode) AttachChild(child *SkeletonNode) *SkeletonNode {
	if n == nil || child == nil {
		return child
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}
