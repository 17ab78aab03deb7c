package world

import "nock-and-loose/server/internal/combat"

// BuildHumanoidSkeleton assembles the small biped rig the demo actors carry.
// Node positions are world-space and derived from the actor origin at the
// pelvis. All body nodes carry collision; accessory nodes do not.
func BuildHumanoidSkeleton(origin combat.Vec3) *combat.SkeletonNode {
	at := func(dx, dy, dz float64) combat.Vec3 {
		return combat.Vec3{X: origin.X + dx, Y: origin.Y + dy, Z: origin.Z + dz}
	}

	root := combat.NewSkeletonNode("NPC Root [Root]", origin, false)

	pelvis := combat.NewSkeletonNode("NPC Pelvis [Pelv]", at(0, 0, 0), true)
	root.AttachChild(pelvis)

	spine := combat.NewSkeletonNode("NPC Spine [Spn0]", at(0, 0, 15), true)
	pelvis.AttachChild(spine)
	spine1 := combat.NewSkeletonNode("NPC Spine1 [Spn1]", at(0, 0, 28), true)
	spine.AttachChild(spine1)
	spine2 := combat.NewSkeletonNode("NPC Spine2 [Spn2]", at(0, 0, 40), true)
	spine1.AttachChild(spine2)

	neck := combat.NewSkeletonNode("NPC Neck [Neck]", at(0, 0, 52), true)
	spine2.AttachChild(neck)
	head := combat.NewSkeletonNode("NPC Head [Head]", at(0, 0, 62), true)
	neck.AttachChild(head)

	for _, side := range []struct {
		tag string
		dir float64
	}{{"L", -1}, {"R", 1}} {
		upperArm := combat.NewSkeletonNode("NPC "+side.tag+" UpperArm ["+side.tag+"Uar]", at(side.dir*14, 0, 45), true)
		spine2.AttachChild(upperArm)
		forearm := combat.NewSkeletonNode("NPC "+side.tag+" Forearm ["+side.tag+"Lar]", at(side.dir*24, 0, 38), true)
		upperArm.AttachChild(forearm)
		hand := combat.NewSkeletonNode("NPC "+side.tag+" Hand ["+side.tag+"Hnd]", at(side.dir*32, 0, 33), true)
		forearm.AttachChild(hand)

		thigh := combat.NewSkeletonNode("NPC "+side.tag+" Thigh ["+side.tag+"Thg]", at(side.dir*7, 0, -8), true)
		pelvis.AttachChild(thigh)
		calf := combat.NewSkeletonNode("NPC "+side.tag+" Calf ["+side.tag+"Clf]", at(side.dir*7, 0, -25), true)
		thigh.AttachChild(calf)
		foot := combat.NewSkeletonNode("NPC "+side.tag+" Foot ["+side.tag+"Ft ]", at(side.dir*7, 4, -40), true)
		calf.AttachChild(foot)
	}

	// Accessory nodes excluded by the default configuration but present on
	// the rig so exclusion rules have something to reject.
	quiver := combat.NewSkeletonNode("QUIVER", at(0, -8, 30), false)
	spine2.AttachChild(quiver)
	shield := combat.NewSkeletonNode("SHIELD", at(-34, 0, 33), true)
	if left := findNode(root, "NPC L Hand [LHnd]"); left != nil {
		left.AttachChild(shield)
	}

	return root
}

func findNode(node *combat.SkeletonNode, name string) *combat.SkeletonNode {
	if node == nil {
		return nil
	}
	if node.Name == name {
		return node
	}
	for _, child := range node.Children {
		if found := findNode(child, name); found != nil {
			return found
		}
	}
	return nil
}
