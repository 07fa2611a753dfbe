package extract

import (
	"cmp"
	"slices"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// octreeDepth is the number of RGB bits consumed per channel.
const octreeDepth = 8

type octNode struct {
	children [8]*octNode
	leaf     bool
	count    int
	r, g, b  int
}

type octree struct {
	root      *octNode
	reducible [octreeDepth][]*octNode
	leaves    int
}

func newOctree() *octree {
	return &octree{root: &octNode{}}
}

func octIndex(c colour.RGB, level int) int {
	shift := uint(7 - level)
	idx := 0
	if c.R>>shift&1 == 1 {
		idx |= 4
	}
	if c.G>>shift&1 == 1 {
		idx |= 2
	}
	if c.B>>shift&1 == 1 {
		idx |= 1
	}
	return idx
}

// insert walks one RGB colour down the tree, accumulating sums on every
// node so any node can later become a leaf without revisiting pixels.
func (t *octree) insert(c colour.RGB) {
	node := t.root
	for level := 0; ; level++ {
		node.count++
		node.r += int(c.R)
		node.g += int(c.G)
		node.b += int(c.B)
		if node.leaf {
			return
		}
		if level == octreeDepth {
			node.leaf = true
			t.leaves++
			return
		}
		idx := octIndex(c, level)
		if node.children[idx] == nil {
			if !node.hasChildren() {
				t.reducible[level] = append(t.reducible[level], node)
			}
			node.children[idx] = &octNode{}
		}
		node = node.children[idx]
	}
}

func (n *octNode) hasChildren() bool {
	for _, c := range n.children {
		if c != nil {
			return true
		}
	}
	return false
}

// reduce collapses the lowest-count reducible node at the deepest level
// into a leaf. Returns false when nothing is left to collapse.
func (t *octree) reduce() bool {
	for level := octreeDepth - 1; level >= 0; level-- {
		nodes := t.reducible[level]
		if len(nodes) == 0 {
			continue
		}
		minIdx := 0
		for i, n := range nodes {
			if n.count < nodes[minIdx].count {
				minIdx = i
			}
		}
		node := nodes[minIdx]
		t.reducible[level] = slices.Delete(slices.Clone(nodes), minIdx, minIdx+1)

		merged := 0
		for i, c := range node.children {
			if c != nil {
				merged++
				node.children[i] = nil
			}
		}
		node.leaf = true
		t.leaves += 1 - merged
		return true
	}
	return false
}

func (t *octree) collect() []*octNode {
	var leaves []*octNode
	var walk func(n *octNode)
	walk = func(n *octNode) {
		if n.leaf {
			leaves = append(leaves, n)
			return
		}
		for _, c := range n.children {
			if c != nil {
				walk(c)
			}
		}
	}
	walk(t.root)
	return leaves
}

// octreeQuantize builds an 8-level octree and collapses the lowest-count
// leaves until at most k remain.
func octreeQuantize(samples []sample, k int) []colour.Lab {
	if len(samples) == 0 {
		return nil
	}
	t := newOctree()
	for _, s := range samples {
		t.insert(s.rgb)
	}
	for t.leaves > k && t.reduce() {
	}

	leaves := t.collect()
	slices.SortStableFunc(leaves, func(a, b *octNode) int {
		return cmp.Compare(b.count, a.count)
	})

	out := make([]colour.Lab, len(leaves))
	for i, n := range leaves {
		cnt := float64(n.count) * 255
		out[i] = colour.ToOklab(colour.SRGB{R: float64(n.r) / cnt, G: float64(n.g) / cnt, B: float64(n.b) / cnt})
	}
	return out
}
