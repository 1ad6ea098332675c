package classifier

import (
	"encoding/json"
	"fmt"
	"os"
)

// FeatureCount is the fixed width of the input vector:
// [fever, tired, cough, breath, throat, age].
const FeatureCount = 6

// Node is one decision-tree node in the serialized artifact. Internal nodes
// route on Feature/Threshold; leaves carry the class in Value.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     int     `json:"value"`
}

// artifact is the on-disk JSON layout of a frozen model.
type artifact struct {
	Features []string `json:"features"`
	Nodes    []Node   `json:"nodes"`
}

// Tree is a frozen, read-only decision tree. It is immutable after Load and
// safe for concurrent use by any number of requests.
type Tree struct {
	nodes []Node
}

// New builds a Tree from nodes, validating the node graph.
func New(nodes []Node) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("model has no nodes")
	}
	for i, n := range nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= FeatureCount {
			return nil, fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		// Children must point forward so a walk always terminates.
		if n.Left <= i || n.Left >= len(nodes) {
			return nil, fmt.Errorf("node %d: invalid left child %d", i, n.Left)
		}
		if n.Right <= i || n.Right >= len(nodes) {
			return nil, fmt.Errorf("node %d: invalid right child %d", i, n.Right)
		}
	}
	return &Tree{nodes: nodes}, nil
}

// Load reads a frozen model artifact from path. Called once at startup; the
// returned Tree is never mutated afterwards.
func Load(path string) (*Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %q: %w", path, err)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact %q: %w", path, err)
	}
	if len(a.Features) != FeatureCount {
		return nil, fmt.Errorf("model artifact %q: expected %d features, got %d", path, FeatureCount, len(a.Features))
	}

	t, err := New(a.Nodes)
	if err != nil {
		return nil, fmt.Errorf("model artifact %q: %w", path, err)
	}
	return t, nil
}

// Score walks the tree for the given feature vector and returns the class
// (1 means high risk). Left branch is taken when value <= threshold.
func (t *Tree) Score(v [FeatureCount]int) int {
	i := 0
	for {
		n := t.nodes[i]
		if n.Leaf {
			return n.Value
		}
		if float64(v[n.Feature]) <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}
