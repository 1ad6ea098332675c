package classifier

import (
	"path/filepath"
	"strings"
	"testing"
)

// twoLeafTree routes on a single feature: value 1 scores 1, value 0 scores 0.
func twoLeafTree(t *testing.T, feature int) *Tree {
	t.Helper()
	tree, err := New([]Node{
		{Feature: feature, Threshold: 0.5, Left: 1, Right: 2},
		{Leaf: true, Value: 0},
		{Leaf: true, Value: 1},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return tree
}

func TestTree_Score_RoutesOnEachFeature(t *testing.T) {
	for feature := 0; feature < FeatureCount; feature++ {
		tree := twoLeafTree(t, feature)

		var v [FeatureCount]int
		if got := tree.Score(v); got != 0 {
			t.Errorf("feature %d: zero vector scored %d, want 0", feature, got)
		}
		v[feature] = 1
		if got := tree.Score(v); got != 1 {
			t.Errorf("feature %d: set flag scored %d, want 1", feature, got)
		}
	}
}

func TestTree_Score_ThresholdIsInclusiveOnLeft(t *testing.T) {
	tree, err := New([]Node{
		{Feature: 5, Threshold: 45, Left: 1, Right: 2},
		{Leaf: true, Value: 0},
		{Leaf: true, Value: 1},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	left := [FeatureCount]int{0, 0, 0, 0, 0, 45}
	if got := tree.Score(left); got != 0 {
		t.Errorf("age at threshold scored %d, want left branch (0)", got)
	}
	right := [FeatureCount]int{0, 0, 0, 0, 0, 46}
	if got := tree.Score(right); got != 1 {
		t.Errorf("age above threshold scored %d, want right branch (1)", got)
	}
}

func TestNew_RejectsMalformedGraphs(t *testing.T) {
	cases := []struct {
		name    string
		nodes   []Node
		wantErr string
	}{
		{
			name:    "empty",
			nodes:   nil,
			wantErr: "no nodes",
		},
		{
			name: "feature out of range",
			nodes: []Node{
				{Feature: FeatureCount, Threshold: 0.5, Left: 1, Right: 2},
				{Leaf: true}, {Leaf: true},
			},
			wantErr: "feature index",
		},
		{
			name: "backward child would loop",
			nodes: []Node{
				{Feature: 0, Threshold: 0.5, Left: 0, Right: 1},
				{Leaf: true},
			},
			wantErr: "invalid left child",
		},
		{
			name: "child out of range",
			nodes: []Node{
				{Feature: 0, Threshold: 0.5, Left: 1, Right: 5},
				{Leaf: true},
			},
			wantErr: "invalid right child",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.nodes)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error to contain %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestLoad_Artifact(t *testing.T) {
	tree, err := Load(filepath.Join("testdata", "risk_model.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	// testdata model: no fever -> 0; fever and age > 40 -> 1.
	if got := tree.Score([FeatureCount]int{0, 1, 1, 1, 1, 80}); got != 0 {
		t.Errorf("no-fever vector scored %d, want 0", got)
	}
	if got := tree.Score([FeatureCount]int{1, 0, 0, 0, 0, 80}); got != 1 {
		t.Errorf("fever+age vector scored %d, want 1", got)
	}
	if got := tree.Score([FeatureCount]int{1, 0, 0, 0, 0, 30}); got != 0 {
		t.Errorf("fever young vector scored %d, want 0", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatalf("expected error for missing artifact")
	}
}
