package ml

import (
	"context"
	"encoding/json"
	"fmt"
)

// treeNode is one node of an exported regression tree. A node is a leaf when
// Left is -1. Samples with x[Feature] <= Threshold go left.
type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

type tree struct {
	Nodes []treeNode `json:"nodes"`
}

type gradientBoostingExport struct {
	Trees        []tree  `json:"trees"`
	Init         float64 `json:"init"`
	LearningRate float64 `json:"learning_rate"`
}

// GradientBoosting evaluates a binary gradient-boosted tree ensemble with log
// loss: p = sigmoid(init + learning_rate * sum(tree(x))).
type GradientBoosting struct {
	trees        []tree
	init         float64
	learningRate float64
	nFeatures    int
}

// DecodeGradientBoosting decodes and checks a gradient boosting export.
func DecodeGradientBoosting(data []byte) (*GradientBoosting, error) {
	h, err := decodeHeader(data, KindGradientBoosting)
	if err != nil {
		return nil, err
	}
	var export gradientBoostingExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to decode gradient boosting model: %w", err)
	}
	if len(export.Trees) == 0 {
		return nil, fmt.Errorf("gradient boosting model has no trees")
	}
	if export.LearningRate <= 0 {
		return nil, fmt.Errorf("learning_rate must be positive, got %v", export.LearningRate)
	}
	for i, t := range export.Trees {
		if err := checkTree(t, h.NFeatures); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}

	return &GradientBoosting{
		trees:        export.Trees,
		init:         export.Init,
		learningRate: export.LearningRate,
		nFeatures:    h.NFeatures,
	}, nil
}

// checkTree rejects trees whose evaluation could index out of range or loop.
func checkTree(t tree, nFeatures int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Left == -1 {
			continue
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, n.Feature, nFeatures)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

// RawScore returns the additive log-odds before the sigmoid.
func (m *GradientBoosting) RawScore(x []float64) float64 {
	sum := 0.0
	for _, t := range m.trees {
		i := 0
		for t.Nodes[i].Left != -1 {
			n := t.Nodes[i]
			if x[n.Feature] <= n.Threshold {
				i = n.Left
			} else {
				i = n.Right
			}
		}
		sum += t.Nodes[i].Value
	}
	return m.init + m.learningRate*sum
}

// PredictProba implements port.Classifier.
func (m *GradientBoosting) PredictProba(_ context.Context, x []float64) (float64, error) {
	if len(x) != m.nFeatures {
		return 0, fmt.Errorf("got %d features, want %d", len(x), m.nFeatures)
	}
	return sigmoid(m.RawScore(x)), nil
}

// InputWidth implements port.Classifier.
func (m *GradientBoosting) InputWidth() int { return m.nFeatures }

// Kind implements port.Classifier.
func (m *GradientBoosting) Kind() string { return KindGradientBoosting }

// Trees returns the number of trees in the ensemble.
func (m *GradientBoosting) Trees() int { return len(m.trees) }
