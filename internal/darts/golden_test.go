package darts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CheckoutVector struct {
	Description     string   `json:"description"`
	RemainingScore  int      `json:"remaining_score"`
	RemainingThrows int      `json:"remaining_throws,omitempty"`
	Expected        Checkout `json:"expected"`
}

type CheckoutVectors struct {
	Finish []CheckoutVector `json:"finish"`
	Round  []CheckoutVector `json:"round"`
}

func TestFinishGoldenVectors(t *testing.T) {
	vectors, err := loadCheckoutVectors()
	require.NoError(t, err, "failed to load golden vectors")
	require.NotEmpty(t, vectors.Finish)

	solver := NewSolver()
	for _, v := range vectors.Finish {
		t.Run(v.Description, func(t *testing.T) {
			got, err := solver.Finish(v.RemainingScore, v.RemainingThrows)
			require.NoError(t, err)
			assert.Equal(t, v.Expected, got)
		})
	}
}

func TestRoundGoldenVectors(t *testing.T) {
	vectors, err := loadCheckoutVectors()
	require.NoError(t, err, "failed to load golden vectors")
	require.NotEmpty(t, vectors.Round)

	solver := NewSolver()
	for _, v := range vectors.Round {
		t.Run(v.Description, func(t *testing.T) {
			got, err := solver.Round(v.RemainingScore)
			require.NoError(t, err)
			assert.Equal(t, v.Expected, got)
		})
	}
}

func loadCheckoutVectors() (CheckoutVectors, error) {
	var vectors CheckoutVectors

	data, err := os.ReadFile(filepath.Join("testdata", "checkouts.json"))
	if err != nil {
		return vectors, err
	}
	err = json.Unmarshal(data, &vectors)
	return vectors, err
}
