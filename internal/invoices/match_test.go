package invoices

import (
	"testing"

	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []domain.Ingredient {
	return []domain.Ingredient{
		{ID: "ing-1", Name: "Bread Flour"},
		{ID: "ing-2", Name: "Butter"},
		{ID: "ing-3", Name: "Vanilla Extract"},
	}
}

func TestMatchIngredients_Exact(t *testing.T) {
	matches := MatchIngredients([]string{"bread flour"}, catalogFixture())
	require.Len(t, matches, 1)

	require.NotNil(t, matches[0].IngredientID)
	assert.Equal(t, "ing-1", *matches[0].IngredientID)
	assert.Equal(t, 1.0, matches[0].Confidence)
}

func TestMatchIngredients_Containment(t *testing.T) {
	matches := MatchIngredients([]string{"Organic Butter 500g"}, catalogFixture())
	require.Len(t, matches, 1)

	require.NotNil(t, matches[0].IngredientID)
	assert.Equal(t, "ing-2", *matches[0].IngredientID)
	assert.Greater(t, matches[0].Confidence, 0.0)
	assert.Less(t, matches[0].Confidence, 1.0)
}

func TestMatchIngredients_WordOverlap(t *testing.T) {
	matches := MatchIngredients([]string{"Madagascar vanilla beans"}, catalogFixture())
	require.Len(t, matches, 1)

	require.NotNil(t, matches[0].IngredientID)
	assert.Equal(t, "ing-3", *matches[0].IngredientID)
}

func TestMatchIngredients_NoMatch(t *testing.T) {
	matches := MatchIngredients([]string{"Cleaning Supplies"}, catalogFixture())
	require.Len(t, matches, 1)

	assert.Nil(t, matches[0].IngredientID)
	assert.Nil(t, matches[0].IngredientName)
	assert.Equal(t, 0.0, matches[0].Confidence)
}

func TestMatchIngredients_KeepsInputOrder(t *testing.T) {
	matches := MatchIngredients([]string{"butter", "unknown thing", "bread flour"}, catalogFixture())
	require.Len(t, matches, 3)

	assert.Equal(t, "butter", matches[0].Description)
	assert.Nil(t, matches[1].IngredientID)
	assert.Equal(t, "ing-1", *matches[2].IngredientID)
}

func TestParseExtraction_StripsMarkdownFences(t *testing.T) {
	text := "```json\n{\"supplier_name\":\"Mill & Co\",\"date\":\"2025-05-01\",\"total\":120.5,\"confidence\":0.92,\"line_items\":[{\"description\":\"Bread Flour\",\"quantity\":25,\"unit\":\"kg\",\"unit_cost\":1.1}]}\n```"

	extraction, err := parseExtraction(text)
	require.NoError(t, err)

	assert.Equal(t, "Mill & Co", extraction.SupplierName)
	assert.Equal(t, 120.5, extraction.Total)
	require.Len(t, extraction.LineItems, 1)
	assert.Equal(t, 25.0, extraction.LineItems[0].Quantity)
}

func TestParseExtraction_RejectsGarbage(t *testing.T) {
	_, err := parseExtraction("sorry, I could not read this invoice")
	assert.Error(t, err)
}
