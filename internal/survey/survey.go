// Package survey holds the political-preference onboarding survey and its
// plurality scoring.
package survey

import "github.com/newslens-app/newslens/internal/models"

type Option struct {
	Text    string                  `json:"text"`
	Leaning models.PoliticalLeaning `json:"leaning"`
}

type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// Questions is the fixed three-question survey shown after registration.
var Questions = []Question{
	{
		ID:       "1",
		Question: "Which statement best aligns with your views on government regulation?",
		Options: []Option{
			{Text: "The government should limit regulations to ensure businesses can thrive", Leaning: models.LeaningConservative},
			{Text: "The government should implement regulations to protect consumers and the environment", Leaning: models.LeaningLiberal},
			{Text: "The government should find a balance between business freedom and consumer protection", Leaning: models.LeaningModerate},
			{Text: "The government should minimize all regulations on individuals and businesses", Leaning: models.LeaningLibertarian},
			{Text: "The government should heavily regulate corporations to protect the environment", Leaning: models.LeaningGreen},
		},
	},
	{
		ID:       "2",
		Question: "What is your view on taxation?",
		Options: []Option{
			{Text: "Lower taxes across the board to stimulate economic growth", Leaning: models.LeaningConservative},
			{Text: "Higher taxes on the wealthy to fund social programs", Leaning: models.LeaningLiberal},
			{Text: "Balanced tax approach with moderate rates across income levels", Leaning: models.LeaningModerate},
			{Text: "Minimal taxation with most services privatized", Leaning: models.LeaningLibertarian},
			{Text: "Higher taxes on environmentally harmful activities and corporations", Leaning: models.LeaningGreen},
		},
	},
	{
		ID:       "3",
		Question: "What best describes your view on healthcare?",
		Options: []Option{
			{Text: "Healthcare should be provided through private markets with minimal government involvement", Leaning: models.LeaningConservative},
			{Text: "Universal healthcare should be guaranteed to all citizens", Leaning: models.LeaningLiberal},
			{Text: "A mix of private and public healthcare options should be available", Leaning: models.LeaningModerate},
			{Text: "Healthcare decisions should be left to individuals with no government mandates", Leaning: models.LeaningLibertarian},
			{Text: "Healthcare should be universal with emphasis on preventive and holistic approaches", Leaning: models.LeaningGreen},
		},
	},
}

// Score returns the plurality leaning of the given answers. Ties break in
// favor of the leaning that comes first in models.PoliticalLeanings; no
// answers yields "unspecified".
func Score(answers []models.PoliticalLeaning) models.PoliticalLeaning {
	counts := make(map[models.PoliticalLeaning]int, len(models.PoliticalLeanings))
	for _, a := range answers {
		counts[a]++
	}

	dominant := models.LeaningUnspecified
	max := 0
	for _, leaning := range models.PoliticalLeanings {
		if counts[leaning] > max {
			max = counts[leaning]
			dominant = leaning
		}
	}
	return dominant
}
