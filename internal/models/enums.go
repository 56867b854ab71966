package models

// PoliticalLeaning is the stored vocabulary for user and article leanings.
type PoliticalLeaning string

const (
	LeaningConservative PoliticalLeaning = "conservative"
	LeaningLiberal      PoliticalLeaning = "liberal"
	LeaningModerate     PoliticalLeaning = "moderate"
	LeaningLibertarian  PoliticalLeaning = "libertarian"
	LeaningGreen        PoliticalLeaning = "green"
	LeaningUnspecified  PoliticalLeaning = "unspecified"
)

// PoliticalLeanings is ordered; survey tie-breaking depends on this order.
var PoliticalLeanings = []PoliticalLeaning{
	LeaningConservative,
	LeaningLiberal,
	LeaningModerate,
	LeaningLibertarian,
	LeaningGreen,
}

// Topic is a fixed article category.
type Topic string

const (
	TopicEconomy        Topic = "Economy"
	TopicForeignPolicy  Topic = "Foreign Policy"
	TopicEnvironment    Topic = "Environment"
	TopicHealthcare     Topic = "Healthcare"
	TopicEducation      Topic = "Education"
	TopicImmigration    Topic = "Immigration"
	TopicCivilRights    Topic = "Civil Rights"
	TopicTechnology     Topic = "Technology"
	TopicDefense        Topic = "Defense"
	TopicInfrastructure Topic = "Infrastructure"
)

// Topics lists every selectable topic in display order.
var Topics = []Topic{
	TopicEconomy,
	TopicForeignPolicy,
	TopicEnvironment,
	TopicHealthcare,
	TopicEducation,
	TopicImmigration,
	TopicCivilRights,
	TopicTechnology,
	TopicDefense,
	TopicInfrastructure,
}

// WordCount is a reading-length tier, not a measured count.
type WordCount int

const (
	WordCount50  WordCount = 50
	WordCount100 WordCount = 100
	WordCount250 WordCount = 250
	WordCount500 WordCount = 500
)

var WordCounts = []WordCount{WordCount50, WordCount100, WordCount250, WordCount500}

// ArticleStatus is the moderation lifecycle of a submission.
type ArticleStatus string

const (
	StatusPending  ArticleStatus = "pending"
	StatusApproved ArticleStatus = "approved"
	StatusRejected ArticleStatus = "rejected"
)

func ValidLeaning(l PoliticalLeaning) bool {
	if l == LeaningUnspecified {
		return true
	}
	for _, known := range PoliticalLeanings {
		if l == known {
			return true
		}
	}
	return false
}

func ValidTopic(t Topic) bool {
	for _, known := range Topics {
		if t == known {
			return true
		}
	}
	return false
}

func ValidWordCount(wc WordCount) bool {
	for _, known := range WordCounts {
		if wc == known {
			return true
		}
	}
	return false
}
