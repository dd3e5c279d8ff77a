// Package classify assigns STEAM domain labels to free text using
// keyword presence. It is intentionally crude: no stemming, no frequency
// weighting, just case-insensitive substring matching against fixed
// per-domain keyword sets.
package classify

import "strings"

// MatchThreshold is the number of distinct keyword hits required before a
// domain is considered detected.
const MatchThreshold = 2

// Domains is the fixed label vocabulary. Detect only ever returns a
// subset of it.
var Domains = []string{"science", "technology", "engineering", "arts", "mathematics"}

type Classifier struct {
	keywords map[string][]string
}

func NewClassifier() *Classifier {
	return &Classifier{keywords: defaultKeywords()}
}

// Detect returns every domain for which at least MatchThreshold of its
// keywords occur in the text. Each distinct keyword counts once no matter
// how often it repeats. The result may be empty and may contain several
// labels; order follows the Domains vocabulary.
func (c *Classifier) Detect(text string) []string {
	lower := strings.ToLower(text)

	var detected []string
	for _, domain := range Domains {
		matches := 0
		for _, kw := range c.keywords[domain] {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches >= MatchThreshold {
			detected = append(detected, domain)
		}
	}

	return detected
}

func defaultKeywords() map[string][]string {
	return map[string][]string{
		"science": {
			"research", "study", "experiment", "hypothesis", "theory", "discovery",
			"biology", "chemistry", "physics", "astronomy", "ecology", "genetics",
			"molecule", "atom", "cell", "organism", "dna", "protein", "evolution",
		},
		"technology": {
			"innovation", "device", "digital", "computer", "software", "hardware",
			"artificial intelligence", "machine learning", "robotics", "automation",
			"internet", "cybersecurity", "data", "algorithm", "programming",
		},
		"engineering": {
			"design", "build", "construct", "manufacture", "prototype", "optimization",
			"mechanical", "electrical", "civil", "chemical", "aerospace", "biomedical",
			"infrastructure", "system", "process", "efficiency", "sustainability",
		},
		"arts": {
			"creative", "design", "visual", "digital art", "media", "communication",
			"graphics", "animation", "user interface", "user experience", "aesthetic",
			"interactive", "multimedia", "visualization", "artistic", "cultural",
		},
		"mathematics": {
			"equation", "formula", "calculation", "statistics", "probability", "geometry",
			"algebra", "calculus", "modeling", "algorithm", "analysis", "theorem",
			"mathematical", "numerical", "computational", "optimization", "data analysis",
		},
	}
}
