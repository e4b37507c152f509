package rank

import "strings"

// PersonaCategory is the closed set of persona classes the ranker boosts for.
type PersonaCategory int

const (
	PersonaUnclassified PersonaCategory = iota
	PersonaResearch
	PersonaBusiness
	PersonaEducation
)

// JobCategory is the closed set of job-to-be-done classes.
type JobCategory int

const (
	JobUnclassified JobCategory = iota
	JobLiteratureReview
	JobCompliance
	JobCurriculum
	JobExamPrep
)

// boostProfile carries the keyword list and weighting for one category.
// A boost is min(weight × keyword-presence-count, cap), with keywords
// matched as substrings of "{title} {text}" lowercased.
type boostProfile struct {
	keywords []string
	weight   float64
	cap      float64
}

var personaProfiles = map[PersonaCategory]boostProfile{
	PersonaResearch: {
		keywords: []string{"methodology", "analysis", "data", "results", "conclusion", "study", "research"},
		weight:   0.1,
		cap:      0.3,
	},
	PersonaBusiness: {
		keywords: []string{"compliance", "risk", "management", "procedure", "policy", "regulation"},
		weight:   0.1,
		cap:      0.3,
	},
	PersonaEducation: {
		keywords: []string{"curriculum", "assessment", "learning", "teaching", "course", "student", "concept"},
		weight:   0.1,
		cap:      0.3,
	},
}

var jobProfiles = map[JobCategory]boostProfile{
	JobLiteratureReview: {
		keywords: []string{"previous", "existing", "literature", "review", "background", "related work"},
		weight:   0.08,
		cap:      0.2,
	},
	JobCompliance: {
		keywords: []string{"requirement", "standard", "regulation", "compliance", "audit", "policy"},
		weight:   0.08,
		cap:      0.2,
	},
	JobCurriculum: {
		keywords: []string{"objective", "outcome", "assessment", "evaluation", "criteria", "rubric"},
		weight:   0.08,
		cap:      0.2,
	},
	JobExamPrep: {
		keywords: []string{"concept", "mechanism", "reaction", "kinetics", "principle", "theory"},
		weight:   0.08,
		cap:      0.2,
	},
}

// Classification rules are checked in order; the first trigger substring
// found in the input wins.
var personaRules = []struct {
	triggers []string
	category PersonaCategory
}{
	{[]string{"research", "phd"}, PersonaResearch},
	{[]string{"business", "analyst"}, PersonaBusiness},
	{[]string{"professor", "education", "student"}, PersonaEducation},
}

var jobRules = []struct {
	triggers []string
	category JobCategory
}{
	{[]string{"literature review"}, JobLiteratureReview},
	{[]string{"compliance", "regulatory"}, JobCompliance},
	{[]string{"curriculum", "assessment"}, JobCurriculum},
	{[]string{"exam", "preparation"}, JobExamPrep},
}

// ClassifyPersona maps a free-form persona description onto a category.
// Personas matching no rule get no boost at all.
func ClassifyPersona(persona string) PersonaCategory {
	lower := strings.ToLower(persona)
	for _, rule := range personaRules {
		for _, t := range rule.triggers {
			if strings.Contains(lower, t) {
				return rule.category
			}
		}
	}
	return PersonaUnclassified
}

// ClassifyJob maps a free-form job description onto a category.
func ClassifyJob(job string) JobCategory {
	lower := strings.ToLower(job)
	for _, rule := range jobRules {
		for _, t := range rule.triggers {
			if strings.Contains(lower, t) {
				return rule.category
			}
		}
	}
	return JobUnclassified
}

// Boost scores the category's keyword presence in the section text.
func (c PersonaCategory) Boost(sectionText string) float64 {
	return profileBoost(personaProfiles[c], sectionText)
}

// Boost scores the category's keyword presence in the section text.
func (c JobCategory) Boost(sectionText string) float64 {
	return profileBoost(jobProfiles[c], sectionText)
}

func profileBoost(p boostProfile, text string) float64 {
	if len(p.keywords) == 0 {
		return 0
	}
	matches := 0
	for _, kw := range p.keywords {
		if strings.Contains(text, kw) {
			matches++
		}
	}
	return min(float64(matches)*p.weight, p.cap)
}

// Content-type boost vocabularies: title-keyword checks plus one body-text
// action check, independently additive and capped.
var (
	methodTitleTerms = []string{"method", "methodology", "approach", "procedure"}
	resultTitleTerms = []string{"result", "finding", "outcome", "conclusion"}
	specTitleTerms   = []string{"specification", "requirement", "standard", "criteria"}
	actionBodyTerms  = []string{"should", "must", "need to", "recommend", "ensure"}
)

const contentTypeCap = 0.25

// ContentTypeBoost rewards sections whose titles flag methodology, results
// or specifications, and bodies carrying actionable language.
func ContentTypeBoost(title, text string) float64 {
	title = strings.ToLower(title)
	text = strings.ToLower(text)

	boost := 0.0
	if containsAny(title, methodTitleTerms) {
		boost += 0.15
	}
	if containsAny(title, resultTitleTerms) {
		boost += 0.12
	}
	if containsAny(title, specTitleTerms) {
		boost += 0.10
	}
	if containsAny(text, actionBodyTerms) {
		boost += 0.08
	}
	return min(boost, contentTypeCap)
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
