package models

import (
	"fmt"
	"sort"
	"strconv"
)

// Module states derived from DetailedProgress.
const (
	ModuleNotStarted    = "not_started"
	ModuleInProgress    = "in_progress"
	ModuleQuizSubmitted = "quiz_submitted"
	ModuleCompleted     = "completed"
)

type QuizResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// DetailedProgress is the denormalized per-enrollment learning snapshot,
// stored as an opaque JSON column. All maps are keyed by module index
// (Answers by "module_question"), so partial updates can be merged key by key
// without touching unrelated modules.
type DetailedProgress struct {
	CompletedModules []int                 `json:"completed_modules"`
	QuizResults      map[string]QuizResult `json:"quiz_results"`
	Answers          map[string]int        `json:"answers"`
	Submitted        map[string]bool       `json:"submitted"`
}

func NewDetailedProgress() DetailedProgress {
	return DetailedProgress{
		CompletedModules: []int{},
		QuizResults:      map[string]QuizResult{},
		Answers:          map[string]int{},
		Submitted:        map[string]bool{},
	}
}

// ModuleKey is the map key for a module's quiz result and submitted flag.
func ModuleKey(moduleIndex int) string {
	return strconv.Itoa(moduleIndex)
}

// AnswerKey is the map key for a learner's chosen option on one question.
func AnswerKey(moduleIndex, questionIndex int) string {
	return fmt.Sprintf("%d_%d", moduleIndex, questionIndex)
}

// Merge combines the snapshot with a partial update and returns the result.
// Each of the four structures is merged per key: the completed set is a
// union, map entries are last-write-wins within a single key. Merging is
// order-independent for disjoint keys; neither receiver nor argument is
// mutated.
func (dp DetailedProgress) Merge(in DetailedProgress) DetailedProgress {
	out := NewDetailedProgress()

	seen := make(map[int]bool)
	for _, set := range [][]int{dp.CompletedModules, in.CompletedModules} {
		for _, idx := range set {
			if !seen[idx] {
				seen[idx] = true
				out.CompletedModules = append(out.CompletedModules, idx)
			}
		}
	}
	sort.Ints(out.CompletedModules)

	for k, v := range dp.QuizResults {
		out.QuizResults[k] = v
	}
	for k, v := range in.QuizResults {
		out.QuizResults[k] = v
	}

	for k, v := range dp.Answers {
		out.Answers[k] = v
	}
	for k, v := range in.Answers {
		out.Answers[k] = v
	}

	for k, v := range dp.Submitted {
		out.Submitted[k] = v
	}
	for k, v := range in.Submitted {
		out.Submitted[k] = v
	}

	return out
}

func (dp DetailedProgress) HasCompleted(moduleIndex int) bool {
	for _, idx := range dp.CompletedModules {
		if idx == moduleIndex {
			return true
		}
	}
	return false
}

func (dp DetailedProgress) HasSubmitted(moduleIndex int) bool {
	return dp.Submitted[ModuleKey(moduleIndex)]
}

// ModuleState reports where a module sits in its lifecycle:
// not_started -> in_progress -> quiz_submitted, with completed terminal and
// independent of the quiz. There is no way back to not_started.
func (dp DetailedProgress) ModuleState(moduleIndex int) string {
	if dp.HasCompleted(moduleIndex) {
		return ModuleCompleted
	}
	if dp.HasSubmitted(moduleIndex) {
		return ModuleQuizSubmitted
	}
	prefix := ModuleKey(moduleIndex) + "_"
	for k := range dp.Answers {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			return ModuleInProgress
		}
	}
	return ModuleNotStarted
}
