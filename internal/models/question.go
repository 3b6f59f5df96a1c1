package models

// AudioRef points at a playable audio asset. The empty value means the asset was not found.
type AudioRef string

// Question is a single quiz prompt with its answer choices
type Question struct {
	Prompt             string
	Answers            []string
	CorrectAnswerIndex int
	Audio              AudioRef
}

// CorrectAnswer returns the label of the correct choice
func (q Question) CorrectAnswer() string {
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Answers) {
		return ""
	}
	return q.Answers[q.CorrectAnswerIndex]
}
