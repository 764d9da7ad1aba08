package service

import "educonnect_backend/internal/model"

// ScoreAnswers computes the auto score for a set of positional answers
// against a test's ordered questions. Pure and deterministic: same inputs,
// same total, no side effects.
//
// An answer whose questionIndex falls outside the question list contributes
// nothing and raises no error; indexes are positional references supplied by
// the client and are not validated upstream. Empty answers contribute
// nothing. Short-answer questions are never auto-scored; they stay at zero
// until a teacher grades manually.
func ScoreAnswers(questions []model.TestQuestion, answers []model.SubmittedAnswer) int {
	total := 0
	for _, ans := range answers {
		if ans.QuestionIndex < 0 || ans.QuestionIndex >= len(questions) {
			continue
		}
		if ans.Answer == "" {
			continue
		}
		q := questions[ans.QuestionIndex]

		switch q.Type {
		case model.QuestionMultipleChoice:
			// Exact, case-sensitive match against the flagged option.
			if opt, ok := correctOption(q.Options); ok && ans.Answer == opt.Text {
				total += q.Marks
			}
		case model.QuestionTrueFalse:
			if ans.Answer == q.CorrectAnswer {
				total += q.Marks
			}
		case model.QuestionShortAnswer:
			// Manual grading only.
		}
	}
	return total
}

// correctOption returns the first option flagged correct. Write-time
// validation keeps multiple-choice questions down to a single flagged
// option, but scoring stays defensive about legacy data.
func correctOption(opts model.QuestionOptions) (model.QuestionOption, bool) {
	for _, o := range opts {
		if o.IsCorrect {
			return o, true
		}
	}
	return model.QuestionOption{}, false
}
