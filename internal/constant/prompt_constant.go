package constant

import (
	"encoding/json"
	"fmt"
	"strings"

	"learnpath-be/pkg/assessment"
)

const (
	DefaultFlashcardCount  = 10
	DefaultInterviewRounds = 5
	AssessmentQuestionSize = 5

	TutorSystemPrompt = `You are a patient learning tutor. Answer the learner's questions clearly,
use short paragraphs and Markdown formatting, and include small examples where they help.
If a question is ambiguous, ask one clarifying question before answering.`
)

func LearningPathPrompt(domain string) string {
	return fmt.Sprintf(`Create a detailed, structured learning path for a beginner in %q.
The path should be a JSON array; each item has keys: topic (string) and duration (number of days, integer > 0).
Return only the JSON array.`, domain)
}

func AssessmentPrompt(topic string) string {
	return fmt.Sprintf(`Create a short assessment with %d multiple-choice questions for the topic %q.
Each question has 4 options (A, B, C, D) and one correct answer.
Return a JSON array of objects: { "question": string, "options": { "A": string, "B": string, "C": string, "D": string }, "answer": "A"|"B"|"C"|"D" }.`,
		AssessmentQuestionSize, topic)
}

// EvaluationPrompt matches assessment.PromptFunc.
func EvaluationPrompt(topic string, answers []assessment.Answer) string {
	submission, _ := json.Marshal(answers)
	return fmt.Sprintf(`As an expert evaluator, analyze the following quiz submission. The user was tested on %q.
Submission JSON: %s
Return a JSON object: { "score": number, "outOf": number, "evaluation": [{ "question": string, "correctAnswer": string, "userAnswer": string, "isCorrect": boolean }] }.
outOf is the number of questions evaluated.`, topic, submission)
}

func ExplainTopicPrompt(domain, topic string) string {
	return fmt.Sprintf(`Explain the concept of %q for a beginner in the field of %s.
Keep it concise, easy to understand, and use paragraphs.`, topic, domain)
}

func ResourcesPrompt(topic string) string {
	return fmt.Sprintf(`Suggest 3-5 high-quality online resources for a beginner learning about %q.
Return a JSON array of { "title": string, "type": string, "description": string }.`, topic)
}

func RegenerateSchedulePrompt(topics []string) string {
	quoted := make([]string, len(topics))
	for i, t := range topics {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return fmt.Sprintf(`I have a list of remaining topics to learn: [%s].
Create a new learning schedule starting from today that covers these topics in order.
Return a JSON array of objects: { "topic": string, "duration": number of days }.`, strings.Join(quoted, ", "))
}

func FlashcardsPrompt(topic string, count int) string {
	return fmt.Sprintf(`Create %d study flashcards for %q.
Return a JSON array of { "front": string, "back": string }.`, count, topic)
}

func MockInterviewPrompt(role string, rounds int) string {
	return fmt.Sprintf(`Prepare a mock interview for a %s position with %d rounds.
Return a JSON array of { "round": number, "question": string, "expectedPoints": [string] }.`, role, rounds)
}

func SkillGapPrompt(resume, targetRole string) string {
	return fmt.Sprintf(`Compare the resume below with the skills expected of a %s.
Resume:
%s
Return a JSON object: { "strengths": [string], "gaps": [string], "recommendations": [{ "skill": string, "action": string }] }.`, targetRole, resume)
}

func CodingExercisePrompt(topic string) string {
	return fmt.Sprintf(`Write one beginner coding exercise about %q.
Return a JSON object: { "title": string, "description": string, "starterCode": string, "hints": [string], "solution": string }.`, topic)
}
