package dto

// ProcessRequest is the body of POST /api/process
// @Description Request body for processing a YouTube video
type ProcessRequest struct {
	YoutubeURL string `json:"youtube_url" form:"youtube_url"`
}

// ProcessResponse represents a processed video in the API response
// @Description Cleaned transcript and summary of a video
type ProcessResponse struct {
	VideoID       string  `json:"video_id"`
	Transcription string  `json:"transcription"`
	Summary       string  `json:"summary"`
	ProcessTime   float64 `json:"process_time"` // seconds, rounded to 2 decimals
	Cached        bool    `json:"cached"`
}

// GenerateQuizRequest is the body of POST /api/quiz
// @Description Request body for generating a quiz from a summary
type GenerateQuizRequest struct {
	Summary string `json:"summary" form:"summary"`
}

// QuestionResponse represents one multiple-choice question
type QuestionResponse struct {
	Question      string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
}

// QuizResponse represents a generated quiz in the API response
// @Description Generated quiz questions
type QuizResponse struct {
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
}

// SubmittedAnswer is one answered question
type SubmittedAnswer struct {
	Index         int    `json:"index"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

// SubmitQuizRequest is the JSON body of POST /api/quiz/submit
// @Description Answers to grade
type SubmitQuizRequest struct {
	Answers []SubmittedAnswer `json:"answers"`
}

// AnswerResult is the grading outcome for one question
type AnswerResult struct {
	Index         int    `json:"index"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// SubmitQuizResponse represents a graded quiz in the API response
// @Description Per-question results and the overall score
type SubmitQuizResponse struct {
	Results        []AnswerResult `json:"results"`
	CorrectCount   int            `json:"correct_count"`
	TotalQuestions int            `json:"total_questions"`
}

// HealthResponse represents the service health in the API response
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
