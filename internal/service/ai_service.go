package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vibestudy/internal/config"
	"vibestudy/internal/model"
)

// AIService talks to an OpenAI-compatible chat-completions endpoint to
// generate lesson content. A missing API key is an expected configuration
// state, not an error: every path falls back to deterministic mock content.
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// lessonPayload accepts both reply shapes the prompt may elicit: a full task
// list, or the single {theory, task, hint} triple.
type lessonPayload struct {
	Theory string `json:"theory"`
	Tasks  []struct {
		ID           int    `json:"id"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		Difficulty   string `json:"difficulty"`
		CodeTemplate string `json:"codeTemplate"`
	} `json:"tasks"`
	Task string `json:"task"`
	Hint string `json:"hint"`
}

func (s *AIService) Configured() bool {
	return s.config.APIKey != "" && s.config.BaseURL != ""
}

// GenerateLesson returns lesson content for one course day. It never fails:
// transport and parse errors degrade to the mock generator.
func (s *AIService) GenerateLesson(ctx context.Context, language string, day int, careerPath string) (string, []model.GeneratedTask) {
	if !s.Configured() {
		return mockLesson(language, day, careerPath)
	}

	content, err := s.chatCompletion(ctx, buildLessonPrompt(language, day, careerPath))
	if err != nil {
		return mockLesson(language, day, careerPath)
	}

	theory, tasks, err := parseLessonContent(content)
	if err != nil {
		return mockLesson(language, day, careerPath)
	}
	return theory, tasks
}

// GenerateDailyChallenge is mock-backed for now; the challenge page only
// needs a stable shape.
func (s *AIService) GenerateDailyChallenge(language string) *model.DailyChallenge {
	return &model.DailyChallenge{
		Title:       fmt.Sprintf("Build a %s Rate Limiter", language),
		Description: fmt.Sprintf("Create a production-ready rate limiter implementation using %s. This challenge tests your understanding of algorithms and system design.", language),
		Difficulty:  model.DifficultyMedium,
		Requirements: []string{
			"Implement the token bucket algorithm",
			"Support configurable rate limits",
			"Handle concurrent requests safely",
			"Include proper error handling",
		},
	}
}

func (s *AIService) chatCompletion(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: "You are an expert programming instructor. Always respond with valid JSON only."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   1024,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from AI API")
	}

	return completion.Choices[0].Message.Content, nil
}

func buildLessonPrompt(language string, day int, careerPath string) string {
	return fmt.Sprintf(`You are an expert programming instructor. Generate a lesson for:
- Language: %s
- Day %d of a 90-day learning roadmap
- Career Path: %s

The lesson should be appropriate for the day number (earlier days = basics, later days = advanced).

Respond ONLY with valid JSON in this exact format:
{
  "theory": "Clear explanation of the concept being taught (2-3 paragraphs)",
  "tasks": [
    {"id": 1, "title": "...", "description": "...", "difficulty": "easy|medium|hard", "codeTemplate": "..."}
  ]
}`, language, day, careerPath)
}

// parseLessonContent extracts the first JSON object from the model reply,
// tolerating chatter around it, and normalizes both accepted shapes.
func parseLessonContent(content string) (string, []model.GeneratedTask, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", nil, fmt.Errorf("no JSON object in AI reply")
	}

	var payload lessonPayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return "", nil, err
	}
	if payload.Theory == "" {
		return "", nil, fmt.Errorf("AI reply has no theory")
	}

	var tasks []model.GeneratedTask
	for i, t := range payload.Tasks {
		task := model.GeneratedTask{
			ID:           t.ID,
			Title:        t.Title,
			Description:  t.Description,
			Difficulty:   normalizeDifficulty(t.Difficulty),
			CodeTemplate: t.CodeTemplate,
		}
		if task.ID == 0 {
			task.ID = i + 1
		}
		tasks = append(tasks, task)
	}

	// Single {theory, task, hint} replies become one medium exercise.
	if len(tasks) == 0 && payload.Task != "" {
		description := payload.Task
		if payload.Hint != "" {
			description += "\n\nHint: " + payload.Hint
		}
		tasks = append(tasks, model.GeneratedTask{
			ID:          1,
			Title:       "Practice exercise",
			Description: description,
			Difficulty:  model.DifficultyMedium,
		})
	}

	if len(tasks) == 0 {
		return "", nil, fmt.Errorf("AI reply has no tasks")
	}
	return payload.Theory, tasks, nil
}

func normalizeDifficulty(d string) model.Difficulty {
	switch model.Difficulty(strings.ToLower(d)) {
	case model.DifficultyEasy:
		return model.DifficultyEasy
	case model.DifficultyHard:
		return model.DifficultyHard
	default:
		return model.DifficultyMedium
	}
}

// mockLesson is the deterministic fallback, phased by where the day falls in
// the 90-day roadmap.
func mockLesson(language string, day int, careerPath string) (string, []model.GeneratedTask) {
	var theory string
	switch {
	case day <= 30:
		theory = fmt.Sprintf("Welcome to Day %d of your %s journey! Today we'll explore the foundational concepts that every %s needs to master. Understanding these basics will set you up for success in more advanced topics.\n\nIn %s, we focus on writing clean, readable code that follows best practices. This will make your code easier to maintain and understand.", day, language, careerPath, language)
	case day <= 60:
		theory = fmt.Sprintf("Day %d takes you deeper into %s as you work toward becoming a %s. We're now moving beyond the basics into more sophisticated programming patterns and techniques.\n\nToday's lesson focuses on building real-world applications with %s. You'll learn how professionals structure their code for scalability.", day, language, careerPath, language)
	default:
		theory = fmt.Sprintf("Congratulations on reaching Day %d! You're now in the advanced phase of your %s training for %s. This stage focuses on professional-level skills and industry best practices.\n\nToday we cover advanced optimization techniques and architectural patterns used in production environments.", day, language, careerPath)
	}

	tasks := []model.GeneratedTask{
		{
			ID:          1,
			Title:       "Warm-up",
			Description: fmt.Sprintf("Write a small %s program that demonstrates today's concept. Start with the basic structure, then add functionality one piece at a time.", language),
			Difficulty:  model.DifficultyEasy,
		},
		{
			ID:          2,
			Title:       "Apply it",
			Description: fmt.Sprintf("Build a small exercise that solves a real problem with today's %s material. Include proper error handling and edge case management.", language),
			Difficulty:  model.DifficultyMedium,
		},
		{
			ID:          3,
			Title:       "Stretch goal",
			Description: fmt.Sprintf("Extend your solution the way a %s would: consider scalability, maintainability, and code organization.", careerPath),
			Difficulty:  model.DifficultyHard,
		},
	}

	return theory, tasks
}
