package models

// Task represents a single to-do item held by the store.
type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// CreateTaskRequest is the validated form of a POST /tasks body.
type CreateTaskRequest struct {
	Title string `json:"title"`
}

// Stats holds aggregate completion counts.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
